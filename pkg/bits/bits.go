// Package bits provides MSB-first bit strings and the bit vector used for polynomial division.
package bits

import (
	"errors"
	"strings"
)

const (
	Zero = '0'
	One  = '1'
)

var (
	ErrNotBinary   = errors.New("not a binary string")
	ErrEmptyString = errors.New("empty bit string")
)

// String is a sequence of '0' and '1' characters, most significant bit first.
// It never carries a numeric prefix.
type String string

// Source random source used for message generation and noise injection.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Parse validates s as a non-empty binary string
func Parse(s string) (String, error) {
	if len(s) == 0 {
		return "", ErrEmptyString
	}
	for i := 0; i < len(s); i++ {
		if s[i] != Zero && s[i] != One {
			return "", ErrNotBinary
		}
	}
	return String(s), nil
}

// Random returns a uniformly distributed message of exactly n bits.
func Random(src Source, n int) String {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = Zero + byte(src.Intn(2))
	}
	return String(buf)
}

// FromUint returns the lowest width bits of v, left-padded with zeros.
func FromUint(v uint64, width int) String {
	if width <= 0 {
		return ""
	}
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = Zero + byte(v&1)
		v >>= 1
	}
	return String(buf)
}

// Uint interprets s as an unsigned integer. Only the lowest 64 bits are kept.
func (s String) Uint() uint64 {
	var v uint64
	for i := 0; i < len(s); i++ {
		v = v<<1 | uint64(s[i]-Zero)
	}
	return v
}

func (s String) Len() int {
	return len(s)
}

// Bit returns 0 or 1 for the bit at index i
func (s String) Bit(i int) byte {
	return s[i] - Zero
}

// Ones counts set bits.
func (s String) Ones() int {
	return strings.Count(string(s), string(One))
}

// Complement flips every bit.
func (s String) Complement() String {
	buf := []byte(s)
	for i := range buf {
		buf[i] ^= 1
	}
	return String(buf)
}

// Flip returns a copy of s with bit i toggled.
func (s String) Flip(i int) String {
	buf := []byte(s)
	buf[i] ^= 1
	return String(buf)
}

// Segment splits s into ceil(len/width) chunks. The final chunk keeps its
// natural length and is never padded.
func (s String) Segment(width int) []String {
	if width <= 0 || len(s) == 0 {
		return nil
	}
	segments := make([]String, 0, (len(s)+width-1)/width)
	for i := 0; i < len(s); i += width {
		end := i + width
		if end > len(s) {
			end = len(s)
		}
		segments = append(segments, s[i:end])
	}
	return segments
}

// Group returns s split by width and joined with spaces, for display.
func (s String) Group(width int) string {
	segments := s.Segment(width)
	parts := make([]string, len(segments))
	for i := range segments {
		parts[i] = string(segments[i])
	}
	return strings.Join(parts, " ")
}

func (s String) Vector() *Vector {
	v := NewVector(len(s))
	for i := 0; i < len(s); i++ {
		v.bits[i] = s[i] - Zero
	}
	return v
}

func (s String) String() string {
	return string(s)
}

// Join concatenates segments in order.
func Join(segments []String) String {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(string(seg))
	}
	return String(sb.String())
}

// Strings converts segments to plain strings.
func Strings(segments []String) []string {
	out := make([]string, len(segments))
	for i := range segments {
		out[i] = string(segments[i])
	}
	return out
}
