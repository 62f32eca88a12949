package codec

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

type testCase struct {
	scheme entity.Scheme
	width  int
}

var (
	testSchemes = map[string]testCase{
		"parity1d-even": {scheme: entity.Parity1D{Parity: entity.ParityEven}, width: 8},
		"parity1d-odd":  {scheme: entity.Parity1D{Parity: entity.ParityOdd}, width: 8},
		"parity1d-w3":   {scheme: entity.Parity1D{Parity: entity.ParityEven}, width: 3},
		"parity2d-even": {scheme: entity.Parity2D{Parity: entity.ParityEven}, width: 8},
		"parity2d-odd":  {scheme: entity.Parity2D{Parity: entity.ParityOdd}, width: 8},
		"parity2d-w1":   {scheme: entity.Parity2D{Parity: entity.ParityEven}, width: 1},
		"checksum":      {scheme: entity.Checksum{}, width: 8},
		"checksum-w5":   {scheme: entity.Checksum{}, width: 5},
		"crc-1011":      {scheme: entity.CRC{Polynomial: "1011"}, width: 8},
		"crc-10011":     {scheme: entity.CRC{Polynomial: "10011"}, width: 8},
		"crc-11":        {scheme: entity.CRC{Polynomial: "11"}, width: 4},
		"crc-0101":      {scheme: entity.CRC{Polynomial: "0101"}, width: 8},
		"crc-100000111": {scheme: entity.CRC{Polynomial: "100000111"}, width: 8},
	}
)

func newCodec(t *testing.T, tc testCase) Codec {
	t.Helper()
	c, err := New(tc.scheme, tc.width)
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for name, tc := range testSchemes {
		t.Run(name, func(t *testing.T) {
			c := newCodec(t, tc)
			for n := 1; n <= 48; n++ {
				msg := bits.Random(rnd, n)
				frame := bits.Join(c.Encode(msg.Segment(tc.width)))
				ok, err := Check(c, frame)
				if err != nil {
					t.Fatalf("n=%d frame=%s: %v", n, frame, err)
				}
				if !ok {
					t.Fatalf("n=%d frame=%s rejected", n, frame)
				}
			}
		})
	}
}

func TestSingleBitFlipDetected(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for name, tc := range testSchemes {
		if tc.width < 2 {
			continue
		}
		t.Run(name, func(t *testing.T) {
			c := newCodec(t, tc)
			for _, n := range []int{1, 5, 8, 13, 16, 31, 40} {
				msg := bits.Random(rnd, n)
				frame := bits.Join(c.Encode(msg.Segment(tc.width)))
				for i := 0; i < frame.Len(); i++ {
					ok, err := Check(c, frame.Flip(i))
					if err != nil {
						t.Fatalf("n=%d flip=%d: %v", n, i, err)
					}
					if ok {
						t.Fatalf("n=%d frame=%s: flip at %d not detected", n, frame, i)
					}
				}
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	segments := []bits.String{"11100110", "11101011", "101"}
	orig := append([]bits.String(nil), segments...)

	for name, tc := range testSchemes {
		t.Run(name, func(t *testing.T) {
			c := newCodec(t, tc)
			first := c.Encode(segments)
			second := c.Encode(segments)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("encode is not deterministic: %v != %v", first, second)
			}
			if !reflect.DeepEqual(segments, orig) {
				t.Errorf("encode modified its input: %v", segments)
			}
		})
	}
}

func TestParity1DEncode(t *testing.T) {
	tests := map[string]struct {
		parity   entity.Parity
		segments []bits.String
		expected []bits.String
	}{
		"even odd count":  {parity: entity.ParityEven, segments: []bits.String{"1010010"}, expected: []bits.String{"10100101"}},
		"odd odd count":   {parity: entity.ParityOdd, segments: []bits.String{"1010010"}, expected: []bits.String{"10100100"}},
		"even even count": {parity: entity.ParityEven, segments: []bits.String{"11000000", "0"}, expected: []bits.String{"110000000", "00"}},
		"odd even count":  {parity: entity.ParityOdd, segments: []bits.String{"11000000", "0"}, expected: []bits.String{"110000001", "01"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Parity1D{parity: tt.parity, width: 8}
			if result := c.Encode(tt.segments); !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParity1DEvenFlipsUndetected(t *testing.T) {
	c := &Parity1D{parity: entity.ParityEven, width: 8}
	frame := bits.Join(c.Encode([]bits.String{"11100110", "11101011"}))

	// two flips inside the same row keep its parity
	ok, err := Check(c, frame.Flip(0).Flip(3))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("double flip within one segment is expected to pass 1-D parity")
	}

	// one flip in each row is caught by both rows
	ok, err = Check(c, frame.Flip(0).Flip(9))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("flips in different segments must be detected")
	}
}

func TestParity2DEncode(t *testing.T) {
	tests := map[string]struct {
		segments []bits.String
		width    int
		expected []bits.String
	}{
		"full rows":      {segments: []bits.String{"1010", "0111"}, width: 4, expected: []bits.String{"10100", "01111", "11011"}},
		"short last row": {segments: []bits.String{"1010", "01"}, width: 4, expected: []bits.String{"10100", "011", "11000"}},
		"single short":   {segments: []bits.String{"101"}, width: 8, expected: []bits.String{"1010", "1010"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Parity2D{parity: entity.ParityEven, width: tt.width}
			result := c.Encode(tt.segments)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, result)
			}
			received, err := c.Segment(bits.Join(result))
			if err != nil {
				t.Fatalf("failed to segment frame: %v", err)
			}
			if !reflect.DeepEqual(received, tt.expected) {
				t.Errorf("expected received segments %v, got %v", tt.expected, received)
			}
		})
	}
}

func TestParity2DRectangleMasked(t *testing.T) {
	const width = 8
	c := &Parity2D{parity: entity.ParityEven, width: width}
	frame := bits.Join(c.Encode([]bits.String{"11100110", "11101011", "00010001", "10101010"}))

	at := func(row, col int) int { return row*(width+1) + col }
	corrupted := frame.Flip(at(0, 1)).Flip(at(0, 5)).Flip(at(2, 1)).Flip(at(2, 5))

	ok, err := Check(c, corrupted)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("rectangular four bit error is expected to be masked by 2-D parity")
	}

	ok, err = Check(c, frame.Flip(at(0, 1)).Flip(at(0, 5)).Flip(at(2, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("three bit error must be detected")
	}
}

func TestChecksum(t *testing.T) {
	tests := map[string]struct {
		segments []bits.String
		width    int
		sum      uint64
		expected bits.String
	}{
		"wraparound":     {segments: []bits.String{"10011000", "10011001"}, width: 8, sum: 0b00110010, expected: "11001101"},
		"carry dropped":  {segments: []bits.String{"11100110", "11101011"}, width: 8, sum: 0b11010010, expected: "00101101"},
		"single segment": {segments: []bits.String{"11100110"}, width: 8, sum: 0b11100110, expected: "00011001"},
		"short segment":  {segments: []bits.String{"101"}, width: 8, sum: 0b101, expected: "11111010"},
		"no carry":       {segments: []bits.String{"0001", "0010", "0100"}, width: 4, sum: 0b0111, expected: "1000"},
		"many carries":   {segments: []bits.String{"1111", "1111", "1111"}, width: 4, sum: 0b1111, expected: "0000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Checksum{width: tt.width}
			if sum := c.Sum(tt.segments); sum != tt.sum {
				t.Fatalf("expected sum %b, got %b", tt.sum, sum)
			}
			encoded := c.Encode(tt.segments)
			if last := encoded[len(encoded)-1]; last != tt.expected {
				t.Fatalf("expected checksum %s, got %s", tt.expected, last)
			}
			if !c.Verify(encoded) {
				t.Errorf("correct checksum rejected")
			}
			received, err := c.Segment(bits.Join(encoded))
			if err != nil {
				t.Fatal(err)
			}
			if !c.Verify(received) {
				t.Errorf("received segments %v rejected", received)
			}
		})
	}
}

func TestCRC(t *testing.T) {
	c := NewCRC("1011", 8)

	if r := c.Remainder(bits.String("1101011011000").Vector()); r != "100" {
		t.Fatalf("expected remainder 100, got %s", r)
	}

	encoded := c.Encode(bits.String("1101011011").Segment(8))
	frame := bits.Join(encoded)
	if frame != "1101011011100" {
		t.Fatalf("expected frame 1101011011100, got %s", frame)
	}
	if !reflect.DeepEqual(encoded, []bits.String{"11010110", "11100"}) {
		t.Errorf("unexpected segments %v", encoded)
	}

	ok, err := Check(c, frame)
	if err != nil || !ok {
		t.Fatalf("unmodified frame rejected: %v", err)
	}
	ok, err = Check(c, frame.Flip(4))
	if err != nil || ok {
		t.Fatalf("flip at index 4 accepted: %v", err)
	}
}

func TestCRCRemainderWidth(t *testing.T) {
	tests := map[string]struct {
		polynomial bits.String
		message    bits.String
		expected   bits.String
	}{
		"textbook":      {polynomial: "1011", message: "11010011101100", expected: "100"},
		"zero message":  {polynomial: "1011", message: "0000", expected: "000"},
		"padded":        {polynomial: "10011", message: "1", expected: "0011"},
		"leading zeros": {polynomial: "0101", message: "1", expected: "010"},
		"parity":        {polynomial: "11", message: "1011", expected: "1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewCRC(tt.polynomial, 8)
			r := c.Remainder(tt.message.Vector().ShiftLeft(tt.polynomial.Len() - 1))
			if r != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, r)
			}
		})
	}
}

func TestDataPositions(t *testing.T) {
	tests := map[string]struct {
		codec    Codec
		frameLen int
		expected []int
	}{
		"parity1d": {codec: &Parity1D{parity: entity.ParityEven, width: 4}, frameLen: 8, expected: []int{0, 1, 2, 3, 5, 6}},
		"parity2d": {codec: &Parity2D{parity: entity.ParityEven, width: 4}, frameLen: 13, expected: []int{0, 1, 2, 3, 5, 6}},
		"checksum": {codec: &Checksum{width: 4}, frameLen: 10, expected: []int{0, 1, 2, 3, 4, 5}},
		"crc":      {codec: NewCRC("1011", 4), frameLen: 6, expected: []int{0, 1, 2}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pos, err := tt.codec.DataPositions(tt.frameLen)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(pos, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, pos)
			}
		})
	}
}

func TestMalformedFrame(t *testing.T) {
	tests := map[string]struct {
		codec Codec
		frame bits.String
	}{
		"parity1d single bit":   {codec: &Parity1D{parity: entity.ParityEven, width: 4}, frame: "1"},
		"parity1d dangling bit": {codec: &Parity1D{parity: entity.ParityEven, width: 4}, frame: "101001"},
		"parity2d odd length":   {codec: &Parity2D{parity: entity.ParityEven, width: 8}, frame: "10101"},
		"parity2d too short":    {codec: &Parity2D{parity: entity.ParityEven, width: 8}, frame: "10"},
		"checksum no data":      {codec: &Checksum{width: 8}, frame: "11111111"},
		"crc no data":           {codec: NewCRC("1011", 8), frame: "101"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tt.codec.Segment(tt.frame); !errors.Is(err, entity.ErrWrongFrameLength) {
				t.Errorf("expected ErrWrongFrameLength from Segment, got %v", err)
			}
			if _, err := tt.codec.DataPositions(tt.frame.Len()); !errors.Is(err, entity.ErrWrongFrameLength) {
				t.Errorf("expected ErrWrongFrameLength from DataPositions, got %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(entity.Checksum{}, 0); !errors.Is(err, entity.ErrWrongSegmentWidth) {
		t.Errorf("expected ErrWrongSegmentWidth, got %v", err)
	}
	if _, err := New(entity.Checksum{}, 64); !errors.Is(err, entity.ErrWrongSegmentWidth) {
		t.Errorf("expected ErrWrongSegmentWidth, got %v", err)
	}
	if _, err := New(nil, 8); !errors.Is(err, entity.ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}

	c, err := New(entity.CRC{Polynomial: "1011"}, 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*CRC); !ok {
		t.Errorf("expected *CRC, got %T", c)
	}
}
