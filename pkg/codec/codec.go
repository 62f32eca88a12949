// Package codec implements the error detection codes: 1-D parity, 2-D parity, checksum and CRC.
package codec

import (
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

// Encoder attaches redundancy to message segments.
type Encoder interface {
	// Encode returns new segments carrying the redundancy. The input is never modified.
	Encode(segments []bits.String) []bits.String
}

// Verifier recomputes redundancy of a received frame.
type Verifier interface {
	// Segment splits a received frame into the segments produced by Encode.
	Segment(frame bits.String) ([]bits.String, error)
	// Verify reports whether the redundancy matches the data.
	Verify(received []bits.String) bool
}

type Codec interface {
	Encoder
	Verifier
	// DataPositions returns frame indexes carrying message data, never redundancy.
	DataPositions(frameLen int) ([]int, error)
}

// New returns the codec for scheme operating on segments of width bits
func New(scheme entity.Scheme, width int) (Codec, error) {
	if width < 1 || width > entity.MaxSegmentWidth {
		return nil, errors.Wrapf(entity.ErrWrongSegmentWidth, "%d, must be between 1 and %d", width, entity.MaxSegmentWidth)
	}

	switch s := scheme.(type) {
	case entity.Parity1D:
		return &Parity1D{parity: s.Parity, width: width}, nil
	case entity.Parity2D:
		return &Parity2D{parity: s.Parity, width: width}, nil
	case entity.Checksum:
		return &Checksum{width: width}, nil
	case entity.CRC:
		return NewCRC(s.Polynomial, width), nil
	default:
		return nil, errors.Wrapf(entity.ErrUnknownScheme, "%T", scheme)
	}
}

// Check segments, verifies and returns the verdict for a received frame.
func Check(c Codec, frame bits.String) (bool, error) {
	segments, err := c.Segment(frame)
	if err != nil {
		return false, err
	}
	return c.Verify(segments), nil
}

func equal(a, b []bits.String) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func positions(frameLen int, isData func(int) bool) []int {
	pos := make([]int, 0, frameLen)
	for i := 0; i < frameLen; i++ {
		if isData(i) {
			pos = append(pos, i)
		}
	}
	return pos
}
