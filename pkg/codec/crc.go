package codec

import (
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

// CRC appends the remainder of the modulo-2 division of the augmented message
// by the generator polynomial.
type CRC struct {
	divisor *bits.Vector
	degree  int
	width   int
}

func NewCRC(polynomial bits.String, width int) *CRC {
	return &CRC{
		divisor: polynomial.Vector().TrimLeft(),
		degree:  polynomial.Len() - 1,
		width:   width,
	}
}

// Encode treats the segments as one message and returns message+remainder re-segmented by width.
func (c *CRC) Encode(segments []bits.String) []bits.String {
	message := bits.Join(segments)
	remainder := c.Remainder(message.Vector().ShiftLeft(c.degree))
	return (message + remainder).Segment(c.width)
}

func (c *CRC) Segment(frame bits.String) ([]bits.String, error) {
	if frame.Len() <= c.degree {
		return nil, errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for polynomial of degree %d", frame.Len(), c.degree)
	}
	return frame.Segment(c.width), nil
}

// Verify divides data+crc and accepts when nothing remains.
func (c *CRC) Verify(received []bits.String) bool {
	frame := bits.Join(received)
	if frame.Len() <= c.degree {
		return false
	}
	return c.Remainder(frame.Vector()).Vector().IsZero()
}

func (c *CRC) DataPositions(frameLen int) ([]int, error) {
	if frameLen <= c.degree {
		return nil, errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for polynomial of degree %d", frameLen, c.degree)
	}
	return positions(frameLen, func(i int) bool {
		return i < frameLen-c.degree
	}), nil
}

// Remainder performs XOR long division of dividend, aligning the leading set
// bit of the divisor with the leading set bit of the dividend until the
// dividend fits in degree bits. The result is exactly degree bits wide.
func (c *CRC) Remainder(dividend *bits.Vector) bits.String {
	var (
		v    = dividend.Clone()
		stop = v.Len() - c.degree
	)
	for lead := v.Leading(0); lead != -1 && lead < stop; lead = v.Leading(lead) {
		v.Xor(c.divisor, lead)
	}
	return v.Tail(c.degree)
}
