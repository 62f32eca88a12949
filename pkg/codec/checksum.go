package codec

import (
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

// Checksum appends the one's complement of the end-around carry sum of all segments.
type Checksum struct {
	width int
}

func (c *Checksum) Encode(segments []bits.String) []bits.String {
	encoded := make([]bits.String, len(segments), len(segments)+1)
	copy(encoded, segments)
	return append(encoded, c.checksum(segments))
}

// Segment splits the data part by width and keeps the trailing checksum as the last segment.
func (c *Checksum) Segment(frame bits.String) ([]bits.String, error) {
	if frame.Len() <= c.width {
		return nil, errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for %d bit checksum", frame.Len(), c.width)
	}
	dataLen := frame.Len() - c.width
	return append(frame[:dataLen].Segment(c.width), frame[dataLen:]), nil
}

func (c *Checksum) Verify(received []bits.String) bool {
	if len(received) < 2 {
		return false
	}
	last := len(received) - 1
	return c.checksum(received[:last]) == received[last]
}

func (c *Checksum) DataPositions(frameLen int) ([]int, error) {
	if frameLen <= c.width {
		return nil, errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for %d bit checksum", frameLen, c.width)
	}
	return positions(frameLen, func(i int) bool {
		return i < frameLen-c.width
	}), nil
}

// Sum adds segment values; whenever the sum no longer fits in width bits the
// carry is dropped and 1 is added.
func (c *Checksum) Sum(segments []bits.String) uint64 {
	var (
		mask = uint64(1)<<c.width - 1
		sum  uint64
	)
	for _, seg := range segments {
		sum += seg.Uint() & mask
		if sum > mask {
			sum = sum&mask + 1
		}
	}
	return sum
}

func (c *Checksum) checksum(segments []bits.String) bits.String {
	return bits.FromUint(c.Sum(segments), c.width).Complement()
}
