package codec

import (
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
)

// Parity1D appends one parity bit to every segment.
type Parity1D struct {
	parity entity.Parity
	width  int
}

func (c *Parity1D) Encode(segments []bits.String) []bits.String {
	return appendRowParity(segments, c.parity)
}

// Segment splits the frame into rows of width+1 bits, the last row may be shorter.
func (c *Parity1D) Segment(frame bits.String) ([]bits.String, error) {
	if err := checkRows(frame.Len(), c.width); err != nil {
		return nil, err
	}
	return frame.Segment(c.width + 1), nil
}

func (c *Parity1D) Verify(received []bits.String) bool {
	for _, row := range received {
		if row.Len() < 2 {
			return false
		}
		data := row[:row.Len()-1]
		if c.parity.Bit(data.Ones()) != row.Bit(row.Len()-1) {
			return false
		}
	}
	return len(received) > 0
}

func (c *Parity1D) DataPositions(frameLen int) ([]int, error) {
	if err := checkRows(frameLen, c.width); err != nil {
		return nil, err
	}
	return positions(frameLen, func(i int) bool {
		return !isRowParity(i, frameLen, c.width)
	}), nil
}

// Parity2D appends a parity bit to every row, then a column parity segment
// computed over the rows including their parity bits.
type Parity2D struct {
	parity entity.Parity
	width  int
}

func (c *Parity2D) Encode(segments []bits.String) []bits.String {
	rows := appendRowParity(segments, c.parity)
	return append(rows, columnParity(rows, c.parity))
}

func (c *Parity2D) Segment(frame bits.String) ([]bits.String, error) {
	rowsLen, err := c.rowsLen(frame.Len())
	if err != nil {
		return nil, err
	}
	return append(frame[:rowsLen].Segment(c.width+1), frame[rowsLen:]), nil
}

// Verify recomputes row and column parity from the data part of every row.
func (c *Parity2D) Verify(received []bits.String) bool {
	if len(received) < 2 {
		return false
	}
	rows := received[:len(received)-1]
	data := make([]bits.String, len(rows))
	for i, row := range rows {
		if row.Len() < 2 {
			return false
		}
		data[i] = row[:row.Len()-1]
	}
	return equal(c.Encode(data), received)
}

func (c *Parity2D) DataPositions(frameLen int) ([]int, error) {
	rowsLen, err := c.rowsLen(frameLen)
	if err != nil {
		return nil, err
	}
	return positions(rowsLen, func(i int) bool {
		return !isRowParity(i, rowsLen, c.width)
	}), nil
}

// rowsLen returns the length of the row part of a frame. The column segment
// spans the widest row: width+1 bits when at least one full row exists,
// otherwise the frame is a single short row followed by its column segment.
func (c *Parity2D) rowsLen(frameLen int) (int, error) {
	full := c.width + 1
	if frameLen >= 2*full {
		if err := checkRows(frameLen-full, c.width); err != nil {
			return 0, err
		}
		return frameLen - full, nil
	}
	if frameLen < 4 || frameLen%2 != 0 {
		return 0, errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for 2-D parity", frameLen)
	}
	return frameLen / 2, nil
}

func appendRowParity(segments []bits.String, parity entity.Parity) []bits.String {
	rows := make([]bits.String, len(segments))
	for i, seg := range segments {
		rows[i] = seg + bits.String([]byte{bits.Zero + parity.Bit(seg.Ones())})
	}
	return rows
}

// columnParity computes one parity bit per column over the widest row. Short
// rows only contribute to the columns they have.
func columnParity(rows []bits.String, parity entity.Parity) bits.String {
	var columns int
	for _, row := range rows {
		if row.Len() > columns {
			columns = row.Len()
		}
	}
	buf := make([]byte, columns)
	for col := range buf {
		var ones int
		for _, row := range rows {
			if col < row.Len() {
				ones += int(row.Bit(col))
			}
		}
		buf[col] = bits.Zero + parity.Bit(ones)
	}
	return bits.String(buf)
}

// checkRows rejects row parts whose last row has no room for data and parity.
func checkRows(rowsLen, width int) error {
	if rowsLen == 0 || rowsLen%(width+1) == 1 {
		return errors.Wrapf(entity.ErrWrongFrameLength, "%d bits for rows of %d+1 bits", rowsLen, width)
	}
	return nil
}

func isRowParity(i, rowsLen, width int) bool {
	return i%(width+1) == width || i == rowsLen-1
}
