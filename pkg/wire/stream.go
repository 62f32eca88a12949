package wire

import (
	"io"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
)

const readChunkSize = 4096

// DeadlineReader is a reader with read deadlines, such as net.Conn
type DeadlineReader interface {
	io.Reader
	SetReadDeadline(t time.Time) error
}

// ReadRecord reads r until EOF. Records longer than maxSize fail with entity.ErrFrameTooLarge.
func ReadRecord(r io.Reader, maxSize int) ([]byte, error) {
	var (
		data  = make([]byte, 0, min(maxSize, readChunkSize))
		chunk = make([]byte, readChunkSize)
	)

	for {
		n, err := r.Read(chunk)
		if len(data)+n > maxSize {
			return nil, errors.Wrapf(entity.ErrFrameTooLarge, "more than %d bytes", maxSize)
		}
		data = append(data, chunk[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return data, nil
			}
			return nil, err
		}
	}
}

// ReadBurst reads a record that the peer may leave unterminated. The record ends at EOF,
// at a read timeout once some data has arrived, or when no more data comes within idle
// after the last read. A zero idle returns right after the first non-empty read.
// The caller sets the deadline for the first byte.
func ReadBurst(r DeadlineReader, maxSize int, idle time.Duration) ([]byte, error) {
	var (
		data  = make([]byte, 0, min(maxSize, readChunkSize))
		chunk = make([]byte, readChunkSize)
	)

	for {
		n, err := r.Read(chunk)
		if len(data)+n > maxSize {
			return nil, errors.Wrapf(entity.ErrFrameTooLarge, "more than %d bytes", maxSize)
		}
		data = append(data, chunk[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) || (len(data) > 0 && isTimeout(err)) {
				return data, nil
			}
			return nil, err
		}

		if len(data) == 0 {
			continue
		}
		if idle <= 0 {
			return data, nil
		}
		if err := r.SetReadDeadline(time.Now().Add(idle)); err != nil {
			return nil, err
		}
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// WriteRecord writes the whole record to w.
func WriteRecord(w io.Writer, data []byte) error {
	var (
		sent, n int
		err     error
	)

	for sent < len(data) {
		n, err = w.Write(data[sent:])
		if err != nil {
			return err
		}
		sent += n
	}

	return nil
}
