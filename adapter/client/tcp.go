package client

import (
	"net"
	"time"

	"github.com/forest33/bitguard/pkg/logger"
	"github.com/forest33/bitguard/pkg/wire"
)

// Connection carries one request and its verdict
type Connection struct {
	log  *logger.Logger
	cfg  *Config
	conn *net.TCPConn
}

// Send writes the whole record and closes the write side, marking the end of the request.
func (c *Connection) Send(data []byte) error {
	if c.cfg.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
			return err
		}
	}

	if err := wire.WriteRecord(c.conn, data); err != nil {
		return err
	}

	c.log.Debug().Int("size", len(data)).Msg("sent to socket")

	return c.conn.CloseWrite()
}

// Receive reads the reply until the receiver closes the connection.
func (c *Connection) Receive() ([]byte, error) {
	if c.cfg.ReadTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
			return nil, err
		}
	}

	data, err := wire.ReadRecord(c.conn, c.cfg.MaxFrameSize)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("size", len(data)).Msg("received from socket")

	return data, nil
}

func (c *Connection) Close() error {
	if err := c.conn.Close(); err != nil {
		return err
	}
	c.log.Debug().Str("addr", c.conn.RemoteAddr().String()).Msg("connection closed")
	return nil
}
