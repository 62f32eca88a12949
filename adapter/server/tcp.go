package server

import (
	"net"
	"time"

	"github.com/forest33/bitguard/pkg/wire"
)

type connection struct {
	cfg  *Config
	conn *net.TCPConn
}

func (c *connection) Receive() ([]byte, error) {
	if c.cfg.ReadTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)); err != nil {
			return nil, err
		}
	}
	return wire.ReadBurst(c.conn, c.cfg.MaxFrameSize, c.cfg.IdleTimeout)
}

func (c *connection) Send(data []byte) error {
	if c.cfg.WriteTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return wire.WriteRecord(c.conn, data)
}

func (c *connection) Close() error {
	return c.conn.Close()
}
