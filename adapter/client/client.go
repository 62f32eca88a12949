// Package client opens the sender side TCP connection.
package client

import (
	"context"
	"net"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/logger"
)

type Config struct {
	Host         string
	Port         int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxFrameSize int
}

func (c *Config) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxFrameSize, validation.Required, validation.Min(1)),
	)
}

// Dial connects to the receiver
func Dial(ctx context.Context, log *logger.Logger, cfg *Config) (*Connection, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &net.Dialer{Timeout: cfg.DialTimeout}
	cn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}

	conn, ok := cn.(*net.TCPConn)
	if !ok {
		_ = cn.Close()
		return nil, errors.Errorf("unexpected connection type %T", cn)
	}

	log = log.Layer("cli")
	log.Debug().
		Str("local", conn.LocalAddr().String()).
		Str("remote", conn.RemoteAddr().String()).
		Msg("connection established")

	return &Connection{
		log:  log,
		cfg:  cfg,
		conn: conn,
	}, nil
}

// NewDialer returns a dialer for usecase.SenderUseCase
func NewDialer(log *logger.Logger, cfg *Config) func(ctx context.Context) (entity.Connection, error) {
	return func(ctx context.Context) (entity.Connection, error) {
		return Dial(ctx, log, cfg)
	}
}
