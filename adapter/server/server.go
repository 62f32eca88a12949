// Package server accepts sender connections and runs one exchange per connection.
package server

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/logger"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Handler processes one exchange on conn
type Handler func(ctx context.Context, conn entity.Connection) error

type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration // ends a request the sender did not close
	MaxFrameSize int
}

func (c *Config) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.IdleTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxFrameSize, validation.Required, validation.Min(1)),
	)
}

// Server sequential TCP accept loop
type Server struct {
	log      *logger.Logger
	cfg      *Config
	handler  Handler
	listener *net.TCPListener
	mux      sync.Mutex
}

func New(log *logger.Logger, cfg *Config, handler Handler) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, entity.ErrHandlerNotSet
	}

	return &Server{
		log:     log.Layer("srv"),
		cfg:     cfg,
		handler: handler,
	}, nil
}

// Start binds the listener
func (s *Server) Start() error {
	addr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)))
	if err != nil {
		return err
	}

	lst, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return err
	}

	s.mux.Lock()
	s.listener = lst
	s.mux.Unlock()

	s.log.Info().Str("addr", lst.Addr().String()).Msg("listening")

	return nil
}

// Addr returns the bound address, nil before Start
func (s *Server) Addr() net.Addr {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections one at a time until ctx is done or Stop is called.
// Errors of a single exchange are logged and never end the loop.
func (s *Server) Serve(ctx context.Context) error {
	s.mux.Lock()
	lst := s.listener
	s.mux.Unlock()

	if lst == nil {
		return errors.New("server is not started")
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.log.Error().Err(err).Msg("failed to stop server")
			}
		case <-done:
		}
	}()

	var acceptDelay time.Duration
	for {
		conn, err := lst.AcceptTCP()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			acceptDelay = nextAcceptDelay(acceptDelay)
			s.log.Error().Err(err).Dur("retry_in", acceptDelay).Msg("failed to accept")
			select {
			case <-time.After(acceptDelay):
			case <-ctx.Done():
			}
			continue
		}
		acceptDelay = 0

		s.serveConn(ctx, conn)
	}
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(d*2, maxAcceptDelay)
}

// Stop closes the listener
func (s *Server) Stop() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) serveConn(ctx context.Context, conn *net.TCPConn) {
	s.log.Debug().Str("addr", conn.RemoteAddr().String()).Msg("connection accepted")

	c := &connection{cfg: s.cfg, conn: conn}
	defer func() {
		if err := c.Close(); err != nil {
			s.log.Error().Err(err).Msg("failed to close connection")
		} else {
			s.log.Debug().Str("addr", conn.RemoteAddr().String()).Msg("connection closed")
		}
	}()

	if err := s.handler(ctx, c); err != nil {
		event := s.log.Error
		if entity.IsMalformedRecord(err) {
			event = s.log.Warn
		}
		event().Err(err).Str("addr", conn.RemoteAddr().String()).Msg("exchange failed")
	}
}
