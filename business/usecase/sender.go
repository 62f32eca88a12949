package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
	"github.com/forest33/bitguard/pkg/codec"
	"github.com/forest33/bitguard/pkg/logger"
	"github.com/forest33/bitguard/pkg/wire"
)

// SenderUseCase generates a random message, protects it and asks the receiver for a verdict
type SenderUseCase struct {
	log  *logger.Logger
	cfg  *entity.SenderConfig
	src  bits.Source
	dial Dialer
}

// NewSenderUseCase creates a new SenderUseCase
func NewSenderUseCase(log *logger.Logger, cfg *entity.SenderConfig, src bits.Source, dial Dialer) *SenderUseCase {
	return &SenderUseCase{
		log:  log.Layer("ucsnd"),
		cfg:  cfg,
		src:  src,
		dial: dial,
	}
}

// Run performs one exchange. Configuration errors are returned before any connection is opened.
func (uc *SenderUseCase) Run(ctx context.Context) (*entity.Exchange, error) {
	ex, req, err := uc.prepare()
	if err != nil {
		return nil, err
	}

	data, err := wire.MarshalRequest(req)
	if err != nil {
		return nil, err
	}

	conn, err := uc.dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to receiver")
	}
	defer func() {
		if err := conn.Close(); err != nil && !entity.IsErrorInterruptingNetwork(err) {
			uc.log.Error().Err(err).Msg("failed to close connection")
		}
	}()

	if err := conn.Send(data); err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}

	uc.log.Debug().
		Str("exchange_id", ex.ID).
		Str("scheme", req.Scheme.Name()).
		Str("option", req.Scheme.Option()).
		Int("frame_bits", req.Frame.Len()).
		Msg("request sent")

	reply, err := conn.Receive()
	if err != nil {
		return nil, errors.Wrap(err, "failed to receive verdict")
	}

	ex.Verdict, err = wire.UnmarshalVerdict(reply)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("exchange_id", ex.ID).
		Str("scheme", req.Scheme.Name()).
		Bool("accepted", ex.Verdict.Accepted).
		Bool("altered", ex.Verdict.Payload != req.Frame).
		Msg("verdict received")

	return ex, nil
}

func (uc *SenderUseCase) prepare() (*entity.Exchange, *entity.Request, error) {
	if uc.cfg.Message.Bits < 1 {
		return nil, nil, errors.Wrapf(entity.ErrWrongMessageBits, "%d", uc.cfg.Message.Bits)
	}

	scheme, err := entity.ParseScheme(uc.cfg.Scheme.Name, uc.cfg.Scheme.Option)
	if err != nil {
		return nil, nil, err
	}

	c, err := codec.New(scheme, uc.cfg.Message.SegmentWidth)
	if err != nil {
		return nil, nil, err
	}

	msg := bits.Random(uc.src, uc.cfg.Message.Bits)
	segments := msg.Segment(uc.cfg.Message.SegmentWidth)

	ex := &entity.Exchange{
		ID:       uuid.New().String(),
		Message:  msg,
		Segments: segments,
		Encoded:  c.Encode(segments),
		Scheme:   scheme,
	}

	return ex, &entity.Request{Frame: ex.Frame(), Scheme: scheme}, nil
}
