// Package usecase provides business logic.
package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/bits"
	"github.com/forest33/bitguard/pkg/codec"
	"github.com/forest33/bitguard/pkg/logger"
	"github.com/forest33/bitguard/pkg/noise"
	"github.com/forest33/bitguard/pkg/wire"
)

// ReceiverUseCase verifies incoming frames and replies with a verdict
type ReceiverUseCase struct {
	log        *logger.Logger
	cfgHandler configHandler
	width      int
	src        bits.Source
	injector   *noise.Injector
	stat       *statistic
	mux        sync.RWMutex
}

// NewReceiverUseCase creates a new ReceiverUseCase. A nil src is replaced with
// a source seeded from Noise.seed.
func NewReceiverUseCase(log *logger.Logger, cfg *entity.ReceiverConfig, cfgHandler configHandler, src bits.Source) (*ReceiverUseCase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if src == nil {
		src = noise.NewSource(cfg.Noise.Seed)
	}

	uc := &ReceiverUseCase{
		log:        log.Layer("ucrcv"),
		cfgHandler: cfgHandler,
		width:      cfg.Message.SegmentWidth,
		src:        src,
		stat:       newStatistic(),
	}
	uc.SetNoise(*cfg.Noise.Enabled, cfg.Noise.Probability)

	return uc, nil
}

// Start subscribes to configuration changes
func (uc *ReceiverUseCase) Start() error {
	if uc.cfgHandler == nil {
		return nil
	}

	if err := uc.cfgHandler.AddObserver(uc.onConfigChanged); err != nil {
		uc.log.Error().Err(err).Msg("failed to create config file observer")
		return err
	}

	return nil
}

// SetNoise enables or disables the channel noise simulation
func (uc *ReceiverUseCase) SetNoise(enabled bool, probability float64) {
	uc.mux.Lock()
	defer uc.mux.Unlock()

	if !enabled {
		uc.injector = nil
	} else {
		uc.injector = noise.New(uc.src, probability)
	}

	uc.log.Info().
		Bool("enabled", enabled).
		Float64("probability", probability).
		Msg("noise settings")
}

// GetStatistic returns a snapshot of the verdict counters
func (uc *ReceiverUseCase) GetStatistic() *entity.Statistic {
	return uc.stat.get()
}

// Handle runs one exchange on conn: receive the request, optionally corrupt
// it, verify and send the verdict. Malformed records get no reply.
func (uc *ReceiverUseCase) Handle(ctx context.Context, conn entity.Connection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := conn.Receive()
	if err != nil {
		return errors.Wrap(err, "failed to receive request")
	}

	exchangeID := uuid.New().String()

	req, err := wire.UnmarshalRequest(data)
	if err != nil {
		uc.stat.addMalformed()
		return errors.Wrapf(err, "malformed request %s", exchangeID)
	}

	c, err := codec.New(req.Scheme, uc.width)
	if err != nil {
		uc.stat.addMalformed()
		return errors.Wrapf(err, "malformed request %s", exchangeID)
	}

	frame, pos, err := uc.corrupt(c, req.Frame)
	if err != nil {
		uc.stat.addMalformed()
		return errors.Wrapf(err, "malformed request %s", exchangeID)
	}

	accepted, err := codec.Check(c, frame)
	if err != nil {
		uc.stat.addMalformed()
		return errors.Wrapf(err, "malformed request %s", exchangeID)
	}

	verdict := &entity.Verdict{
		Accepted: accepted,
		Payload:  frame,
	}

	if err := conn.Send(wire.MarshalVerdict(verdict)); err != nil {
		return errors.Wrapf(err, "failed to send verdict %s", exchangeID)
	}

	corrupted := pos != noise.NoFlip
	uc.stat.addVerdict(req.Scheme.Name(), accepted, corrupted)

	uc.log.Info().
		Str(entity.VerdictFieldExchangeID, exchangeID).
		Str(entity.VerdictFieldScheme, req.Scheme.Name()).
		Str(entity.VerdictFieldOption, req.Scheme.Option()).
		Bool(entity.VerdictFieldAccepted, accepted).
		Bool(entity.VerdictFieldCorrupted, corrupted).
		Int(entity.VerdictFieldPosition, pos).
		Msg(entity.VerdictEventMessage)

	return nil
}

func (uc *ReceiverUseCase) corrupt(c codec.Codec, frame bits.String) (bits.String, int, error) {
	uc.mux.RLock()
	injector := uc.injector
	uc.mux.RUnlock()

	if injector == nil {
		return frame, noise.NoFlip, nil
	}

	region, err := c.DataPositions(frame.Len())
	if err != nil {
		return frame, noise.NoFlip, err
	}

	corrupted, pos := injector.InjectRegion(frame, region)
	return corrupted, pos, nil
}

func (uc *ReceiverUseCase) onConfigChanged(data interface{}) {
	cfg, ok := data.(*entity.ReceiverConfig)
	if !ok {
		return
	}

	logger.SetLevel(cfg.Logger.Level)
	uc.SetNoise(*cfg.Noise.Enabled, cfg.Noise.Probability)
}
