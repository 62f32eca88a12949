// Package automaxprocs sets GOMAXPROCS from the config or the container CPU quota.
package automaxprocs

import (
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/forest33/bitguard/pkg/logger"
)

// Init uses goMaxProcs when it is positive, otherwise the CPU quota.
// The returned function restores the previous value.
func Init(log *logger.Logger, goMaxProcs int) func() {
	if goMaxProcs > 0 {
		prev := runtime.GOMAXPROCS(goMaxProcs)
		log.Debug().Int("procs", goMaxProcs).Msg("GOMAXPROCS set from config")
		return func() { runtime.GOMAXPROCS(prev) }
	}

	undo, err := maxprocs.Set(maxprocs.Logger(log.Printf))
	if err != nil {
		log.Error().Err(err).Msg("failed to set automaxprocs")
	}
	return undo
}
