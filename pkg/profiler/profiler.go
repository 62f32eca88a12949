// Package profiler serves pprof handlers on a separate listener.
package profiler

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/forest33/bitguard/pkg/logger"
)

type Config struct {
	Host string
	Port int
}

var (
	once = sync.Once{}
)

const readHeaderTimeout = 10 * time.Second

// Handler returns the pprof routes under /debug/pprof/
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// Start runs the profiler once per process
func Start(cfg *Config, log *logger.Logger) {
	once.Do(func() {
		log.Info().
			Str("host", cfg.Host).
			Int("port", cfg.Port).
			Msg("starting profiler")

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           Handler(),
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.Fatalf("failed to start profiler: %v", err)
			}
		}()
	})
}
