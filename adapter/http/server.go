// Package rest exposes receiver statistics over HTTP.
package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/logger"
)

type Server struct {
	cfg             *Config
	log             *logger.Logger
	receiverUseCase ReceiverUseCase
	router          *gin.Engine
}

type Config struct {
	Host string
	Port int
}

type ReceiverUseCase interface {
	GetStatistic() *entity.Statistic
}

type schemeStatistic struct {
	*entity.SchemeStatistic
	DetectionRate float64 `json:"detection_rate"`
}

type statisticResponse struct {
	Malformed uint64                      `json:"malformed"`
	Schemes   map[string]*schemeStatistic `json:"schemes"`
}

func New(cfg *Config, log *logger.Logger, receiverUseCase ReceiverUseCase) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:             cfg,
		log:             log.Layer("rest"),
		receiverUseCase: receiverUseCase,
		router:          gin.New(),
	}
	s.init()

	return s
}

func (s *Server) init() {
	s.router.Use(gin.Recovery())
	s.router.GET("/api/v1/statistic", s.handlerStatistic)
}

func (s *Server) Start() {
	go func() {
		s.log.Info().
			Str("host", s.cfg.Host).
			Int("port", s.cfg.Port).
			Msg("starting HTTP server")

		err := s.router.Run(fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port))
		if err != nil {
			s.log.Fatalf("failed to start HTTP server: %v", err)
		}
	}()
}

func (s *Server) handlerStatistic(ctx *gin.Context) {
	stat := s.receiverUseCase.GetStatistic()

	resp := &statisticResponse{
		Malformed: stat.Malformed,
		Schemes:   make(map[string]*schemeStatistic, len(stat.Schemes)),
	}

	for name, st := range stat.Schemes {
		resp.Schemes[name] = &schemeStatistic{
			SchemeStatistic: st,
			DetectionRate:   detectionRate(st),
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// detectionRate share of corrupted frames that were rejected, 1 when nothing was corrupted
func detectionRate(st *entity.SchemeStatistic) float64 {
	if st.Corrupted == 0 {
		return 1
	}
	return float64(st.Corrupted-st.Undetected) / float64(st.Corrupted)
}
