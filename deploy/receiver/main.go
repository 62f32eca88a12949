// Package main bitguard receiver main package
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	rest "github.com/forest33/bitguard/adapter/http"
	"github.com/forest33/bitguard/adapter/server"
	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/business/usecase"
	"github.com/forest33/bitguard/pkg/automaxprocs"
	"github.com/forest33/bitguard/pkg/config"
	"github.com/forest33/bitguard/pkg/logger"
	"github.com/forest33/bitguard/pkg/profiler"
)

var (
	cfg        = &entity.ReceiverConfig{}
	cfgHandler *config.Config
	zlog       *logger.Logger
	ctx        context.Context
	cancel     context.CancelFunc

	serverAdapter   *server.Server
	receiverUseCase *usecase.ReceiverUseCase

	printConfig *bool
)

func initConfig() {
	var (
		configFile = flag.String("config", "", "config file (YAML, or TOML with .toml extension)")
		port       = flag.Int("port", 0, "listening port")
		width      = flag.Int("width", 0, "segment width in bits")
		withNoise  = flag.Bool("noise", false, "inject a single bit error with the configured probability")
	)
	printConfig = flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	var err error
	cfgHandler, err = config.New(*configFile, entity.DefaultReceiverConfigFileName, cfg)
	if err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	cfgHandler.SetOverride(func(interface{}) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "port":
				cfg.Network.Port = *port
			case "width":
				cfg.Message.SegmentWidth = *width
			case "noise":
				enabled := *withNoise
				cfg.Noise.Enabled = &enabled
			}
		})
	})

	zlog = logger.New(logger.Config{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       *cfg.Logger.PrettyPrint,
		DisableSampling:   *cfg.Logger.DisableSampling,
		RedirectStdLogger: *cfg.Logger.RedirectStdLogger,
		ErrorStack:        *cfg.Logger.ErrorStack,
		ShowCaller:        *cfg.Logger.ShowCaller,
		FileName:          cfg.Logger.FileName,
	})

	automaxprocs.Init(zlog, cfg.Runtime.GoMaxProcs)

	ctx, cancel = context.WithCancel(context.Background())
}

func main() {
	initConfig()
	defer shutdown()

	if *printConfig {
		if err := config.Dump(os.Stdout, cfgHandler.GetPath(), cfg); err != nil {
			zlog.Fatalf("failed to print config: %v", err)
		}
		return
	}

	if *cfg.Profiler.Enabled {
		profiler.Start(&profiler.Config{
			Host: cfg.Profiler.Host,
			Port: cfg.Profiler.Port,
		}, zlog)
	}

	initUseCases()
	initAdapters()
	initRestServer()

	go func() {
		if err := serverAdapter.Serve(ctx); err != nil {
			zlog.Fatalf("failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func initUseCases() {
	var err error

	receiverUseCase, err = usecase.NewReceiverUseCase(zlog, cfg, cfgHandler, nil)
	if err != nil {
		zlog.Fatalf("failed to create receiver: %v", err)
	}

	if err := receiverUseCase.Start(); err != nil {
		zlog.Error().Err(err).Msg("config hot reload disabled")
	}
}

func initAdapters() {
	var err error

	serverAdapter, err = server.New(zlog, &server.Config{
		Host:         cfg.Network.Host,
		Port:         cfg.Network.Port,
		ReadTimeout:  cfg.Network.GetReadTimeout(),
		WriteTimeout: cfg.Network.GetWriteTimeout(),
		IdleTimeout:  cfg.Network.GetIdleTimeout(),
		MaxFrameSize: cfg.Network.MaxFrameSize,
	}, receiverUseCase.Handle)
	if err != nil {
		zlog.Fatalf("failed to create server: %v", err)
	}

	if err := serverAdapter.Start(); err != nil {
		zlog.Fatalf("failed to start server: %v", err)
	}
}

func initRestServer() {
	if !*cfg.Rest.Enabled {
		return
	}
	rest.New(&rest.Config{
		Host: cfg.Rest.Host,
		Port: cfg.Rest.Port,
	}, zlog, receiverUseCase).Start()
}

func shutdown() {
	cancel()
	cfgHandler.Close()
}
