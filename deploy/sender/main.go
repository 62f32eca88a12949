// Package main bitguard sender main package
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/forest33/bitguard/adapter/client"
	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/business/usecase"
	"github.com/forest33/bitguard/pkg/automaxprocs"
	"github.com/forest33/bitguard/pkg/config"
	"github.com/forest33/bitguard/pkg/logger"
	"github.com/forest33/bitguard/pkg/noise"
)

const (
	exitConfigurationError = 2
	exitExchangeError      = 1
)

var (
	cfg  = &entity.SenderConfig{}
	zlog *logger.Logger

	printConfig *bool
)

func initConfig() {
	var (
		configFile = flag.String("config", "", "config file (YAML, or TOML with .toml extension)")
		msgBits    = flag.Int("bits", 0, "number of message bits")
		width      = flag.Int("width", 0, "segment width in bits")
		scheme     = flag.String("type", "", "error detection scheme (parity1d, parity2d, crc, checksum)")
		option     = flag.String("option", "", "scheme option: even/odd parity or CRC polynomial")
		host       = flag.String("host", "", "receiver host")
		port       = flag.Int("port", 0, "receiver port")
	)
	printConfig = flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	if _, err := config.New(*configFile, entity.DefaultSenderConfigFileName, cfg); err != nil {
		log.Printf("failed to parse config file: %v", err)
		os.Exit(exitConfigurationError)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bits":
			cfg.Message.Bits = *msgBits
		case "width":
			cfg.Message.SegmentWidth = *width
		case "type":
			cfg.Scheme.Name = *scheme
		case "option":
			cfg.Scheme.Option = *option
		case "host":
			cfg.Network.Host = *host
		case "port":
			cfg.Network.Port = *port
		}
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
}

func main() {
	initConfig()

	if *printConfig {
		if err := config.Dump(os.Stdout, entity.DefaultSenderConfigFileName, cfg); err != nil {
			zlog.Fatalf("failed to print config: %v", err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(exitConfigurationError)
	}

	dial := client.NewDialer(zlog, &client.Config{
		Host:         cfg.Network.Host,
		Port:         cfg.Network.Port,
		DialTimeout:  cfg.Network.GetDialTimeout(),
		ReadTimeout:  cfg.Network.GetReadTimeout(),
		WriteTimeout: cfg.Network.GetWriteTimeout(),
		MaxFrameSize: cfg.Network.MaxFrameSize,
	})

	senderUseCase := usecase.NewSenderUseCase(zlog, cfg, noise.NewSource(0), dial)

	ex, err := senderUseCase.Run(context.Background())
	if err != nil {
		if entity.IsConfigurationError(err) {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
			os.Exit(exitConfigurationError)
		}
		zlog.Error().Err(err).
			Str("host", cfg.Network.Host).
			Int("port", cfg.Network.Port).
			Msg("exchange failed")
		os.Exit(exitExchangeError)
	}

	printExchange(os.Stdout, ex, cfg.Message.SegmentWidth)
}
