// Package main renders receiver verdict logs as HTML charts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/config"
	"github.com/forest33/bitguard/pkg/logger"
)

var (
	cfg      = &entity.ReceiverConfig{}
	zlog     *logger.Logger
	logsPath *string
	logFile  *string
	outFile  *string
)

const (
	defaultLogsPath       = "."
	initialPositionsCount = 64
	chartWidth            = "1200px"
	chartHeight           = "600px"
)

func initConfig() {
	configPath := flag.String("config", "", "path to receiver configuration file")
	logsPath = flag.String("logs-path", defaultLogsPath, "path to logs directory")
	logFile = flag.String("log-file", "", "analyzed log file")
	outFile = flag.String("out-file", "", "result file")
	flag.Parse()

	if _, err := config.New(*configPath, entity.DefaultReceiverConfigFileName, cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	zlog = logger.New(logger.Config{
		Level:             cfg.Logger.Level,
		TimeFieldFormat:   cfg.Logger.TimeFieldFormat,
		PrettyPrint:       *cfg.Logger.PrettyPrint,
		DisableSampling:   *cfg.Logger.DisableSampling,
		RedirectStdLogger: *cfg.Logger.RedirectStdLogger,
		ErrorStack:        *cfg.Logger.ErrorStack,
		ShowCaller:        *cfg.Logger.ShowCaller,
	})
}

func main() {
	initConfig()

	if *logFile == "" {
		last, err := getLastLogFile(*logsPath)
		if err != nil {
			zlog.Fatalf("failed to get last log file: %v", err)
		}
		logFile = &last
	}

	if *outFile == "" {
		dir, file := path.Split(*logFile)
		out := fmt.Sprintf("%s%s-verdicts.html", dir, strings.TrimSuffix(file, filepath.Ext(file)))
		outFile = &out
	}

	if err := chartVerdicts(*logFile, *outFile); err != nil {
		zlog.Fatalf("failed to generate chart: %v", err)
	}

	zlog.Info().Str("file", *outFile).Msg("chart created")
}

func getLastLogFile(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var (
		newest time.Time
		last   string
	)

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
			continue
		}
		fi, err := file.Info()
		if err != nil {
			return "", err
		}
		if fi.ModTime().After(newest) {
			last = file.Name()
			newest = fi.ModTime()
		}
	}

	if last == "" {
		return "", os.ErrNotExist
	}

	return path.Join(dir, last), nil
}
