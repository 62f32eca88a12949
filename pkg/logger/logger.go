// Package logger wrapper for zerolog
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config logger settings
type Config struct {
	Level             string
	TimeFieldFormat   string
	PrettyPrint       bool
	RedirectStdLogger bool
	DisableSampling   bool
	ErrorStack        bool
	ShowCaller        bool
	FileName          string
}

// Logger object capable of interacting with Logger
type Logger struct {
	zero        zerolog.Logger
	zeroErr     zerolog.Logger
	prettyPrint bool
	showCaller  bool
	fileWriter  io.Writer
}

var defaultConfig = Config{
	Level:           "debug",
	TimeFieldFormat: time.RFC3339,
	PrettyPrint:     true,
}

// NewDefault creates Logger with default settings
func NewDefault() *Logger {
	return New(defaultConfig)
}

// NewNop creates Logger that writes nothing, used by tests
func NewNop() *Logger {
	return &Logger{
		zero:    zerolog.Nop(),
		zeroErr: zerolog.Nop(),
	}
}

// New creates a new Logger
func New(config Config) *Logger {
	SetLevel(config.Level)
	zerolog.DisableSampling(config.DisableSampling)
	zerolog.TimeFieldFormat = config.TimeFieldFormat
	if config.ErrorStack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	}

	l := &Logger{
		prettyPrint: config.PrettyPrint,
		showCaller:  config.ShowCaller,
	}

	if config.FileName != "" {
		f, err := os.OpenFile(prepareLogFileName(config.FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("failed to create log file: %v", err)
		}
		l.fileWriter = f
	}

	l.zero = l.decorate(zerolog.New(l.writer(os.Stdout)))
	l.zeroErr = l.decorate(zerolog.New(l.writer(os.Stderr)))

	if config.RedirectStdLogger {
		log.SetFlags(0)
		log.SetOutput(l.zero)
	}

	return l
}

// SetLevel changes the global level, unknown names keep every level
func SetLevel(lvl string) {
	zerolog.SetGlobalLevel(getZerologLevel(lvl))
}

// writer combines console output (pretty or JSON) with the JSON log file
func (l *Logger) writer(console io.Writer) io.Writer {
	if l.prettyPrint {
		console = zerolog.ConsoleWriter{Out: console}
	}
	if l.fileWriter != nil {
		return zerolog.MultiLevelWriter(console, l.fileWriter)
	}
	return console
}

func (l *Logger) decorate(zero zerolog.Logger) zerolog.Logger {
	ctx := zero.With().Timestamp()
	if l.showCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Debug starts a new message with debug level
func (l *Logger) Debug() *zerolog.Event {
	return l.zero.Debug()
}

// Info starts a new message with info level
func (l *Logger) Info() *zerolog.Event {
	return l.zero.Info()
}

// Warn starts a new message with warn level
func (l *Logger) Warn() *zerolog.Event {
	return l.zeroErr.Warn()
}

// Error starts a new message with error level
func (l *Logger) Error() *zerolog.Event {
	return l.zeroErr.Error()
}

// With creates a child logger with the field added to its context
func (l *Logger) With() zerolog.Context {
	return l.zero.With()
}

// Fatal sends the event with fatal level
func (l *Logger) Fatal(v ...interface{}) {
	l.zeroErr.Fatal().Msgf("%v", v)
}

// Fatalf sends the event with formatted msg with fatal level
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.zeroErr.Fatal().Msgf(format, v...)
}

// Printf sends the event with formatted msg with debug level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.zero.Debug().Msgf(format, v...)
}

// Duplicate returns a Logger sharing outputs with l whose context comes from zero
func (l *Logger) Duplicate(zero zerolog.Logger) *Logger {
	dup := &Logger{
		prettyPrint: l.prettyPrint,
		showCaller:  l.showCaller,
		fileWriter:  l.fileWriter,
	}

	if l.zero.GetLevel() == zerolog.Disabled {
		dup.zero, dup.zeroErr = zerolog.Nop(), zerolog.Nop()
		return dup
	}

	dup.zero = zero.Output(dup.writer(os.Stdout))
	dup.zeroErr = zero.Output(dup.writer(os.Stderr))

	return dup
}

// Layer returns a child logger tagged with the component name
func (l *Logger) Layer(name string) *Logger {
	return l.Duplicate(l.With().Str("layer", name).Logger())
}

func getZerologLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled":
		return zerolog.Disabled
	}
	return zerolog.NoLevel
}

func prepareLogFileName(pattern string) string {
	cur := time.Now()
	pattern = strings.ReplaceAll(pattern, "%d", cur.Format("2"))
	pattern = strings.ReplaceAll(pattern, "%D", cur.Format("02"))
	pattern = strings.ReplaceAll(pattern, "%m", cur.Format("1"))
	pattern = strings.ReplaceAll(pattern, "%M", cur.Format("01"))
	pattern = strings.ReplaceAll(pattern, "%y", cur.Format("06"))
	pattern = strings.ReplaceAll(pattern, "%Y", cur.Format("2006"))
	pattern = strings.ReplaceAll(pattern, "%H", cur.Format("15"))
	pattern = strings.ReplaceAll(pattern, "%N", cur.Format("04"))
	pattern = strings.ReplaceAll(pattern, "%S", cur.Format("05"))
	return pattern
}
