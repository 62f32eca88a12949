// Package entity provides entities for business logic.
package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultSenderConfigFileName   = "bitguard-sender.yaml"
	DefaultReceiverConfigFileName = "bitguard-receiver.yaml"

	MaxSegmentWidth = 63
)

// SenderConfig sender configuration
type SenderConfig struct {
	Logger  *LoggerConfig  `yaml:"Logger" toml:"Logger"`
	Runtime *RuntimeConfig `yaml:"Runtime" toml:"Runtime"`
	Network *NetworkConfig `yaml:"Network" toml:"Network"`
	Message *MessageConfig `yaml:"Message" toml:"Message"`
	Scheme  *SchemeConfig  `yaml:"Scheme" toml:"Scheme"`
}

// ReceiverConfig receiver configuration
type ReceiverConfig struct {
	Logger   *LoggerConfig   `yaml:"Logger" toml:"Logger"`
	Runtime  *RuntimeConfig  `yaml:"Runtime" toml:"Runtime"`
	Network  *NetworkConfig  `yaml:"Network" toml:"Network"`
	Message  *MessageConfig  `yaml:"Message" toml:"Message"`
	Noise    *NoiseConfig    `yaml:"Noise" toml:"Noise"`
	Profiler *ProfilerConfig `yaml:"Profiler" toml:"Profiler"`
	Rest     *RestConfig     `yaml:"Rest" toml:"Rest"`
}

// LoggerConfig logger settings
type LoggerConfig struct {
	Level             string `yaml:"level" toml:"level" default:"info"`
	TimeFieldFormat   string `yaml:"timeFieldFormat" toml:"timeFieldFormat" default:"2006-01-02T15:04:05.000000"`
	PrettyPrint       *bool  `yaml:"prettyPrint" toml:"prettyPrint" default:"true"`
	DisableSampling   *bool  `yaml:"disableSampling" toml:"disableSampling" default:"true"`
	RedirectStdLogger *bool  `yaml:"redirectStdLogger" toml:"redirectStdLogger" default:"true"`
	ErrorStack        *bool  `yaml:"errorStack" toml:"errorStack" default:"true"`
	ShowCaller        *bool  `yaml:"showCaller" toml:"showCaller" default:"false"`
	FileName          string `yaml:"fileName,omitempty" toml:"fileName,omitempty" default:""`
}

// RuntimeConfig runtime settings
type RuntimeConfig struct {
	GoMaxProcs int `yaml:"goMaxProcs" toml:"goMaxProcs" default:"0"`
}

// NetworkConfig connection settings, shared by sender and receiver
type NetworkConfig struct {
	Host         string `yaml:"host" toml:"host" default:"localhost"`
	Port         int    `yaml:"port" toml:"port" default:"5000"`
	DialTimeout  int    `yaml:"dialTimeout" toml:"dialTimeout" default:"5"`
	ReadTimeout  int    `yaml:"readTimeout" toml:"readTimeout" default:"10"`
	WriteTimeout int    `yaml:"writeTimeout" toml:"writeTimeout" default:"10"`
	IdleTimeout  int    `yaml:"idleTimeout" toml:"idleTimeout" default:"200"` // milliseconds
	MaxFrameSize int    `yaml:"maxFrameSize" toml:"maxFrameSize" default:"65536"`
}

// MessageConfig message generation and segmentation
type MessageConfig struct {
	Bits         int `yaml:"bits" toml:"bits" default:"16"`
	SegmentWidth int `yaml:"segmentWidth" toml:"segmentWidth" default:"8"`
}

// SchemeConfig error detection scheme and its option
type SchemeConfig struct {
	Name   string `yaml:"name" toml:"name" default:"parity1d"`
	Option string `yaml:"option" toml:"option" default:"even"`
}

// NoiseConfig receiver side channel noise simulation
type NoiseConfig struct {
	Enabled     *bool   `yaml:"enabled" toml:"enabled" default:"false"`
	Probability float64 `yaml:"probability" toml:"probability" default:"0.5"`
	Seed        int64   `yaml:"seed,omitempty" toml:"seed,omitempty" default:"0"`
}

// ProfilerConfig pprof configuration
type ProfilerConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled" default:"false"`
	Host    string `yaml:"host" toml:"host" default:"localhost"`
	Port    int    `yaml:"port" toml:"port" default:"8888"`
}

// RestConfig REST server configuration
type RestConfig struct {
	Enabled *bool  `yaml:"enabled" toml:"enabled" default:"false"`
	Host    string `yaml:"host" toml:"host" default:""`
	Port    int    `yaml:"port" toml:"port" default:"8877"`
}

func (c NetworkConfig) GetDialTimeout() time.Duration {
	return time.Duration(c.DialTimeout) * time.Second
}

func (c NetworkConfig) GetReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c NetworkConfig) GetWriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// GetIdleTimeout pause after the last received byte that ends an unterminated request
func (c NetworkConfig) GetIdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeout) * time.Millisecond
}

func (c *NetworkConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, is.Host),
		validation.Field(&c.IdleTimeout, validation.Min(0)),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxFrameSize, validation.Required, validation.Min(1)),
	)
}

func (c *MessageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Bits, validation.Required, validation.Min(1)),
		validation.Field(&c.SegmentWidth, validation.Required, validation.Min(1), validation.Max(MaxSegmentWidth)),
	)
}

func (c *NoiseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Probability, validation.Min(0.0), validation.Max(1.0)),
	)
}

func (c *SenderConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Network),
		validation.Field(&c.Message),
	)
}

func (c *ReceiverConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Network),
		validation.Field(&c.Message),
		validation.Field(&c.Noise),
	)
}
