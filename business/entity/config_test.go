package entity

import (
	"testing"
)

func newSenderConfig() *SenderConfig {
	return &SenderConfig{
		Network: &NetworkConfig{Host: "localhost", Port: 5000, MaxFrameSize: 2048},
		Message: &MessageConfig{Bits: 16, SegmentWidth: 8},
		Scheme:  &SchemeConfig{Name: SchemeNameCRC, Option: "1011"},
	}
}

func TestSenderConfigValidate(t *testing.T) {
	tests := map[string]struct {
		modify func(c *SenderConfig)
		valid  bool
	}{
		"defaults":       {modify: func(c *SenderConfig) {}, valid: true},
		"zero bits":      {modify: func(c *SenderConfig) { c.Message.Bits = 0 }, valid: false},
		"negative bits":  {modify: func(c *SenderConfig) { c.Message.Bits = -3 }, valid: false},
		"wide segments":  {modify: func(c *SenderConfig) { c.Message.SegmentWidth = 64 }, valid: false},
		"port range":     {modify: func(c *SenderConfig) { c.Network.Port = 70000 }, valid: false},
		"bad host":       {modify: func(c *SenderConfig) { c.Network.Host = "bad host!" }, valid: false},
		"ip host":        {modify: func(c *SenderConfig) { c.Network.Host = "127.0.0.1" }, valid: true},
		"no frame limit": {modify: func(c *SenderConfig) { c.Network.MaxFrameSize = 0 }, valid: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := newSenderConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err == nil) != tt.valid {
				t.Errorf("expected valid=%v, got error %v", tt.valid, err)
			}
		})
	}
}

func TestReceiverConfigValidate(t *testing.T) {
	cfg := &ReceiverConfig{
		Network: &NetworkConfig{Port: 5000, MaxFrameSize: 2048},
		Message: &MessageConfig{Bits: 16, SegmentWidth: 8},
		Noise:   &NoiseConfig{Probability: 0.5},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Noise.Probability = 1.5
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected probability error")
	}
}
