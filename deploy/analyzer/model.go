package main

import (
	"github.com/forest33/bitguard/business/entity"
)

// LogEntity fields common to every receiver log line
type LogEntity struct {
	Level   string `mapstructure:"level"`
	Layer   string `mapstructure:"layer"`
	Time    string `mapstructure:"time"`
	Message string `mapstructure:"message"`
}

// SchemeVerdicts verdict classes of one scheme
type SchemeVerdicts struct {
	Clean         int
	Detected      int
	Undetected    int
	FalseRejected int
}

// Report verdict classes per scheme and flipped position counts
type Report struct {
	Schemes   map[string]*SchemeVerdicts
	Positions map[int]int
	Skipped   int
}

func newReport() *Report {
	return &Report{
		Schemes:   make(map[string]*SchemeVerdicts, len(entity.SchemeNames)),
		Positions: make(map[int]int, initialPositionsCount),
	}
}

func (r *Report) add(ev *entity.VerdictEvent) {
	sv, ok := r.Schemes[ev.Scheme]
	if !ok {
		sv = &SchemeVerdicts{}
		r.Schemes[ev.Scheme] = sv
	}

	switch {
	case ev.Corrupted && ev.Accepted:
		sv.Undetected++
	case ev.Corrupted:
		sv.Detected++
	case ev.Accepted:
		sv.Clean++
	default:
		sv.FalseRejected++
	}

	if ev.Corrupted {
		r.Positions[ev.Position]++
	}
}
