package automaxprocs

import (
	"runtime"
	"testing"

	"github.com/forest33/bitguard/pkg/logger"
)

func TestInit(t *testing.T) {
	prev := runtime.GOMAXPROCS(0)

	undo := Init(logger.NewNop(), 3)
	if procs := runtime.GOMAXPROCS(0); procs != 3 {
		t.Errorf("expected 3 procs, got %d", procs)
	}
	undo()

	if procs := runtime.GOMAXPROCS(0); procs != prev {
		t.Errorf("expected %d procs after undo, got %d", prev, procs)
	}

	undo = Init(logger.NewNop(), 0)
	if runtime.GOMAXPROCS(0) < 1 {
		t.Errorf("GOMAXPROCS not set")
	}
	undo()
}
