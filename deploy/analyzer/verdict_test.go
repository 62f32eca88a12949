package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/forest33/bitguard/pkg/logger"
)

const receiverLog = `{"level":"info","layer":"ucrcv","enabled":true,"probability":0.5,"time":"2026-10-16T10:00:00.000000","message":"noise settings"}
{"level":"info","layer":"ucrcv","exchange_id":"a","scheme":"parity1d","option":"even","accepted":true,"corrupted":false,"position":-1,"time":"2026-10-16T10:00:01.000000","message":"verdict"}
{"level":"info","layer":"ucrcv","exchange_id":"b","scheme":"parity1d","option":"even","accepted":false,"corrupted":true,"position":3,"time":"2026-10-16T10:00:02.000000","message":"verdict"}
{"level":"info","layer":"ucrcv","exchange_id":"c","scheme":"parity2d","option":"odd","accepted":true,"corrupted":true,"position":3,"time":"2026-10-16T10:00:03.000000","message":"verdict"}
not a json line
{"level":"warn","layer":"srv","error":"malformed request","time":"2026-10-16T10:00:04.000000","message":"exchange failed"}
{"level":"info","layer":"ucrcv","exchange_id":"d","scheme":"crc","option":"1011","accepted":false,"corrupted":true,"position":10,"time":"2026-10-16T10:00:05.000000","message":"verdict"}
`

func init() {
	zlog = logger.NewNop()
}

func TestReadVerdicts(t *testing.T) {
	report, err := readVerdicts(strings.NewReader(receiverLog))
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]*SchemeVerdicts{
		"parity1d": {Clean: 1, Detected: 1},
		"parity2d": {Undetected: 1},
		"crc":      {Detected: 1},
	}
	if !reflect.DeepEqual(report.Schemes, expected) {
		t.Errorf("unexpected schemes %+v", report.Schemes)
	}
	if !reflect.DeepEqual(report.Positions, map[int]int{3: 2, 10: 1}) {
		t.Errorf("unexpected positions %v", report.Positions)
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", report.Skipped)
	}
}

func TestRenderReport(t *testing.T) {
	report, err := readVerdicts(strings.NewReader(receiverLog))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := renderReport(report, &buf); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Verdicts", "Flipped bit positions", "parity2d"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("chart does not contain %q", s)
		}
	}
}

func TestGetLastLogFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"receiver.log", "chart.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(receiverLog), 0644); err != nil {
			t.Fatal(err)
		}
	}

	last, err := getLastLogFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(last) != "receiver.log" {
		t.Errorf("expected receiver.log, got %s", last)
	}

	if _, err := getLastLogFile(t.TempDir()); !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
