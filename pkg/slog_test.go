package sndisplay

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormat(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewHandler(&out, nil))
	log.Info("Opening run.h5", "module", "main")
	log.Debug("hidden")
	log.With("worker", 2).Warn("slow event")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("%d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasSuffix(lines[0], "] [main] Opening run.h5") {
		t.Errorf("line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "] [WARN] [2] slow event") {
		t.Errorf("line %q", lines[1])
	}
}

func TestSlogLogger(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := NewSlogLogger(&stdout, &stderr)
	l.Info("hello", "test")
	l.Error("broken")

	if !strings.Contains(stdout.String(), "[test] hello") {
		t.Errorf("stdout %q", stdout.String())
	}
	var record map[string]interface{}
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("stderr is not JSON: %v", err)
	}
	if record["msg"] != "broken" || record["level"] != "ERROR" {
		t.Errorf("record %v", record)
	}

	SetLogger(l)
	defer SetLogger(nil)
	d := newTestDemonstrator(t)
	d.SetCellContent(N_CELLS, 1)
	if !strings.Contains(stderr.String(), "*** wrong cell ID") {
		t.Errorf("invalid cell not logged: %q", stderr.String())
	}
}
