package main

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

func TestMain(m *testing.M) {
	logger = sndisplay.NewSlogLogger(io.Discard, io.Discard)
	os.Exit(m.Run())
}

func testEvents() []sndisplay.EventRecord {
	hit := sndisplay.CaloHit{Channel: sndisplay.ChannelID{Crate: 0, Board: 5, Channel: 3}}
	cell := sndisplay.TrackerHit{
		Cell:  sndisplay.CellID{Side: 0, Row: 12, Layer: 5},
		Times: []sndisplay.GGTimes{sndisplay.NewGGTimes()},
	}
	return []sndisplay.EventRecord{
		{RunID: 974, EventID: 0, TriggerIDs: []int32{0}, CaloHits: []sndisplay.CaloHit{hit}},
		{RunID: 974, EventID: 1, TriggerIDs: []int32{1}, TrackerHits: []sndisplay.TrackerHit{cell, cell}},
		{RunID: 974, EventID: 2, TriggerIDs: []int32{2, 3}, CaloHits: []sndisplay.CaloHit{hit, hit}},
	}
}

func TestScanTotals(t *testing.T) {
	tests := []struct {
		name        string
		maxEvents   int
		interactive bool
		stdin       string
		events      int
		calo        int
		tracker     int
	}{
		{"all events", 0, false, "", 3, 3, 2},
		{"max events", 2, false, "", 2, 1, 2},
		{"interactive continue", 0, true, "\n\n\n", 3, 3, 2},
		{"interactive quit", 0, true, "\nq\n", 2, 1, 2},
		{"interactive end of input", 0, true, "", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configuration = sndisplay.Configuration{
				MaxEvents:   tt.maxEvents,
				Interactive: tt.interactive,
				NoDB:        true,
			}
			s, err := newScanner(scanOutputs{}, sndisplay.LastWins)
			if err != nil {
				t.Fatal(err)
			}
			var stdout bytes.Buffer
			stdin := bufio.NewReader(strings.NewReader(tt.stdin))
			totals, err := s.scan(sndisplay.NewSliceSource(testEvents()), stdin, &stdout)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if totals.Events != tt.events || totals.CaloHits != tt.calo || totals.TrackerHits != tt.tracker {
				t.Errorf("totals %+v, want %d events %d calo %d tracker", totals, tt.events, tt.calo, tt.tracker)
			}
			if got := strings.Count(stdout.String(), "Event #"); got != tt.events {
				t.Errorf("%d summaries printed, want %d", got, tt.events)
			}
			if err := s.Close(); err != nil {
				t.Errorf("close: %v", err)
			}
		})
	}
}

func TestScanDumpsAtHighVerbosity(t *testing.T) {
	configuration = sndisplay.Configuration{Verbosity: 2, NoDB: true}
	s, err := newScanner(scanOutputs{}, sndisplay.LastWins)
	if err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	_, err = s.scan(sndisplay.NewSliceSource(testEvents()[:1]), bufio.NewReader(strings.NewReader("")), &stdout)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "=> 1 CALO HIT(s) :") {
		t.Errorf("missing calo dump in output:\n%s", stdout.String())
	}
	if _, ok := s.cabling[974]; !ok {
		t.Errorf("cabling of run 974 not cached")
	}
}

func TestParseArgs(t *testing.T) {
	t.Setenv("RED_PATH", "/data/red")
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"missing input", []string{}, true},
		{"negative max events", []string{"-r", "1", "-X", "-2"}, true},
		{"run", []string{"-r", "974", "-X", "10"}, false},
		{"inputs", []string{"-i", "a.h5", "-i", "b.h5", "-o", "snap.h5", "-skim", "skim.h5"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, outputs, err := parseArgs(tt.args, &bytes.Buffer{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("error %v, wantErr %t", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(config.Inputs()) == 0 {
				t.Errorf("no inputs")
			}
			if tt.name == "inputs" && (outputs.Snapshot != "snap.h5" || outputs.Skim != "skim.h5") {
				t.Errorf("outputs %+v", outputs)
			}
			if tt.name == "run" && config.MaxEvents != 10 {
				t.Errorf("max events %d", config.MaxEvents)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr); code != EXIT_OK {
		t.Errorf("exit code %d, want %d", code, EXIT_OK)
	}
	if code := run([]string{}, strings.NewReader(""), &stdout, &stderr); code != EXIT_USAGE {
		t.Errorf("exit code %d, want %d", code, EXIT_USAGE)
	}
}

func TestScanRendersImages(t *testing.T) {
	dir := t.TempDir()
	configuration = sndisplay.Configuration{NoDB: true, NumWorkers: 3}
	s, err := newScanner(scanOutputs{PNGDir: dir}, sndisplay.LastWins)
	if err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	totals, err := s.scan(sndisplay.NewSliceSource(testEvents()), bufio.NewReader(strings.NewReader("")), &stdout)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.pool.rendered != totals.Events {
		t.Errorf("%d images rendered, want %d", s.pool.rendered, totals.Events)
	}
	for _, event := range testEvents() {
		filename := filepath.Join(dir, sndisplay.OutputFilename(int(event.RunID), int(event.EventID)))
		if _, err := os.Stat(filename); err != nil {
			t.Errorf("missing image: %v", err)
		}
	}
}

func TestRenderPoolReportsErrors(t *testing.T) {
	configuration = sndisplay.Configuration{NoDB: true}
	pool := newRenderPool(2, filepath.Join(t.TempDir(), "missing"), sndisplay.LastWins)
	for _, event := range testEvents() {
		pool.Submit(renderJob{Event: event, Cabling: sndisplay.DirectCabling{}})
	}
	rendered, err := pool.Wait()
	if rendered != 0 || err == nil {
		t.Errorf("rendered %d, err %v", rendered, err)
	}
}
