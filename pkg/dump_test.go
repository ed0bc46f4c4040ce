package sndisplay

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatCaloHit(t *testing.T) {
	tests := []struct {
		name string
		hit  CaloHit
		want string
	}{
		{
			"main wall",
			CaloHit{Channel: ChannelID{Crate: 0, Board: 5, Channel: 3}, ReferenceTime: 1234567, PeakAmplitude: -8192, HighThreshold: true},
			"M:0.05.03  (OM  68)   TDC =      1234567   Amplitude = 625.0 mV   [HT] ",
		},
		{
			"low threshold only",
			CaloHit{Channel: ChannelID{Crate: 0, Board: 0, Channel: 0}, ReferenceTime: 1, LowThresholdOnly: true},
			"M:0.00.00  (OM   0)   TDC =            1   Amplitude =   0.0 mV        [LT]",
		},
		{
			"unmapped",
			CaloHit{Channel: ChannelID{Crate: 7, Board: 1, Channel: 2}, ReferenceTime: 5},
			"?:7.1.2     (OM   ?)   TDC =            5   Amplitude =   0.0 mV        ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCaloHit(tt.hit, DirectCabling{}); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestFormatTrackerHit(t *testing.T) {
	first := NewGGTimes()
	first.BottomCathode = 12345
	second := NewGGTimes()
	second.Anodes[0] = 7

	hit := TrackerHit{Cell: CellID{Side: 1, Row: 10, Layer: 4}, Times: []GGTimes{first, second}}
	lines := FormatTrackerHit(hit)
	if len(lines) != 2 {
		t.Fatalf("%d lines, want 2", len(lines))
	}
	want0 := "GG:1.010.4" + strings.Repeat(" ", 5*22) + "     R5 =        12345"
	if lines[0] != want0 {
		t.Errorf("got  %q\nwant %q", lines[0], want0)
	}
	want1 := strings.Repeat(" ", 10) + "     R0 =            7"
	if lines[1] != want1 {
		t.Errorf("got  %q\nwant %q", lines[1], want1)
	}
}

func TestDumpEvent(t *testing.T) {
	event := EventRecord{
		EventID:    3,
		TriggerIDs: []int32{3},
		CaloHits:   []CaloHit{{Channel: ChannelID{Board: 5, Channel: 3}}},
		TrackerHits: []TrackerHit{
			{Cell: CellID{Side: 0, Row: 1, Layer: 2}, Times: []GGTimes{NewGGTimes()}},
			{Cell: CellID{Side: 0, Row: 1, Layer: 3}, Times: []GGTimes{NewGGTimes()}},
		},
	}
	var buf bytes.Buffer
	DumpEvent(&buf, event, DirectCabling{})
	out := buf.String()
	for _, s := range []string{"=> 1 CALO HIT(s) :", "=> 2 TRACKER HIT(s) :", "M:0.05.03", "GG:0.001.3"} {
		if !strings.Contains(out, s) {
			t.Errorf("dump does not contain %q:\n%s", s, out)
		}
	}

	summary := EventSummary(event)
	if summary != "Event #3 contains 1 TriggerID(s) with 1 calo hit(s) and 2 tracker hit(s)" {
		t.Errorf("summary %q", summary)
	}
}
