package sndisplay

import (
	"fmt"
	"io"
	"strings"
)

func thresholdFlags(hit CaloHit) string {
	ht := "    "
	if hit.HighThreshold {
		ht = "[HT]"
	}
	lt := ""
	if hit.LowThresholdOnly {
		lt = "[LT]"
	}
	return fmt.Sprintf("%s %s", ht, lt)
}

// FormatCaloHit is the one line description of a calorimeter hit.
// Unmapped channels are shown with their readout channel.
func FormatCaloHit(hit CaloHit, cabling CablingResolver) string {
	amplitude := -CaloAmplitudeMV(hit.PeakAmplitude)
	if amplitude == 0 {
		// no "-0.0 mV"
		amplitude = 0
	}
	var omID OmID
	ok := false
	if cabling != nil {
		omID, ok = cabling.ResolveOM(hit.Channel)
	}
	if !ok {
		return fmt.Sprintf("?:%-9s (OM   ?)   TDC = %12d   Amplitude = %5.1f mV   %s",
			hit.Channel.String(), hit.ReferenceTime, amplitude, thresholdFlags(hit))
	}
	omNum, _ := EncodeOM(omID)

	switch id := omID.(type) {
	case MainWallID:
		return fmt.Sprintf("M:%d.%02d.%02d  (OM%4d)   TDC = %12d   Amplitude = %5.1f mV   %s",
			id.Side, id.Column, id.Row, omNum, hit.ReferenceTime, amplitude, thresholdFlags(hit))
	case XWallID:
		return fmt.Sprintf("X:%d.%d.%d.%02d (OM%4d)   TDC = %12d   Amplitude = %5.1f mV  %s",
			id.Side, id.Wall, id.Column, id.Row, omNum, hit.ReferenceTime, amplitude, thresholdFlags(hit))
	case GVetoID:
		return fmt.Sprintf("G:%d.%d.%02d   (OM%4d)   TDC = %12d   Ampl = %5.1f mV  %s",
			id.Side, id.Wall, id.Column, omNum, hit.ReferenceTime, amplitude, thresholdFlags(hit))
	}
	return ""
}

func formatRegister(r int, ticks int64) string {
	if ticks == InvalidTicks {
		return strings.Repeat(" ", 22)
	}
	return fmt.Sprintf("     R%d = %12d", r, ticks)
}

// FormatTrackerHit returns one line per timing group of the hit.
func FormatTrackerHit(hit TrackerHit) []string {
	lines := make([]string, 0, len(hit.Times))
	for i, t := range hit.Times {
		var b strings.Builder
		if i == 0 {
			b.WriteString(fmt.Sprintf("GG:%d.%03d.%1d", hit.Cell.Side, hit.Cell.Row, hit.Cell.Layer))
		} else {
			b.WriteString(strings.Repeat(" ", 10))
		}
		for r, anode := range t.Anodes {
			b.WriteString(formatRegister(r, anode))
		}
		b.WriteString(formatRegister(5, t.BottomCathode))
		b.WriteString(formatRegister(6, t.TopCathode))
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// DumpEvent prints the hits of an event in human readable form.
func DumpEvent(w io.Writer, event EventRecord, cabling CablingResolver) {
	fmt.Fprintf(w, "\n=> %d CALO HIT(s) :\n", len(event.CaloHits))
	for _, hit := range event.CaloHits {
		fmt.Fprintln(w, FormatCaloHit(hit, cabling))
	}
	fmt.Fprintf(w, "\n=> %d TRACKER HIT(s) :\n", len(event.TrackerHits))
	for _, hit := range event.TrackerHits {
		for _, line := range FormatTrackerHit(hit) {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

// EventSummary is the one line summary printed while scanning a file.
func EventSummary(event EventRecord) string {
	return fmt.Sprintf("Event #%d contains %d TriggerID(s) with %d calo hit(s) and %d tracker hit(s)",
		event.EventID, len(event.TriggerIDs), len(event.CaloHits), len(event.TrackerHits))
}
