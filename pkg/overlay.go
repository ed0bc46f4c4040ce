package sndisplay

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// color codes of tracker hits
const (
	ANODE_AND_TWO_CATHODES = 1.00
	ANODE_AND_ONE_CATHODE  = 0.85
	ANODE_AND_NO_CATHODE   = 0.70
	TWO_CATHODES_ONLY      = 0.50
	ONE_CATHODE_ONLY       = 0.20

	CALO_FIRED = 1.0
)

// MultiGroupPolicy selects which timing group of a re-triggered cell is
// displayed.
type MultiGroupPolicy int

const (
	// every group overwrites the previous category
	LastWins MultiGroupPolicy = iota
	// the first group giving a category is kept
	FirstWins
	// register flags are accumulated over the groups
	Cumulative
)

var multiGroupPolicyStrings = []string{
	"last",
	"first",
	"cumulative",
}

func (p MultiGroupPolicy) String() string {
	if p < LastWins || p > Cumulative {
		return "UNKNOWN"
	}
	return multiGroupPolicyStrings[p]
}

func ParseMultiGroupPolicy(s string) (MultiGroupPolicy, error) {
	if s == "" {
		return LastWins, nil
	}
	for i, v := range multiGroupPolicyStrings {
		if v == s {
			return MultiGroupPolicy(i), nil
		}
	}
	return LastWins, fmt.Errorf("invalid multi group policy: %s", s)
}

// CategorizeTimes classifies the registers of a tracker hit. ok is false
// when neither anode nor cathode fired.
func CategorizeTimes(hasAnode, hasBottomCathode, hasTopCathode bool) (float64, bool) {
	bothCathodes := hasBottomCathode && hasTopCathode
	anyCathode := hasBottomCathode || hasTopCathode
	switch {
	case hasAnode && bothCathodes:
		return ANODE_AND_TWO_CATHODES, true
	case hasAnode && anyCathode:
		return ANODE_AND_ONE_CATHODE, true
	case hasAnode:
		return ANODE_AND_NO_CATHODE, true
	case bothCathodes:
		return TWO_CATHODES_ONLY, true
	case anyCathode:
		return ONE_CATHODE_ONLY, true
	}
	return 0, false
}

type OverlayStats struct {
	CaloHits       int
	CaloFired      int
	CaloUnmapped   int
	TrackerHits    int
	TrackerShown   int
	InvalidTracker int
}

// OverlayBuilder fills a demonstrator from one decoded event.
type OverlayBuilder struct {
	Cabling CablingResolver
	Policy  MultiGroupPolicy
}

func (b OverlayBuilder) Build(event EventRecord, d *Demonstrator) OverlayStats {
	stats := OverlayStats{}

	for _, hit := range event.CaloHits {
		stats.CaloHits++
		if b.Cabling == nil {
			stats.CaloUnmapped++
			continue
		}
		omID, ok := b.Cabling.ResolveOM(hit.Channel)
		if !ok {
			stats.CaloUnmapped++
			continue
		}
		omNum, err := EncodeOM(omID)
		if err != nil {
			stats.CaloUnmapped++
			continue
		}
		if hit.HighThreshold || hit.LowThresholdOnly {
			if d.SetOMContent(omNum, CALO_FIRED) == nil {
				stats.CaloFired++
			}
		}
	}

	for _, hit := range event.TrackerHits {
		stats.TrackerHits++
		cellNum, err := EncodeCell(hit.Cell)
		if err != nil {
			logger.Error(fmt.Sprintf("event %d: skipping tracker hit: %v", event.EventID, err))
			stats.InvalidTracker++
			continue
		}
		value, ok := b.cellCategory(hit.Times)
		if !ok {
			continue
		}
		if d.SetCellContent(cellNum, value) == nil {
			stats.TrackerShown++
		}
	}

	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Event %d: %d/%d calo hits fired (%d unmapped), %d/%d tracker hits shown",
			event.EventID, stats.CaloFired, stats.CaloHits, stats.CaloUnmapped, stats.TrackerShown, stats.TrackerHits)
		logger.Info(message, "overlay")
	}
	return stats
}

// cellCategory walks the timing groups of a cell in readout order.
func (b OverlayBuilder) cellCategory(times []GGTimes) (float64, bool) {
	var value float64
	found := false
	var hasAnode, hasBottom, hasTop bool

	for _, t := range times {
		if b.Policy == Cumulative {
			hasAnode = hasAnode || t.HasAnode()
			hasBottom = hasBottom || t.HasBottomCathode()
			hasTop = hasTop || t.HasTopCathode()
		} else {
			hasAnode = t.HasAnode()
			hasBottom = t.HasBottomCathode()
			hasTop = t.HasTopCathode()
		}

		category, ok := CategorizeTimes(hasAnode, hasBottom, hasTop)
		if !ok {
			continue
		}
		if b.Policy == FirstWins && found {
			continue
		}
		value = category
		found = true
	}
	return value, found
}

// TriggerTitle is the display title of an event: the run and the trigger
// IDs merged into it.
func TriggerTitle(run int, triggerIDs []int32) string {
	ids := slices.Clone(triggerIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("RUN %d // TRIGGER %s", run, strings.Join(parts, "+"))
}
