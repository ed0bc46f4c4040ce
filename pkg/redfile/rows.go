package redfile

import (
	"fmt"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

type eventRows struct {
	events   []eventHDF5
	triggers []triggerHDF5
	calo     []caloHitHDF5
	tracker  []trackerTimesHDF5
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// flattenEvent converts one record into table rows. Each timing group of a
// tracker hit is a row, groups of the same hit share hit_index.
func flattenEvent(evtIndex int, event sndisplay.EventRecord) eventRows {
	idx := int32(evtIndex)
	rows := eventRows{
		events:   []eventHDF5{{run_id: event.RunID, event_id: event.EventID}},
		triggers: make([]triggerHDF5, 0, len(event.TriggerIDs)),
		calo:     make([]caloHitHDF5, 0, len(event.CaloHits)),
		tracker:  make([]trackerTimesHDF5, 0, len(event.TrackerHits)),
	}
	for _, trigger := range event.TriggerIDs {
		rows.triggers = append(rows.triggers, triggerHDF5{evt_index: idx, trigger_id: trigger})
	}
	for _, hit := range event.CaloHits {
		rows.calo = append(rows.calo, caloHitHDF5{
			evt_index: idx,
			crate:     int16(hit.Channel.Crate),
			board:     int16(hit.Channel.Board),
			channel:   int16(hit.Channel.Channel),
			peak:      hit.PeakAmplitude,
			tdc:       hit.ReferenceTime,
			ht:        boolToUint8(hit.HighThreshold),
			lt:        boolToUint8(hit.LowThresholdOnly),
		})
	}
	for hitIndex, hit := range event.TrackerHits {
		// a hit without any timing group still needs a row to exist
		times := hit.Times
		empty := len(times) == 0
		if empty {
			times = []sndisplay.GGTimes{sndisplay.NewGGTimes()}
		}
		for _, t := range times {
			row := trackerTimesHDF5{
				evt_index: idx,
				hit_index: int32(hitIndex),
				side:      int16(hit.Cell.Side),
				row:       int16(hit.Cell.Row),
				layer:     int16(hit.Cell.Layer),
				anodes:    t.Anodes,
				bottom:    t.BottomCathode,
				top:       t.TopCathode,
			}
			if empty {
				row.hit_index = -int32(hitIndex) - 1
			}
			rows.tracker = append(rows.tracker, row)
		}
	}
	return rows
}

// groupEvents rebuilds the records of a file from its tables. Rows must be
// ordered by event index, as written by Writer.
func groupEvents(rows eventRows) ([]sndisplay.EventRecord, error) {
	events := make([]sndisplay.EventRecord, len(rows.events))
	for i, e := range rows.events {
		events[i] = sndisplay.EventRecord{RunID: e.run_id, EventID: e.event_id}
	}
	checkIndex := func(table string, idx int32) error {
		if idx < 0 || int(idx) >= len(events) {
			return fmt.Errorf("%s row refers to event index %d (%d events)", table, idx, len(events))
		}
		return nil
	}

	for _, t := range rows.triggers {
		if err := checkIndex("trigger", t.evt_index); err != nil {
			return nil, err
		}
		event := &events[t.evt_index]
		event.TriggerIDs = append(event.TriggerIDs, t.trigger_id)
	}

	for _, c := range rows.calo {
		if err := checkIndex("calo", c.evt_index); err != nil {
			return nil, err
		}
		event := &events[c.evt_index]
		event.CaloHits = append(event.CaloHits, sndisplay.CaloHit{
			Channel:          sndisplay.ChannelID{Crate: int(c.crate), Board: int(c.board), Channel: int(c.channel)},
			ReferenceTime:    c.tdc,
			PeakAmplitude:    c.peak,
			HighThreshold:    c.ht != 0,
			LowThresholdOnly: c.lt != 0,
		})
	}

	lastEvent := int32(-1)
	lastHit := int32(0)
	for _, t := range rows.tracker {
		if err := checkIndex("tracker", t.evt_index); err != nil {
			return nil, err
		}
		event := &events[t.evt_index]
		if t.hit_index < 0 {
			event.TrackerHits = append(event.TrackerHits, sndisplay.TrackerHit{
				Cell: sndisplay.CellID{Side: int(t.side), Row: int(t.row), Layer: int(t.layer)},
			})
			lastEvent = -1
			continue
		}
		times := sndisplay.GGTimes{Anodes: t.anodes, BottomCathode: t.bottom, TopCathode: t.top}
		if t.evt_index == lastEvent && t.hit_index == lastHit {
			hit := &event.TrackerHits[len(event.TrackerHits)-1]
			hit.Times = append(hit.Times, times)
			continue
		}
		event.TrackerHits = append(event.TrackerHits, sndisplay.TrackerHit{
			Cell:  sndisplay.CellID{Side: int(t.side), Row: int(t.row), Layer: int(t.layer)},
			Times: []sndisplay.GGTimes{times},
		})
		lastEvent = t.evt_index
		lastHit = t.hit_index
	}
	return events, nil
}
