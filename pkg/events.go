package sndisplay

import (
	"fmt"
	"math"
)

const (
	// record tag of raw event data
	RED_SERIAL_TAG = "snemo::datamodel::raw_event_data"

	// timestamp value of a register that did not fire
	InvalidTicks int64 = math.MinInt64

	N_ANODE_REGISTERS = 5

	CALO_ADC_TO_MV = 2500. / 4096.
)

// ChannelID is a calorimeter readout channel: crate, board and channel
// inside the board.
type ChannelID struct {
	Crate   int
	Board   int
	Channel int
}

func (c ChannelID) String() string {
	return fmt.Sprintf("%d.%d.%d", c.Crate, c.Board, c.Channel)
}

type CaloHit struct {
	Channel          ChannelID
	ReferenceTime    int64
	PeakAmplitude    int16
	HighThreshold    bool
	LowThresholdOnly bool
}

// GGTimes is one timing group of a tracker hit: anode registers R0-R4 and
// the bottom (R5) and top (R6) cathodes.
type GGTimes struct {
	Anodes        [N_ANODE_REGISTERS]int64
	BottomCathode int64
	TopCathode    int64
}

func NewGGTimes() GGTimes {
	t := GGTimes{BottomCathode: InvalidTicks, TopCathode: InvalidTicks}
	for i := range t.Anodes {
		t.Anodes[i] = InvalidTicks
	}
	return t
}

func (t GGTimes) HasAnode() bool         { return t.Anodes[0] != InvalidTicks }
func (t GGTimes) HasBottomCathode() bool { return t.BottomCathode != InvalidTicks }
func (t GGTimes) HasTopCathode() bool    { return t.TopCathode != InvalidTicks }

type TrackerHit struct {
	Cell  CellID
	Times []GGTimes
}

type EventRecord struct {
	RunID       int32
	EventID     int32
	TriggerIDs  []int32
	CaloHits    []CaloHit
	TrackerHits []TrackerHit
}

// EventSource yields event records one at a time.
type EventSource interface {
	HasNext() bool
	Next() (EventRecord, error)
}

// CaloAmplitudeMV converts the firmware peak amplitude (ADC/8) to mV.
func CaloAmplitudeMV(peak int16) float64 {
	return float64(peak) * CALO_ADC_TO_MV / 8.0
}
