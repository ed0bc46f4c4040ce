package sndisplay

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// CablingResolver maps calorimeter readout channels to optical modules.
type CablingResolver interface {
	ResolveOM(channel ChannelID) (OmID, bool)
}

type CablingEntry struct {
	Crate   int `db:"Crate"`
	Board   int `db:"Board"`
	Channel int `db:"Channel"`
	OmNum   int `db:"OmNum"`
}

// CablingTable is an in memory channel -> flat OM number map.
type CablingTable struct {
	toOM map[ChannelID]int
}

func NewCablingTable(entries []CablingEntry) (*CablingTable, error) {
	table := &CablingTable{toOM: make(map[ChannelID]int, len(entries))}
	for _, entry := range entries {
		if _, err := DecodeOM(entry.OmNum); err != nil {
			return nil, fmt.Errorf("cabling entry %d.%d.%d: %w", entry.Crate, entry.Board, entry.Channel, err)
		}
		channel := ChannelID{Crate: entry.Crate, Board: entry.Board, Channel: entry.Channel}
		table.toOM[channel] = entry.OmNum
	}
	return table, nil
}

func (t *CablingTable) ResolveOM(channel ChannelID) (OmID, bool) {
	omNum, ok := t.toOM[channel]
	if !ok {
		return nil, false
	}
	id, err := DecodeOM(omNum)
	if err != nil {
		return nil, false
	}
	return id, true
}

func (t *CablingTable) Len() int {
	return len(t.toOM)
}

// Channels returns the mapped channels in crate, board, channel order.
func (t *CablingTable) Channels() []ChannelID {
	channels := make([]ChannelID, 0, len(t.toOM))
	for channel := range t.toOM {
		channels = append(channels, channel)
	}
	slices.SortFunc(channels, func(a, b ChannelID) int {
		if a.Crate != b.Crate {
			return a.Crate - b.Crate
		}
		if a.Board != b.Board {
			return a.Board - b.Board
		}
		return a.Channel - b.Channel
	})
	return channels
}

// DirectCabling is used without database. Crates 0 and 1 hold one main
// wall side each, board = column and channel = row. Crate 2 holds the
// x-walls on boards 0-7 (side, wall, column), channel = row, and the gamma
// vetos on boards 8-11 (side, wall), channel = column. Anything else is
// unmapped.
type DirectCabling struct{}

const (
	xwBoards = N_SIDES * XW_WALLS * XW_COLUMNS
	gvBoards = N_SIDES * GV_WALLS
)

func (DirectCabling) ResolveOM(channel ChannelID) (OmID, bool) {
	board, ch := channel.Board, channel.Channel
	if board < 0 || ch < 0 {
		return nil, false
	}
	var id OmID
	switch {
	case channel.Crate >= 0 && channel.Crate < N_SIDES:
		if board >= MW_COLUMNS || ch >= MW_ROWS {
			return nil, false
		}
		id = MainWallID{Side: channel.Crate, Column: board, Row: ch}
	case channel.Crate == N_SIDES && board < xwBoards:
		if ch >= XW_ROWS {
			return nil, false
		}
		id = XWallID{
			Side:   board / (XW_WALLS * XW_COLUMNS),
			Wall:   board / XW_COLUMNS % XW_WALLS,
			Column: board % XW_COLUMNS,
			Row:    ch,
		}
	case channel.Crate == N_SIDES && board < xwBoards+gvBoards:
		if ch >= GV_COLUMNS {
			return nil, false
		}
		board -= xwBoards
		id = GVetoID{Side: board / GV_WALLS, Wall: board % GV_WALLS, Column: ch}
	default:
		return nil, false
	}
	if _, err := EncodeOM(id); err != nil {
		return nil, false
	}
	return id, true
}
