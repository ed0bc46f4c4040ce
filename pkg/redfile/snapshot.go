package redfile

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

const DISPLAY_GROUP = "Display"

// SnapshotWriter stores the display content of each processed event.
type SnapshotWriter struct {
	File        *hdf5.File
	Filename    string
	Group       *hdf5.Group
	EventTable  *hdf5.Dataset
	OMContent   *hdf5.Dataset
	CellContent *hdf5.Dataset
	EvtCounter  int
}

func NewSnapshotWriter(filename string) (*SnapshotWriter, error) {
	var err error
	w := &SnapshotWriter{Filename: filename}
	if w.File, err = createFile(filename); err != nil {
		return nil, &sndisplay.ErrOpenFile{Filename: filename, Err: err}
	}
	if w.Group, err = createGroup(w.File, DISPLAY_GROUP); err != nil {
		w.Close()
		return nil, err
	}
	if w.EventTable, err = createTable(w.Group, "events", eventHDF5{}); err != nil {
		w.Close()
		return nil, err
	}
	if w.OMContent, err = create2dArray(w.Group, "om_content", sndisplay.N_OMS, hdf5.T_NATIVE_DOUBLE); err != nil {
		w.Close()
		return nil, err
	}
	if w.CellContent, err = create2dArray(w.Group, "cell_content", sndisplay.N_CELLS, hdf5.T_NATIVE_DOUBLE); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

func (w *SnapshotWriter) WriteSnapshot(event sndisplay.EventRecord, content *sndisplay.Content) error {
	row := []eventHDF5{{run_id: event.RunID, event_id: event.EventID}}
	if _, err := writeArrayToTable(w.EventTable, &row, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing snapshot event %d: %w", event.EventID, err)
	}
	om := content.OM[:]
	if err := write2dArray(w.OMContent, &om, w.EvtCounter, sndisplay.N_OMS); err != nil {
		return fmt.Errorf("error writing OM content of event %d: %w", event.EventID, err)
	}
	cells := content.Cell[:]
	if err := write2dArray(w.CellContent, &cells, w.EvtCounter, sndisplay.N_CELLS); err != nil {
		return fmt.Errorf("error writing cell content of event %d: %w", event.EventID, err)
	}
	w.EvtCounter++
	return nil
}

func (w *SnapshotWriter) Close() error {
	var errs []error
	for _, d := range []*hdf5.Dataset{w.EventTable, w.OMContent, w.CellContent} {
		if d == nil {
			continue
		}
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing dataset: %w", err))
		}
	}
	if w.Group != nil {
		if err := w.Group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing display group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
