package redfile

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

const RED_GROUP = "RED"

// Writer stores raw event data records in an HDF5 file.
type Writer struct {
	File         *hdf5.File
	Filename     string
	REDGroup     *hdf5.Group
	TagTable     *hdf5.Dataset
	EventTable   *hdf5.Dataset
	TriggerTable *hdf5.Dataset
	CaloTable    *hdf5.Dataset
	TrackerTable *hdf5.Dataset
	EvtCounter   int
	triggerRows  int
	caloRows     int
	trackerRows  int
}

func NewWriter(filename string) (*Writer, error) {
	return newWriterWithTag(filename, sndisplay.RED_SERIAL_TAG)
}

func newWriterWithTag(filename string, tag string) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename}
	writer.File, err = createFile(filename)
	if err != nil {
		return nil, &sndisplay.ErrOpenFile{Filename: filename, Err: err}
	}
	if writer.REDGroup, err = createGroup(writer.File, RED_GROUP); err != nil {
		writer.Close()
		return nil, err
	}

	tables := []struct {
		dset  **hdf5.Dataset
		name  string
		dtype interface{}
	}{
		{&writer.TagTable, "tag", tagHDF5{}},
		{&writer.EventTable, "events", eventHDF5{}},
		{&writer.TriggerTable, "triggers", triggerHDF5{}},
		{&writer.CaloTable, "calo_hits", caloHitHDF5{}},
		{&writer.TrackerTable, "tracker_times", trackerTimesHDF5{}},
	}
	for _, table := range tables {
		if *table.dset, err = createTable(writer.REDGroup, table.name, table.dtype); err != nil {
			writer.Close()
			return nil, err
		}
	}

	tagRow := []tagHDF5{{tag: convertToHdf5String(tag)}}
	if _, err := writeArrayToTable(writer.TagTable, &tagRow, 0); err != nil {
		writer.Close()
		return nil, fmt.Errorf("error writing record tag: %w", err)
	}
	return writer, nil
}

func (w *Writer) WriteEvent(event sndisplay.EventRecord) error {
	rows := flattenEvent(w.EvtCounter, event)

	var err error
	if _, err = writeArrayToTable(w.EventTable, &rows.events, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing event %d: %w", event.EventID, err)
	}
	if w.triggerRows, err = writeArrayToTable(w.TriggerTable, &rows.triggers, w.triggerRows); err != nil {
		return fmt.Errorf("error writing triggers of event %d: %w", event.EventID, err)
	}
	if w.caloRows, err = writeArrayToTable(w.CaloTable, &rows.calo, w.caloRows); err != nil {
		return fmt.Errorf("error writing calo hits of event %d: %w", event.EventID, err)
	}
	if w.trackerRows, err = writeArrayToTable(w.TrackerTable, &rows.tracker, w.trackerRows); err != nil {
		return fmt.Errorf("error writing tracker hits of event %d: %w", event.EventID, err)
	}
	w.EvtCounter++
	return nil
}

func (w *Writer) Close() error {
	var errs []error

	datasets := []struct {
		dset *hdf5.Dataset
		name string
	}{
		{w.TagTable, "tag table"},
		{w.EventTable, "event table"},
		{w.TriggerTable, "trigger table"},
		{w.CaloTable, "calo hits table"},
		{w.TrackerTable, "tracker times table"},
	}
	for _, d := range datasets {
		if d.dset == nil {
			continue
		}
		if err := d.dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", d.name, err))
		}
	}
	if w.REDGroup != nil {
		if err := w.REDGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing RED group: %w", err))
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
