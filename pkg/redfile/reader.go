package redfile

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

// Reader reads the records of a sequence of RED files, one file at a time.
type Reader struct {
	Filenames []string
	fileIndex int
	events    []sndisplay.EventRecord
	position  int
	err       error
}

func NewReader(filenames []string) *Reader {
	return &Reader{Filenames: filenames}
}

// HasNext reports whether Next has a record or an error to return.
func (r *Reader) HasNext() bool {
	for r.err == nil && r.position >= len(r.events) {
		if r.fileIndex >= len(r.Filenames) {
			return false
		}
		filename := r.Filenames[r.fileIndex]
		r.fileIndex++
		events, err := loadFile(filename)
		if err != nil {
			r.err = err
			break
		}
		r.events = events
		r.position = 0
	}
	return true
}

func (r *Reader) Next() (sndisplay.EventRecord, error) {
	if !r.HasNext() {
		return sndisplay.EventRecord{}, fmt.Errorf("no more records")
	}
	if r.err != nil {
		return sndisplay.EventRecord{}, r.err
	}
	event := r.events[r.position]
	r.position++
	return event, nil
}

func loadFile(filename string) ([]sndisplay.EventRecord, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &sndisplay.ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	group, err := f.OpenGroup(RED_GROUP)
	if err != nil {
		return nil, fmt.Errorf("error opening group %s in %s: %w", RED_GROUP, filename, err)
	}
	defer group.Close()

	tags, err := readTable[tagHDF5](group, "tag")
	if err != nil {
		return nil, err
	}
	if err := checkTag(tags); err != nil {
		return nil, err
	}

	var rows eventRows
	if rows.events, err = readTable[eventHDF5](group, "events"); err != nil {
		return nil, err
	}
	if rows.triggers, err = readTable[triggerHDF5](group, "triggers"); err != nil {
		return nil, err
	}
	if rows.calo, err = readTable[caloHitHDF5](group, "calo_hits"); err != nil {
		return nil, err
	}
	if rows.tracker, err = readTable[trackerTimesHDF5](group, "tracker_times"); err != nil {
		return nil, err
	}
	events, err := groupEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", filename, err)
	}
	return events, nil
}

func checkTag(tags []tagHDF5) error {
	found := ""
	if len(tags) > 0 {
		found = convertFromHdf5String(tags[0].tag)
	}
	if found != sndisplay.RED_SERIAL_TAG {
		return &sndisplay.ErrUnexpectedRecordTag{Expected: sndisplay.RED_SERIAL_TAG, Found: found}
	}
	return nil
}
