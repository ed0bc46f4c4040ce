package redfile

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	sndisplay "github.com/snemo/sndisplay_go/pkg"
)

func writeRedFile(t *testing.T, filename string, tag string, events []sndisplay.EventRecord) {
	t.Helper()
	w, err := newWriterWithTag(filename, tag)
	if err != nil {
		t.Fatalf("creating %s: %v", filename, err)
	}
	for _, event := range events {
		if err := w.WriteEvent(event); err != nil {
			t.Fatalf("writing event %d: %v", event.EventID, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing %s: %v", filename, err)
	}
}

func TestWriterReaderMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	events := sampleEvents()
	first := filepath.Join(dir, "first.h5")
	empty := filepath.Join(dir, "empty.h5")
	second := filepath.Join(dir, "second.h5")
	writeRedFile(t, first, sndisplay.RED_SERIAL_TAG, events[:2])
	writeRedFile(t, empty, sndisplay.RED_SERIAL_TAG, nil)
	writeRedFile(t, second, sndisplay.RED_SERIAL_TAG, events[2:])

	reader := NewReader([]string{first, empty, second})
	var got []sndisplay.EventRecord
	for reader.HasNext() {
		event, err := reader.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, event)
	}
	if len(got) != len(events) {
		t.Fatalf("read %d events, want %d", len(got), len(events))
	}
	for i := range events {
		if !reflect.DeepEqual(got[i], events[i]) {
			t.Errorf("event %d:\ngot  %+v\nwant %+v", i, got[i], events[i])
		}
	}
	if _, err := reader.Next(); err == nil {
		t.Errorf("Next after the last record should fail")
	}
}

func TestReaderFindEvent(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.h5")
	writeRedFile(t, filename, sndisplay.RED_SERIAL_TAG, sampleEvents())

	event, scanned, found, err := sndisplay.FindEvent(NewReader([]string{filename}), 13)
	if err != nil || !found {
		t.Fatalf("FindEvent: found %t, err %v", found, err)
	}
	if scanned != 2 || event.TriggerIDs[0] != 14 {
		t.Errorf("event %+v after %d records", event, scanned)
	}
}

func TestReaderUnexpectedTag(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "udd.h5")
	writeRedFile(t, filename, "snemo::datamodel::unified_digitized_data", sampleEvents())

	reader := NewReader([]string{filename})
	if !reader.HasNext() {
		t.Fatal("HasNext should report the error")
	}
	_, err := reader.Next()
	var unexpected *sndisplay.ErrUnexpectedRecordTag
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected ErrUnexpectedRecordTag, got %v", err)
	}
	if unexpected.Found != "snemo::datamodel::unified_digitized_data" {
		t.Errorf("found tag %q", unexpected.Found)
	}
}

func TestReaderMissingFile(t *testing.T) {
	reader := NewReader([]string{filepath.Join(t.TempDir(), "missing.h5")})
	_, err := reader.Next()
	var openErr *sndisplay.ErrOpenFile
	if !errors.As(err, &openErr) {
		t.Errorf("expected ErrOpenFile, got %v", err)
	}
}

func TestSnapshotWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "snapshots.h5")
	w, err := NewSnapshotWriter(filename)
	if err != nil {
		t.Fatal(err)
	}
	var content sndisplay.Content
	content.OM[68] = 1
	content.Cell[1111] = 0.2
	for _, event := range sampleEvents() {
		if err := w.WriteSnapshot(event, &content); err != nil {
			t.Fatal(err)
		}
	}
	if w.EvtCounter != 3 {
		t.Errorf("%d snapshots written", w.EvtCounter)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
