package sndisplay

import "fmt"

// ErrInvalidIdentifier represents a physical identifier with a field outside its declared range.
type ErrInvalidIdentifier struct {
	Family string
	Field  string
	Value  int
}

func (e *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid %s identifier: %s=%d out of range", e.Family, e.Field, e.Value)
}

// ErrInvalidIndex represents a flat index outside every family range.
type ErrInvalidIndex struct {
	Family string
	Index  int
}

func (e *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("invalid %s index %d", e.Family, e.Index)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrUnexpectedRecordTag is returned when a record does not carry the expected serialization tag.
type ErrUnexpectedRecordTag struct {
	Expected string
	Found    string
}

func (e *ErrUnexpectedRecordTag) Error() string {
	return fmt.Sprintf("unexpected record tag %q (expected %q)", e.Found, e.Expected)
}

// ErrInvalidMask represents a commissioning area or crate number outside its range.
type ErrInvalidMask struct {
	Kind  string
	Value int
	Max   int
}

func (e *ErrInvalidMask) Error() string {
	return fmt.Sprintf("wrong tracker %s %d ([0-%d])", e.Kind, e.Value, e.Max)
}
