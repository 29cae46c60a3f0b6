package lib

import "fmt"

// FormatError reports G85 text that could not be turned into a WaferMap.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("g85 format: %s: %v", e.Reason, e.Err)
	}

	return "g85 format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// AlignmentError reports that no strategy found a fiducial in both maps.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return "alignment: " + e.Reason
}

type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "input: " + e.Reason
}
