// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

// ReaderState enumerates the phases of the FIFO reader state machine.
type ReaderState int32

const (
	ReaderIdle ReaderState = iota
	ReaderOpening
	ReaderPolling
	ReaderReopening
	ReaderClosed
)

func (s ReaderState) String() string {
	switch s {
	case ReaderOpening:
		return "opening"
	case ReaderPolling:
		return "polling"
	case ReaderReopening:
		return "reopening"
	case ReaderClosed:
		return "closed"
	default:
		return "idle"
	}
}
