// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration snapshot and debug introspection layer for
// the FIFO reader.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot of the effective reader configuration
//   - Counters updated by the read loop
//   - Debug probe registration and state export
package control
