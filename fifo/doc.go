// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package fifo holds the setup-time collaborators of the FIFO reader:
// permission-mode parsing, node creation, the FIFO check, and a one-shot
// line writer that opens a fresh write handle per call.
package fifo
