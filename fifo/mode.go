// File: fifo/mode.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fifo

import (
	"os"
	"strconv"
	"strings"

	"github.com/momentics/hioload-fifo/api"
)

// DefaultMode is the permission used when none is configured.
const DefaultMode = "0o666"

// ParseMode parses an octal permission string such as "0o644", "0644" or
// "644". Values above 0o7777 are rejected.
func ParseMode(s string) (os.FileMode, error) {
	digits := strings.TrimSpace(s)
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'o' || digits[1] == 'O') {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, 8, 32)
	if err != nil || v > 0o7777 {
		e := api.NewError(api.ErrCodeInvalidMode,
			"invalid create mode - must be an octal number like '0o666', '0o664', '0o644'").
			WithContext("mode", s)
		if err != nil {
			e.Wrap(err)
		}
		return 0, e
	}
	return permBits(uint32(v)), nil
}

// permBits maps the unix setuid/setgid/sticky bits onto os.FileMode.
func permBits(v uint32) os.FileMode {
	m := os.FileMode(v & 0o777)
	if v&0o4000 != 0 {
		m |= os.ModeSetuid
	}
	if v&0o2000 != 0 {
		m |= os.ModeSetgid
	}
	if v&0o1000 != 0 {
		m |= os.ModeSticky
	}
	return m
}
