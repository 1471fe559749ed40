// File: facade/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"github.com/sirupsen/logrus"
)

// Option customizes FiFoFile initialization.
type Option func(*FiFoFile)

// WithLogger replaces the facade logger. The configured log_level is not
// applied to a caller-supplied logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *FiFoFile) {
		if l != nil {
			f.log = l
		}
	}
}
