package grid

import (
	"fmt"
	"github.com/pkg/errors"
	"math"
)

// ConfigurationError is returned for invalid grid parameters. It's always returned before any candidate is enumerated.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "Invalid grid configuration: " + e.Message
}

func newConfigurationError(format string, args ...any) error {
	return errors.WithStack(&ConfigurationError{Message: fmt.Sprintf(format, args...)})
}

// IsConfigurationError returns true if the given error or any error it wraps is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var configurationError *ConfigurationError
	return errors.As(err, &configurationError)
}

// ValidateParameters checks that the cell size is a positive finite number and that the offset lies within
// [0, cellSize).
func ValidateParameters(cellSize float64, offset float64) error {
	if math.IsNaN(cellSize) || math.IsInf(cellSize, 0) || cellSize <= 0 {
		return newConfigurationError("cell size must be a finite number greater than 0 but was %v", cellSize)
	}
	if math.IsNaN(offset) || offset < 0 || offset >= cellSize {
		return newConfigurationError("offset must be within [0, %v) but was %v", cellSize, offset)
	}
	return nil
}
