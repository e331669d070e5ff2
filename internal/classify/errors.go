package classify

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse means the provider answered but produced nothing the task
// alphabet accepts. It is retryable like a transport failure.
var ErrEmptyResponse = errors.New("classifier returned no usable label")

// ConfigurationError reports an unusable construction parameter. It is
// returned by constructors and never surfaces mid-flight.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// InvalidInputError marks a corpus row that cannot be classified. Such rows
// are skipped and counted, never fatal for their batch.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
