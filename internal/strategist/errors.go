package strategist

import "fmt"

// ConfigError means the generator cannot run in the current environment,
// for example because no API credential is set.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// GenerationError wraps a failed call to the text-generation service.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	msg := "Unknown error"
	if e.Cause != nil && e.Cause.Error() != "" {
		msg = e.Cause.Error()
	}
	return fmt.Sprintf("Failed to generate report: %s", msg)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
