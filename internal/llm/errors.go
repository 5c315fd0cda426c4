package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the generation provider is unreachable.
	ErrProviderUnavailable = errors.New("generation provider unavailable")

	// ErrTimeout indicates the generation request exceeded the configured timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrInvalidOutput indicates the raw model response could not be used
	// in the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrMissingAPIKey indicates a hosted provider was selected without credentials.
	ErrMissingAPIKey = errors.New("missing api key")

	// ErrRetryExhausted indicates all transport retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("generation retry attempts exhausted")
)
