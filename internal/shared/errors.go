package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Source and transport errors
	ErrLoadFailed     = fmt.Errorf("failed to load members")
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrInvalidPayload = fmt.Errorf("invalid member payload")

	// Cache errors
	ErrCacheMiss = fmt.Errorf("no cached members")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidField = fmt.Errorf("invalid field")
	ErrInvalidFlag  = fmt.Errorf("invalid flag value")
)
