package app

import "fmt"

// WrapOperationError wraps an error with a consistent "failed to {operation}: %w" format.
//
// Example:
//
//	if err := os.WriteFile(name, pdf, 0644); err != nil {
//	    return WrapOperationError("write handout", err)
//	}
func WrapOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// WrapOperationErrorf is WrapOperationError with a formatted operation.
func WrapOperationErrorf(format string, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", fmt.Sprintf(format, args...), err)
}
