package app

import "fmt"

// ServiceError is the error type returned across service boundaries.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error formats as "[Service.Operation] error message".
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the original error for errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError attaches service context to err. A nil err stays nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
