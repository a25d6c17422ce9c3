package elevresult

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	CodeInvalidFloor          = "Elevator.InvalidFloor"
	CodeInvalidPassengerCount = "Elevator.InvalidPassengerCount"
	CodeCapacityExceeded      = "Elevator.CapacityExceeded"
	CodeInvalidRemoval        = "Elevator.InvalidRemoval"
	CodeNoAvailableElevator   = "Elevator.NoAvailableElevator"
	CodeOperationCancelled    = "Elevator.OperationCancelled"
	CodeInvalidSettings       = "Elevator.InvalidSettings"
	CodeInternal              = "Elevator.Internal"
)

// ElevError is a coded error. Two ElevErrors match under errors.Is when
// their codes are equal, regardless of message.
type ElevError struct {
	Code    string
	Message string
}

func (e *ElevError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ElevError) Is(target error) bool {
	t, ok := target.(*ElevError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy carrying the same code and a more specific message.
func (e *ElevError) WithMessage(format string, args ...any) *ElevError {
	return &ElevError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidFloor          = &ElevError{CodeInvalidFloor, "Floor numbers is not valid"}
	ErrInvalidPassengerCount = &ElevError{CodeInvalidPassengerCount, "At least one passenger is required"}
	ErrCapacityExceeded      = &ElevError{CodeCapacityExceeded, "Elevator capacity exceeded"}
	ErrInvalidRemoval        = &ElevError{CodeInvalidRemoval, "Cannot remove more passengers than present"}
	ErrNoAvailableElevator   = &ElevError{CodeNoAvailableElevator, "No elevator is currently available"}
	ErrOperationCancelled    = &ElevError{CodeOperationCancelled, "Elevator operation was cancelled"}
	ErrInvalidSettings       = &ElevError{CodeInvalidSettings, "Elevator settings are not valid"}
	ErrInternal              = &ElevError{CodeInternal, "Internal elevator error"}
)

// FromError maps any error onto the taxonomy. Context errors become
// OperationCancelled, anything unrecognised becomes Internal.
func FromError(err error) *ElevError {
	if err == nil {
		return nil
	}
	var elevErr *ElevError
	if errors.As(err, &elevErr) {
		return elevErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrOperationCancelled.WithMessage("Elevator operation was cancelled: %v", err)
	}
	return ErrInternal.WithMessage("Internal elevator error: %v", err)
}

type Result struct {
	RequestID uuid.UUID
	Err       *ElevError
}

func Success(requestID uuid.UUID) Result {
	return Result{RequestID: requestID}
}

func Failure(requestID uuid.UUID, err error) Result {
	elevErr := FromError(err)
	if elevErr == nil {
		elevErr = ErrInternal
	}
	return Result{RequestID: requestID, Err: elevErr}
}

func (r Result) IsSuccess() bool {
	return r.Err == nil
}

func (r Result) IsFailure() bool {
	return r.Err != nil
}

// AsError returns the failure as an error, or nil on success.
func (r Result) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}
