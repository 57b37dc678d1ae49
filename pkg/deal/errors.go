package deal

import (
	"errors"
	"fmt"
)

// Domain-level error values returned by the deal service.
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCreatorNotFound      = errors.New("creator not found")
	ErrInvalidState         = errors.New("invalid state for transition")
	ErrDuplicateOffer       = errors.New("offer already exists for this creator and campaign")
	ErrNoDraftSubmitted     = errors.New("no content draft submitted")
	ErrInvalidApplicationID = errors.New("invalid application id")
	ErrInvalidCampaignID    = errors.New("invalid campaign id")
	ErrInvalidCreatorID     = errors.New("invalid creator id")
	ErrInvalidBrandID       = errors.New("invalid brand id")
	ErrInvalidStatus        = errors.New("invalid application status")
	ErrInvalidPartyType     = errors.New("invalid party type")
	ErrInvalidContentStatus = errors.New("invalid content status")
	ErrInvalidDecision      = errors.New("invalid content decision")
	ErrInvalidMatchScore    = errors.New("invalid match score")
	ErrInvalidMessageBody   = errors.New("invalid message body")
	ErrInvalidDraftURL      = errors.New("invalid draft url")
	ErrInvalidAmountCents   = errors.New("invalid amount cents")
	ErrInvalidServiceConfig = errors.New("invalid service config")
)

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
