package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable means the training catalog could not be loaded or
	// did not match the expected shape. The flow must not proceed.
	ErrCatalogUnavailable = errors.New("training catalog unavailable")

	// ErrMissingContractorContext means no contractor id is held locally;
	// the kiosk must send the user back to check-in.
	ErrMissingContractorContext = errors.New("missing contractor context")

	// ErrSubmissionFailed wraps a failed completion or finalize call. Local
	// state is left as is and the call may be retried.
	ErrSubmissionFailed = errors.New("training submission failed")

	// ErrFinalizeFailed is the ErrSubmissionFailed raised when every module
	// was reported but the final training submission was not. Only Finish
	// retries it.
	ErrFinalizeFailed = fmt.Errorf("%w: finalize", ErrSubmissionFailed)

	// ErrValidationFailure is returned when a quiz is submitted before every
	// video was watched and every book signed.
	ErrValidationFailure = errors.New("quiz locked until all videos are watched and all books signed")

	ErrModuleOutOfRange = errors.New("module index out of range")
	ErrModuleLocked     = errors.New("module is locked")
	ErrUnknownMedia     = errors.New("unknown video or book")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrAlreadyPassed    = errors.New("module already passed")
	ErrRequestPending   = errors.New("a submission is already in progress")
	ErrSessionClosed    = errors.New("training session already closed")
)
