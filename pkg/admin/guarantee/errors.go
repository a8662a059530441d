package guarantee

import "errors"

// Sentinel errors the service layer maps onto HTTP status codes.
var (
	ErrInvalidTemplate          = errors.New("invalid guarantee template")
	ErrTemplateNotFound         = errors.New("guarantee template not found")
	ErrTemplateInactive         = errors.New("guarantee template is not active")
	ErrInstanceNotFound         = errors.New("guarantee instance not found")
	ErrMilestoneNotFound        = errors.New("guarantee milestone not found")
	ErrMilestoneAlreadyResolved = errors.New("milestone already left the pending state")
	ErrInstanceNotActive        = errors.New("guarantee instance is not active")
	ErrInstanceAlreadyResolved  = errors.New("guarantee instance already resolved")
	ErrConditionsNotMet         = errors.New("guarantee conditions are not yet satisfied")
	ErrEmailMismatch            = errors.New("client email does not match this guarantee")
	ErrSelfReportOnly           = errors.New("condition does not accept client evidence")
	ErrNoPaymentReference       = errors.New("no gateway payment reference for refund")
	ErrRolloverTargetMissing    = errors.New("rollover target is not configured")
)
