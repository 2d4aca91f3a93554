package delivery

import "errors"

var (
	ErrMissingRequiredFields    = errors.New("missing required fields")
	ErrInvalidStatus            = errors.New("invalid status")
	ErrInvalidTransporterStatus = errors.New("invalid transporter status")

	ErrDeliveryNotFound       = errors.New("delivery not found")
	ErrForbidden              = errors.New("forbidden")
	ErrNotAssignedTransporter = errors.New("not the assigned transporter")

	ErrNoLongerAvailable = errors.New("delivery is no longer available")
	ErrAlreadyAccepted   = errors.New("delivery already accepted by another transporter")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrConcurrentUpdate  = errors.New("delivery was modified concurrently")

	ErrUnknownPolicy   = errors.New("unknown transition policy")
	ErrConditionNotMet = errors.New("conditional update matched no rows")
)
