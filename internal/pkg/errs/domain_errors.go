package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Unit errors
	ErrUnitNotFound = errors.New("unit not found")
	ErrUnitInactive = errors.New("unit is not active")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUnitUnavailable   = errors.New("unit is not available for the requested dates")
	ErrInvalidStayRange  = errors.New("invalid stay range")
	ErrNoUnitsSelected   = errors.New("no unit selected")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Coupon errors
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponRejected = errors.New("coupon rejected")

	// Extras errors
	ErrExtraNotFound = errors.New("extra not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
