package valueobject

import "errors"

// Sentinel errors crossing the engine boundary. Callers match with
// errors.Is after unwrapping.
var (
	// ErrInvalidTerm is returned when a deal is created or priced with a
	// non-positive term.
	ErrInvalidTerm = errors.New("term months must be positive")

	// ErrInvalidPaymentAmount is returned for a payment that is not a full
	// payoff and does not even cover the interest accrued for the period.
	// Accepting it would silently grow the balance.
	ErrInvalidPaymentAmount = errors.New("payment does not cover accrued interest")

	// ErrInsufficientFunds is returned when the paying farm's balance does
	// not cover a payment plus any prepayment penalty, or a buyout price.
	ErrInsufficientFunds = errors.New("insufficient farm balance")

	// ErrDealNotFound is returned when no deal exists for the requested id.
	ErrDealNotFound = errors.New("deal not found")

	// ErrDealAlreadyResolved is returned when a mutation targets a deal
	// whose active cycle is over. It is the idempotency guard against
	// duplicate refunds and buyouts.
	ErrDealAlreadyResolved = errors.New("deal already resolved")

	// ErrDealNotResolvable is returned when a lease action is attempted
	// outside TERM_COMPLETE.
	ErrDealNotResolvable = errors.New("lease has not completed its term")

	// ErrVehicleReferenceMissing signals that the asset's current condition
	// was unavailable when computing a damage penalty. Non-fatal: the
	// penalty defaults to zero.
	ErrVehicleReferenceMissing = errors.New("vehicle reference missing")

	// ErrInvalidStatusTransition is returned for any transition outside the
	// deal state machine.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
