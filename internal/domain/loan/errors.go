package loan

import "errors"

var (
	ErrNotFound = errors.New("loan not found")

	// Requested principal or term is outside the policy bounds for the
	// loan type. Caller-facing; never retried.
	ErrPolicyViolation = errors.New("loan request violates policy bounds")

	// Malformed or non-positive numeric input.
	ErrInvalidInput = errors.New("invalid input")

	// The loan's status/stage changed between the caller's read and this
	// write. Caller must reload and re-present current state.
	ErrStaleTransition = errors.New("loan state changed since last read")

	// Acting role does not match the required approver for the stage.
	ErrUnauthorized = errors.New("role not authorized for this action")

	// Disbursement blocked while guarantor commitments are still pending.
	ErrGuarantorsPending = errors.New("guarantors have not all accepted")
)
