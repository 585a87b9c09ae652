package errors

import (
	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// Upgrade workflow errors. Each carries a transport code; wrap them with %w so
// both errors.Is and code lookup keep working.
var (
	// ErrUnknownTier indicates a tier identifier outside the catalog
	ErrUnknownTier = apperrors.NewAppError(apperrors.ErrInvalidArgument, "unknown subscription tier", nil)

	// ErrTierNotUpgradable indicates the selected tier is not above the user's current tier
	ErrTierNotUpgradable = apperrors.NewAppError(apperrors.ErrConflict, "selected tier is not an upgrade over the current plan", nil)

	// ErrEmptyReference indicates a blank payment reference was submitted
	ErrEmptyReference = apperrors.NewAppError(apperrors.ErrInvalidArgument, "please enter your transaction reference number", nil)

	// ErrInvalidTransition indicates an operation was called from the wrong workflow state
	ErrInvalidTransition = apperrors.NewAppError(apperrors.ErrConflict, "operation not allowed in the current upgrade step", nil)

	// ErrOperationInProgress indicates a write for the same attempt is still outstanding
	ErrOperationInProgress = apperrors.NewAppError(apperrors.ErrConflict, "another request for this upgrade is still processing", nil)

	ErrTransactionNotFound = apperrors.NewAppError(apperrors.ErrNotFound, "payment transaction not found", nil)

	ErrUpgradeEventNotFound = apperrors.NewAppError(apperrors.ErrNotFound, "upgrade event not found", nil)

	// ErrTransactionNotPending indicates the transaction already completed, failed or expired
	ErrTransactionNotPending = apperrors.NewAppError(apperrors.ErrConflict, "payment transaction is no longer pending", nil)

	// ErrPaymentNotVerified indicates the verifier rejected the submitted reference
	ErrPaymentNotVerified = apperrors.NewAppError(apperrors.ErrPaymentRejected, "payment could not be verified", nil)

	// ErrStoreUnavailable indicates a record store failure; the caller may retry
	ErrStoreUnavailable = apperrors.NewAppError(apperrors.ErrUnavailable, "error processing payment, please try again", nil)

	// ErrCompletionFailed indicates the accepted reference could not be recorded; nothing was written
	ErrCompletionFailed = apperrors.NewAppError(apperrors.ErrUnavailable, "error verifying payment, please try again or contact support", nil)

	// ErrVerifierUnavailable indicates the verifier could not reach a decision; the caller may retry
	ErrVerifierUnavailable = apperrors.NewAppError(apperrors.ErrUnavailable, "payment verification is temporarily unavailable, please try again", nil)
)
