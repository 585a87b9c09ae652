package provider

import (
	"context"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// VerifierType names a PaymentVerifier implementation.
type VerifierType string

const (
	VerifierTypeTrust   VerifierType = "trust"
	VerifierTypePattern VerifierType = "pattern"
	VerifierTypeStripe  VerifierType = "stripe"
)

// Verdict is the outcome of checking a self-reported payment reference.
type Verdict struct {
	Verified bool
	// Reason explains a negative verdict. It is stored on the failed transaction.
	Reason string
}

// Verified is the verdict of a reference that was accepted.
func Verified() Verdict {
	return Verdict{Verified: true}
}

// Rejected is the verdict of a reference that definitively does not prove payment.
func Rejected(reason string) Verdict {
	return Verdict{Reason: reason}
}

// PaymentVerifier decides whether a reference proves payment for a pending transaction.
// A returned error means no decision could be reached and the caller may retry; a
// negative Verdict is final for the transaction.
type PaymentVerifier interface {
	Verify(ctx context.Context, txn *entity.PaymentTransaction, reference string) (Verdict, error)
	Name() VerifierType
}
