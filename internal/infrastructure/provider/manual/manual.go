// Package manual holds verifiers that judge a reference without contacting the
// payment provider.
package manual

import (
	"context"
	"fmt"
	"regexp"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
	"go.uber.org/zap"
)

// TrustingVerifier accepts every non-empty reference as proof of payment.
type TrustingVerifier struct {
	logger *zap.Logger
}

func NewTrustingVerifier(logger *zap.Logger) *TrustingVerifier {
	return &TrustingVerifier{logger: logger}
}

func (v *TrustingVerifier) Name() provider.VerifierType {
	return provider.VerifierTypeTrust
}

func (v *TrustingVerifier) Verify(ctx context.Context, txn *entity.PaymentTransaction, reference string) (provider.Verdict, error) {
	v.logger.Debug("Accepting self-reported payment reference",
		zap.String("transaction_id", txn.ID),
		zap.String("reference", reference))
	return provider.Verified(), nil
}

// PatternVerifier accepts references matching a configured expression, such as the
// format of the provider's receipt numbers.
type PatternVerifier struct {
	pattern *regexp.Regexp
	logger  *zap.Logger
}

// NewPatternVerifier compiles expr. The whole reference must match.
func NewPatternVerifier(expr string, logger *zap.Logger) (*PatternVerifier, error) {
	pattern, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid reference pattern: %w", err)
	}
	return &PatternVerifier{pattern: pattern, logger: logger}, nil
}

func (v *PatternVerifier) Name() provider.VerifierType {
	return provider.VerifierTypePattern
}

func (v *PatternVerifier) Verify(ctx context.Context, txn *entity.PaymentTransaction, reference string) (provider.Verdict, error) {
	if !v.pattern.MatchString(reference) {
		v.logger.Info("Payment reference does not match expected format",
			zap.String("transaction_id", txn.ID),
			zap.String("reference", reference))
		return provider.Rejected("reference does not match the expected format"), nil
	}
	return provider.Verified(), nil
}
