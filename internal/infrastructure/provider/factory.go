package provider

import (
	"fmt"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
	"github.com/wekeepgrowing/juansite-billing/internal/infrastructure/provider/manual"
	stripeProvider "github.com/wekeepgrowing/juansite-billing/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates payment verifiers based on the configured type
type Factory struct {
	config config.PaymentConfig
	logger *zap.Logger
}

// NewFactory creates a new verifier factory
func NewFactory(config config.PaymentConfig, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetVerifier returns the verifier for verifierType
func (f *Factory) GetVerifier(verifierType provider.VerifierType) (provider.PaymentVerifier, error) {
	logger := f.logger.With(zap.String("verifier", string(verifierType)))

	switch verifierType {
	case provider.VerifierTypeTrust:
		return manual.NewTrustingVerifier(logger), nil
	case provider.VerifierTypePattern:
		verifier, err := manual.NewPatternVerifier(f.config.ReferencePattern, logger)
		if err != nil {
			return nil, err
		}
		return verifier, nil
	case provider.VerifierTypeStripe:
		if f.config.Stripe.SecretKey == "" {
			return nil, fmt.Errorf("Stripe secret key not configured")
		}
		return stripeProvider.NewStripeVerifier(f.config.Stripe.SecretKey, f.config.Stripe.APIURL, logger), nil
	default:
		return nil, fmt.Errorf("unsupported verifier type: %s", verifierType)
	}
}

// GetConfiguredVerifier returns the verifier named by payment.verifier, defaulting to trust.
func (f *Factory) GetConfiguredVerifier() (provider.PaymentVerifier, error) {
	verifierStr := f.config.Verifier
	if verifierStr == "" {
		verifierStr = string(provider.VerifierTypeTrust)
	}
	return f.GetVerifier(provider.VerifierType(verifierStr))
}
