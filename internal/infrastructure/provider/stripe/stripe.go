package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
	"go.uber.org/zap"
)

// MetadataTransactionID is the PaymentIntent metadata key that binds an intent to
// one payment transaction. An intent without it, or bound to another
// transaction, is never accepted.
const MetadataTransactionID = "transaction_id"

// StripeVerifier treats the reference as a Stripe PaymentIntent id and accepts it
// when the intent succeeded for this transaction with exactly its amount and currency.
type StripeVerifier struct {
	client paymentintent.Client
	logger *zap.Logger
}

// NewStripeVerifier creates a verifier. apiURL overrides the Stripe API base URL when set.
func NewStripeVerifier(secretKey, apiURL string, logger *zap.Logger) *StripeVerifier {
	backendConfig := &stripe.BackendConfig{
		LeveledLogger:     logger.Sugar(),
		MaxNetworkRetries: stripe.Int64(1),
	}
	if apiURL != "" {
		backendConfig.URL = stripe.String(apiURL)
	}

	return &StripeVerifier{
		client: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: secretKey,
		},
		logger: logger,
	}
}

func (s *StripeVerifier) Name() provider.VerifierType {
	return provider.VerifierTypeStripe
}

func (s *StripeVerifier) Verify(ctx context.Context, txn *entity.PaymentTransaction, reference string) (provider.Verdict, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := s.client.Get(reference, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			s.logger.Info("Payment intent not found",
				zap.String("transaction_id", txn.ID),
				zap.String("reference", reference))
			return provider.Rejected("payment reference not found"), nil
		}
		return provider.Verdict{}, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return provider.Rejected(fmt.Sprintf("payment status is %s", intent.Status)), nil
	}

	if bound := intent.Metadata[MetadataTransactionID]; bound != txn.ID {
		s.logger.Warn("Payment intent belongs to another transaction",
			zap.String("transaction_id", txn.ID),
			zap.String("reference", reference),
			zap.String("intent_transaction_id", bound))
		return provider.Rejected("payment reference does not belong to this transaction"), nil
	}

	expected := txn.Amount.Shift(2).IntPart()
	if intent.Amount != expected || !strings.EqualFold(string(intent.Currency), txn.Currency) {
		s.logger.Warn("Payment intent does not match transaction",
			zap.String("transaction_id", txn.ID),
			zap.String("reference", reference),
			zap.Int64("intent_amount", intent.Amount),
			zap.Int64("expected_amount", expected),
			zap.String("intent_currency", string(intent.Currency)))
		return provider.Rejected("paid amount does not match the selected plan"), nil
	}

	return provider.Verified(), nil
}
