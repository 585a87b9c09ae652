package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"github.com/wekeepgrowing/juansite-billing/internal/metrics"
	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
	"go.uber.org/zap"
)

// PaymentSettings describes the external payment hand-off.
type PaymentSettings struct {
	// Method is recorded on every transaction and subscription, e.g. paymaya.
	Method string
	// CheckoutURL is where the user pays before reporting a reference.
	CheckoutURL string
}

// UpgradeWorkflow drives an upgrade attempt from tier selection through the external
// payment to subscription activation. The attempt is an explicit value: every
// operation takes the current attempt and returns the next one, and on error the
// returned attempt is the one the caller should keep.
type UpgradeWorkflow struct {
	catalog       *Catalog
	subscriptions *SubscriptionService
	transactions  repository.TransactionRepository
	store         repository.UpgradeStore
	verifier      provider.PaymentVerifier
	guard         InFlightGuard
	payment       PaymentSettings
	logger        *zap.Logger
	now           func() time.Time
}

// NewUpgradeWorkflow creates a new upgrade workflow
func NewUpgradeWorkflow(
	catalog *Catalog,
	subscriptions *SubscriptionService,
	transactions repository.TransactionRepository,
	store repository.UpgradeStore,
	verifier provider.PaymentVerifier,
	guard InFlightGuard,
	payment PaymentSettings,
	logger *zap.Logger,
) *UpgradeWorkflow {
	return &UpgradeWorkflow{
		catalog:       catalog,
		subscriptions: subscriptions,
		transactions:  transactions,
		store:         store,
		verifier:      verifier,
		guard:         guard,
		payment:       payment,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Begin selects a tier and returns an attempt in the details state. It writes nothing.
func (w *UpgradeWorkflow) Begin(ctx context.Context, identity entity.Identity, tierID entity.TierID) (entity.Attempt, error) {
	tier, err := w.catalog.Tier(tierID)
	if err != nil {
		return entity.Attempt{}, err
	}

	current, err := w.subscriptions.GetCurrentTier(ctx, identity.UserID)
	if err != nil {
		return entity.Attempt{}, err
	}
	if !tier.ID.Outranks(current) {
		return entity.Attempt{}, fmt.Errorf("%w: %s is not above %s", domainErrors.ErrTierNotUpgradable, tier.ID, current)
	}

	displayName := identity.DisplayName
	if displayName == "" {
		displayName = identity.Email
	}

	return entity.Attempt{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: displayName,
		Tier:        tier,
		State:       entity.StateDetails,
	}, nil
}

// InitiateUpgrade records a pending transaction for the attempt's tier and hands the
// user off to the payment provider. The attempt only leaves the details state once
// the transaction is stored.
func (w *UpgradeWorkflow) InitiateUpgrade(ctx context.Context, attempt entity.Attempt) (entity.Attempt, *entity.PaymentTransaction, error) {
	defer w.observe("initiate_upgrade", time.Now())

	if attempt.State != entity.StateDetails {
		return attempt, nil, w.fail("initiate_upgrade",
			fmt.Errorf("%w: cannot initiate from %s", domainErrors.ErrInvalidTransition, attempt.State))
	}

	release, err := w.guard.Acquire(ctx, "attempt:"+attempt.ID)
	if err != nil {
		return attempt, nil, w.fail("initiate_upgrade", err)
	}
	defer release()

	now := w.now()
	txn := &entity.PaymentTransaction{
		ID:            entity.NewTransactionID(),
		UserID:        attempt.UserID,
		TierID:        attempt.Tier.ID,
		Amount:        attempt.Tier.MonthlyPrice,
		Currency:      attempt.Tier.Currency,
		PaymentMethod: w.payment.Method,
		Status:        entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := w.transactions.Create(ctx, txn); err != nil {
		w.logger.Error("Failed to create payment transaction",
			zap.String("attempt_id", attempt.ID),
			zap.String("user_id", attempt.UserID),
			zap.String("tier", attempt.Tier.ID.String()),
			zap.Error(err))
		return attempt, nil, w.fail("initiate_upgrade", fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err))
	}

	next := attempt
	next.State = entity.StateAwaitingExternalPayment
	next.TransactionID = txn.ID
	next.PaymentURL = w.payment.CheckoutURL

	metrics.UpgradesInitiated.WithLabelValues(txn.TierID.String()).Inc()
	w.logger.Info("Upgrade initiated",
		zap.String("attempt_id", attempt.ID),
		zap.String("transaction_id", txn.ID),
		zap.String("user_id", txn.UserID),
		zap.String("tier", txn.TierID.String()),
		zap.String("amount", txn.Amount.StringFixed(2)))

	return next, txn, nil
}

// StartUpgrade is Begin followed by InitiateUpgrade.
func (w *UpgradeWorkflow) StartUpgrade(ctx context.Context, identity entity.Identity, tierID entity.TierID) (entity.Attempt, *entity.PaymentTransaction, error) {
	attempt, err := w.Begin(ctx, identity, tierID)
	if err != nil {
		return attempt, nil, w.fail("initiate_upgrade", err)
	}
	return w.InitiateUpgrade(ctx, attempt)
}

// Resume rebuilds the awaiting attempt of a pending transaction owned by the user.
func (w *UpgradeWorkflow) Resume(ctx context.Context, identity entity.Identity, transactionID string) (entity.Attempt, error) {
	txn, err := w.loadOwnedTransaction(ctx, identity.UserID, transactionID)
	if err != nil {
		return entity.Attempt{}, err
	}
	if !txn.IsPending() {
		return entity.Attempt{}, fmt.Errorf("%w: transaction is %s", domainErrors.ErrTransactionNotPending, txn.Status)
	}

	tier, err := w.catalog.Tier(txn.TierID)
	if err != nil {
		return entity.Attempt{}, err
	}
	// the attempt carries the price that was snapshotted, not the current catalog price
	tier.MonthlyPrice = txn.Amount
	tier.Currency = txn.Currency

	displayName := identity.DisplayName
	if displayName == "" {
		displayName = identity.Email
	}

	return entity.Attempt{
		ID:            txn.ID,
		UserID:        identity.UserID,
		Email:         identity.Email,
		DisplayName:   displayName,
		Tier:          tier,
		State:         entity.StateAwaitingExternalPayment,
		TransactionID: txn.ID,
		PaymentURL:    w.payment.CheckoutURL,
	}, nil
}

// SubmitReference checks the self-reported reference with the verifier. An accepted
// reference completes the transaction, upserts the subscription and records the
// upgrade event in one store transaction. A rejected reference fails the transaction
// and returns the attempt to details. Any other failure leaves the attempt awaiting
// payment so the user can retry.
func (w *UpgradeWorkflow) SubmitReference(ctx context.Context, attempt entity.Attempt, reference string) (entity.Attempt, *entity.Subscription, error) {
	defer w.observe("submit_reference", time.Now())

	if attempt.State != entity.StateAwaitingExternalPayment {
		return attempt, nil, w.fail("submit_reference",
			fmt.Errorf("%w: cannot submit a reference from %s", domainErrors.ErrInvalidTransition, attempt.State))
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return attempt, nil, w.fail("submit_reference", domainErrors.ErrEmptyReference)
	}

	release, err := w.guard.Acquire(ctx, "transaction:"+attempt.TransactionID)
	if err != nil {
		return attempt, nil, w.fail("submit_reference", err)
	}
	defer release()

	txn, err := w.loadOwnedTransaction(ctx, attempt.UserID, attempt.TransactionID)
	if err != nil {
		return attempt, nil, w.fail("submit_reference", err)
	}
	if !txn.IsPending() {
		return attempt, nil, w.fail("submit_reference",
			fmt.Errorf("%w: transaction is %s", domainErrors.ErrTransactionNotPending, txn.Status))
	}

	verdict, err := w.verifier.Verify(ctx, txn, reference)
	if err != nil {
		w.logger.Warn("Payment verifier unavailable",
			zap.String("transaction_id", txn.ID),
			zap.String("verifier", string(w.verifier.Name())),
			zap.Error(err))
		return attempt, nil, w.fail("submit_reference", fmt.Errorf("%w: %w", domainErrors.ErrVerifierUnavailable, err))
	}

	if !verdict.Verified {
		return w.reject(ctx, attempt, txn, verdict)
	}

	verifiedAt := w.now()
	subscription := &entity.Subscription{
		UserID:           attempt.UserID,
		Email:            attempt.Email,
		DisplayName:      attempt.DisplayName,
		Type:             txn.TierID,
		Status:           entity.SubscriptionStatusActive,
		StartDate:        verifiedAt,
		EndDate:          verifiedAt.Add(entity.SubscriptionPeriod),
		PaymentMethod:    txn.PaymentMethod,
		PaymentReference: reference,
		TransactionID:    txn.ID,
		UpdatedAt:        verifiedAt,
	}
	completion := &entity.UpgradeCompletion{
		TransactionID:    txn.ID,
		PaymentReference: reference,
		VerifiedAt:       verifiedAt,
		Subscription:     subscription,
		Event: &entity.UpgradeEvent{
			ID:               "evt_" + uuid.NewString(),
			TransactionID:    txn.ID,
			UserID:           txn.UserID,
			TierID:           txn.TierID,
			Amount:           txn.Amount,
			Currency:         txn.Currency,
			PaymentMethod:    txn.PaymentMethod,
			PaymentReference: reference,
			VerifiedAt:       verifiedAt,
			SubscriptionEnd:  subscription.EndDate,
			CreatedAt:        verifiedAt,
		},
	}

	if err := w.store.CompleteUpgrade(ctx, completion); err != nil {
		if errors.Is(err, domainErrors.ErrTransactionNotPending) {
			return attempt, nil, w.fail("submit_reference", err)
		}
		w.logger.Error("Failed to complete upgrade",
			zap.String("transaction_id", txn.ID),
			zap.String("user_id", txn.UserID),
			zap.Error(err))
		return attempt, nil, w.fail("submit_reference", fmt.Errorf("%w: %w", domainErrors.ErrCompletionFailed, err))
	}

	next := attempt
	next.State = entity.StateVerified

	metrics.UpgradesCompleted.WithLabelValues(txn.TierID.String(), string(w.verifier.Name())).Inc()
	w.logger.Info("Upgrade completed",
		zap.String("transaction_id", txn.ID),
		zap.String("user_id", txn.UserID),
		zap.String("tier", txn.TierID.String()),
		zap.Time("subscription_end_date", subscription.EndDate))

	return next, subscription, nil
}

// reject fails the transaction for a negative verdict. A new checkout is needed
// afterwards, so the attempt goes back to details.
func (w *UpgradeWorkflow) reject(ctx context.Context, attempt entity.Attempt, txn *entity.PaymentTransaction, verdict provider.Verdict) (entity.Attempt, *entity.Subscription, error) {
	metrics.VerificationsRejected.WithLabelValues(string(w.verifier.Name())).Inc()
	w.logger.Info("Payment reference rejected",
		zap.String("transaction_id", txn.ID),
		zap.String("user_id", txn.UserID),
		zap.String("reason", verdict.Reason))

	if err := w.transactions.MarkFailed(ctx, txn.ID, verdict.Reason, w.now()); err != nil {
		if errors.Is(err, domainErrors.ErrTransactionNotPending) {
			return attempt, nil, w.fail("submit_reference", err)
		}
		return attempt, nil, w.fail("submit_reference", fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err))
	}

	next := attempt
	next.State = entity.StateDetails
	next.TransactionID = ""
	next.PaymentURL = ""
	return next, nil, w.fail("submit_reference", fmt.Errorf("%w: %s", domainErrors.ErrPaymentNotVerified, verdict.Reason))
}

func (w *UpgradeWorkflow) loadOwnedTransaction(ctx context.Context, userID, transactionID string) (*entity.PaymentTransaction, error) {
	txn, err := w.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}
	if txn == nil || txn.UserID != userID {
		return nil, domainErrors.ErrTransactionNotFound
	}
	return txn, nil
}

// GetCurrentTier returns the user's tier, free when there is no subscription.
func (w *UpgradeWorkflow) GetCurrentTier(ctx context.Context, userID string) (entity.TierID, error) {
	return w.subscriptions.GetCurrentTier(ctx, userID)
}

func (w *UpgradeWorkflow) fail(operation string, err error) error {
	metrics.WorkflowErrors.WithLabelValues(operation, apperrors.CodeOf(err)).Inc()
	return err
}

func (w *UpgradeWorkflow) observe(operation string, start time.Time) {
	metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
