package manual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
	"go.uber.org/zap"
)

func TestTrustingVerifier_AcceptsAnyReference(t *testing.T) {
	v := NewTrustingVerifier(zap.NewNop())
	txn := &entity.PaymentTransaction{ID: "txn_1"}

	for _, ref := range []string{"REF123", "x", "not-a-real-receipt"} {
		verdict, err := v.Verify(context.Background(), txn, ref)
		require.NoError(t, err)
		assert.True(t, verdict.Verified, ref)
	}
	assert.Equal(t, provider.VerifierTypeTrust, v.Name())
}

func TestPatternVerifier(t *testing.T) {
	v, err := NewPatternVerifier(`[0-9]{12}`, zap.NewNop())
	require.NoError(t, err)
	txn := &entity.PaymentTransaction{ID: "txn_1"}

	t.Run("matching reference is verified", func(t *testing.T) {
		verdict, err := v.Verify(context.Background(), txn, "123456789012")
		require.NoError(t, err)
		assert.True(t, verdict.Verified)
	})

	t.Run("partial match is rejected", func(t *testing.T) {
		verdict, err := v.Verify(context.Background(), txn, "123456789012345")
		require.NoError(t, err)
		assert.False(t, verdict.Verified)
		assert.NotEmpty(t, verdict.Reason)
	})

	t.Run("wrong format is rejected", func(t *testing.T) {
		verdict, err := v.Verify(context.Background(), txn, "REF123")
		require.NoError(t, err)
		assert.False(t, verdict.Verified)
	})
}

func TestNewPatternVerifier_InvalidExpression(t *testing.T) {
	_, err := NewPatternVerifier(`[`, zap.NewNop())
	assert.Error(t, err)
}
