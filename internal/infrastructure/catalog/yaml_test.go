package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

func TestParseTiers_Overrides(t *testing.T) {
	tiers, err := ParseTiers([]byte(`
tiers:
  - id: growth
    monthly_price: "649.00"
    features: ["Blog tools", "Analytics"]
  - id: pro
    name: PRO PLUS
    description: ""
`))
	require.NoError(t, err)
	require.Len(t, tiers, 5)

	assert.Equal(t, entity.TierGrowth, tiers[2].ID)
	assert.True(t, decimal.RequireFromString("649").Equal(tiers[2].MonthlyPrice))
	assert.Equal(t, []string{"Blog tools", "Analytics"}, tiers[2].Features)
	assert.Equal(t, "GROWTH", tiers[2].Name)

	assert.Equal(t, "PRO PLUS", tiers[3].Name)
	assert.Empty(t, tiers[3].Description)
	assert.True(t, decimal.RequireFromString("999").Equal(tiers[3].MonthlyPrice))
}

func TestParseTiers_Empty(t *testing.T) {
	tiers, err := ParseTiers([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTiers(), tiers)
}

func TestParseTiers_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown id":     "tiers:\n  - id: lifetime\n    monthly_price: \"4999\"\n",
		"duplicate":      "tiers:\n  - id: pro\n  - id: pro\n",
		"bad price":      "tiers:\n  - id: pro\n    monthly_price: abc\n",
		"negative price": "tiers:\n  - id: pro\n    monthly_price: \"-1\"\n",
		"priced free":    "tiers:\n  - id: free\n    monthly_price: \"10\"\n",
		"bad yaml":       "tiers: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTiers([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoadTiersFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  - id: starter\n    currency: php\n"), 0o600))

	tiers, err := LoadTiersFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "PHP", tiers[1].Currency)

	_, err = LoadTiersFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
