package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TierID identifies a subscription tier.
type TierID string

const (
	TierFree     TierID = "free"
	TierStarter  TierID = "starter"
	TierGrowth   TierID = "growth"
	TierPro      TierID = "pro"
	TierBizElite TierID = "biz_elite"
)

// SubscriptionPeriod is the length of every paid term. Billing is monthly only.
const SubscriptionPeriod = 30 * 24 * time.Hour

// DefaultCurrency is the ISO code every catalog price is quoted in.
const DefaultCurrency = "PHP"

// tierRanks orders tiers by entitlement; a higher rank is a superset of a lower one.
var tierRanks = map[TierID]int{
	TierFree:     0,
	TierStarter:  1,
	TierGrowth:   2,
	TierPro:      3,
	TierBizElite: 4,
}

// AllTierIDs lists every tier in entitlement order.
func AllTierIDs() []TierID {
	return []TierID{TierFree, TierStarter, TierGrowth, TierPro, TierBizElite}
}

// Valid reports whether t is a known tier. Anything else, including "lifetime",
// is not part of the catalog.
func (t TierID) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// Rank returns the entitlement rank of t, or -1 when t is unknown.
func (t TierID) Rank() int {
	if rank, ok := tierRanks[t]; ok {
		return rank
	}
	return -1
}

// Paid reports whether t can be purchased.
func (t TierID) Paid() bool {
	return t.Valid() && t != TierFree
}

// Outranks reports whether t grants strictly more than other.
func (t TierID) Outranks(other TierID) bool {
	return t.Rank() > other.Rank()
}

func (t TierID) String() string {
	return string(t)
}

// Tier is an immutable catalog entry.
type Tier struct {
	ID           TierID          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Currency     string          `json:"currency"`
	Features     []string        `json:"features"`
}

// DefaultTiers returns the built-in catalog in entitlement order.
func DefaultTiers() []Tier {
	return []Tier{
		{
			ID:           TierFree,
			Name:         "FREE",
			Description:  "Start building your site for free",
			MonthlyPrice: decimal.Zero,
			Currency:     DefaultCurrency,
			Features:     []string{},
		},
		{
			ID:           TierStarter,
			Name:         "STARTER",
			Description:  "Para sa new freelancers at home-based biz",
			MonthlyPrice: decimal.RequireFromString("299.00"),
			Currency:     DefaultCurrency,
			Features:     []string{"DIY web builder", "Contact form", "Image gallery", "Remove branding"},
		},
		{
			ID:           TierGrowth,
			Name:         "GROWTH",
			Description:  "Para sa scaling solopreneurs",
			MonthlyPrice: decimal.RequireFromString("599.00"),
			Currency:     DefaultCurrency,
			Features:     []string{"Blog tools", "Social media linking", "Analytics", "SEO optimization"},
		},
		{
			ID:           TierPro,
			Name:         "PRO",
			Description:  "Para sa serious MSMEs",
			MonthlyPrice: decimal.RequireFromString("999.00"),
			Currency:     DefaultCurrency,
			Features:     []string{"Full suite", "Inventory management", "Order tracking", "Client lists"},
		},
		{
			ID:           TierBizElite,
			Name:         "BIZ ELITE",
			Description:  "Para sa growth-stage brands",
			MonthlyPrice: decimal.RequireFromString("1999.00"),
			Currency:     DefaultCurrency,
			Features:     []string{"E-commerce suite", "Payment processing", "Advanced reports", "Business analytics"},
		},
	}
}

// PricingOption is how one paid tier should be presented to a given user.
type PricingOption struct {
	Tier    Tier   `json:"tier"`
	Current bool   `json:"current"`
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}
