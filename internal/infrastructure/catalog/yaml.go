// Package catalog reads tier catalog overrides from YAML.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

type tiersFile struct {
	Tiers []tierEntry `yaml:"tiers"`
}

type tierEntry struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Description  *string  `yaml:"description"`
	MonthlyPrice string   `yaml:"monthly_price"`
	Currency     string   `yaml:"currency"`
	Features     []string `yaml:"features"`
}

// LoadTiersFromYAML returns the built-in tiers with the entries of the file at path
// applied on top. Entries may only refer to known tier ids.
func LoadTiersFromYAML(path string) ([]entity.Tier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseTiers(data)
}

// ParseTiers applies YAML overrides to the built-in tiers.
func ParseTiers(data []byte) ([]entity.Tier, error) {
	tiers := entity.DefaultTiers()
	if len(bytes.TrimSpace(data)) == 0 {
		return tiers, nil
	}

	var file tiersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog yaml: %w", err)
	}

	index := make(map[entity.TierID]int, len(tiers))
	for i, tier := range tiers {
		index[tier.ID] = i
	}

	seen := make(map[entity.TierID]bool, len(file.Tiers))
	for i, entry := range file.Tiers {
		id := entity.TierID(strings.TrimSpace(entry.ID))
		if !id.Valid() {
			return nil, fmt.Errorf("tiers[%d]: unknown tier id %q", i, entry.ID)
		}
		if seen[id] {
			return nil, fmt.Errorf("tiers[%d]: duplicate tier id %q", i, id)
		}
		seen[id] = true

		tier := &tiers[index[id]]
		if entry.Name != "" {
			tier.Name = entry.Name
		}
		if entry.Description != nil {
			tier.Description = *entry.Description
		}
		if entry.MonthlyPrice != "" {
			price, err := decimal.NewFromString(entry.MonthlyPrice)
			if err != nil {
				return nil, fmt.Errorf("tiers[%d]: invalid monthly_price: %w", i, err)
			}
			if price.IsNegative() {
				return nil, fmt.Errorf("tiers[%d]: monthly_price must not be negative", i)
			}
			if id == entity.TierFree && !price.IsZero() {
				return nil, fmt.Errorf("tiers[%d]: the free tier cannot have a price", i)
			}
			tier.MonthlyPrice = price
		}
		if currency := strings.ToUpper(strings.TrimSpace(entry.Currency)); currency != "" {
			tier.Currency = currency
		}
		if entry.Features != nil {
			tier.Features = entry.Features
		}
	}

	return tiers, nil
}
