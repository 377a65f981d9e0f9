package booking

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"local_services/internal/domain"
)

// maxAmount keeps amount*100 well inside int64
const maxAmount = 1e12

// ParseAmount accepts a JSON number or a numeric string, as clients send either.
func ParseAmount(v any) (float64, error) {
	switch a := v.(type) {
	case nil:
		return 0, domain.Validation("amount is required")
	case float64:
		return a, nil
	case json.Number:
		f, err := a.Float64()
		if err != nil {
			return 0, domain.Validation("Invalid amount format")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return 0, domain.Validation("Invalid amount format")
		}
		return f, nil
	}
	return 0, domain.Validation("Invalid amount format")
}

// MinorUnits validates amount and converts it to minor units (paise).
func MinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, domain.Validation("Invalid amount; must be a positive number")
	}
	if amount > maxAmount {
		return 0, domain.Validation("Invalid amount; too large")
	}
	minor := int64(math.Round(amount * 100))
	if minor < 1 {
		return 0, domain.Validation("Amount too small after conversion; must be at least 0.01")
	}
	return minor, nil
}
