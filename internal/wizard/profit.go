package wizard

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/erazemk/resell/internal/model"
)

// NotApplicable is the estimated profit when inputs are missing or unparseable.
const NotApplicable = "N/A"

var baseValues = map[model.Model]decimal.Decimal{
	model.ModelDigital: decimal.NewFromInt(400),
	model.ModelDisc:    decimal.NewFromInt(500),
	model.ModelSlim:    decimal.NewFromInt(450),
	model.ModelPro:     decimal.NewFromInt(700),
}

var conditionMultipliers = map[model.Condition]decimal.Decimal{
	model.ConditionNew:     decimal.NewFromInt(1),
	model.ConditionLikeNew: decimal.RequireFromString("0.9"),
	model.ConditionGood:    decimal.RequireFromString("0.8"),
	model.ConditionFair:    decimal.RequireFromString("0.7"),
	model.ConditionPoor:    decimal.RequireFromString("0.5"),
}

// priceText is the accepted price notation: plain digits with an optional
// sign and fraction, no exponent, bounded to currency magnitudes.
var priceText = regexp.MustCompile(`^[-+]?[0-9]{1,15}(\.[0-9]{1,8})?$`)

// ParsePrice parses a purchase price as a plain decimal. Sign is not checked.
func ParsePrice(s string) (decimal.Decimal, bool) {
	if !priceText.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// EstimateProfit returns the resale value implied by model and condition minus
// the purchase price, as "$" followed by two decimals. Negative results are kept.
func EstimateProfit(r model.Record) string {
	if !r.Model.Set() || !r.Condition.Set() || r.PurchasePrice == "" {
		return NotApplicable
	}
	price, ok := ParsePrice(r.PurchasePrice)
	if !ok {
		return NotApplicable
	}
	base, ok := baseValues[r.Model]
	if !ok {
		return NotApplicable
	}
	mult, ok := conditionMultipliers[r.Condition]
	if !ok {
		return NotApplicable
	}
	return "$" + base.Mul(mult).Sub(price).StringFixed(2)
}
