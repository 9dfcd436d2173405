package commission

import (
	"go-commission/internal/product"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Rule struct {
	Kind  product.CommissionKind
	Value decimal.Decimal
}

// Apply evaluates the rule against a sale's total fee.
func (r Rule) Apply(totalFee decimal.Decimal) decimal.Decimal {
	if r.Kind == product.KindPercentage {
		return money.Percent(totalFee, r.Value)
	}
	return money.Round(r.Value)
}

// Terms are the sale attributes commission depends on.
type Terms struct {
	SellerID  uuid.UUID
	ProductID uuid.UUID
	TotalFee  decimal.Decimal
	Manual    *decimal.Decimal
}

type Resolution struct {
	Amount decimal.Decimal
	Source RuleSource
}

// Resolve picks the first applicable rule: manual override, then the
// seller's exception for the product, then the product default.
func Resolve(terms Terms, exception *Rule, productRule Rule) Resolution {
	if terms.Manual != nil {
		return Resolution{Amount: money.Round(*terms.Manual), Source: SourceManual}
	}
	if exception != nil {
		return Resolution{Amount: exception.Apply(terms.TotalFee), Source: SourceException}
	}
	return Resolution{Amount: productRule.Apply(terms.TotalFee), Source: SourceProduct}
}
