package shipping

import "context"

// FlatRate is one fixed-price service.
type FlatRate struct {
	Code    string
	Name    string
	Cost    float64
	DaysMin int
	DaysMax int
}

// FlatRateQuoter offers a fixed menu of services. Orders at or above
// FreeThreshold get the cheapest service for free; a threshold of zero
// disables the promotion.
type FlatRateQuoter struct {
	rates         []FlatRate
	freeThreshold float64
}

func NewFlatRateQuoter(rates []FlatRate, freeThreshold float64) *FlatRateQuoter {
	return &FlatRateQuoter{rates: rates, freeThreshold: freeThreshold}
}

// Quote returns the menu in configured order with the first option
// preselected. The free-shipping promotion rewrites the cheapest rate's cost
// rather than adding a new option.
func (q *FlatRateQuoter) Quote(ctx context.Context, subtotal float64) ([]Option, error) {
	options := make([]Option, len(q.rates))
	cheapest := -1
	for i, r := range q.rates {
		options[i] = Option{
			Code:    r.Code,
			Name:    r.Name,
			Cost:    r.Cost,
			DaysMin: r.DaysMin,
			DaysMax: r.DaysMax,
		}
		if cheapest < 0 || r.Cost < q.rates[cheapest].Cost {
			cheapest = i
		}
	}

	if cheapest >= 0 && q.freeThreshold > 0 && subtotal >= q.freeThreshold {
		options[cheapest].Cost = 0
	}
	if len(options) > 0 {
		options[0].Selected = true
	}
	return options, nil
}
