// Package report derives presentation views from the itinerary: the
// expense breakdown and a static HTML export.
package report

import (
	"github.com/pbaille/trip/internal/domain"
	"github.com/pbaille/trip/internal/itinerary"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// CategoryAmount is one category's total within a Breakdown
type CategoryAmount struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Amount   int             `json:"amount"`
	Share    float64         `json:"share"`
}

// Breakdown is the spending of one currency, grouped by category
type Breakdown struct {
	Currency   domain.Currency  `json:"currency"`
	Total      int              `json:"total"`
	Categories []CategoryAmount `json:"categories"`
}

// Expenses groups activities' costs in currency by category, in the fixed
// category order. Categories with nothing spent are left out.
func Expenses(activities []domain.Activity, currency domain.Currency) Breakdown {
	totals := itinerary.TotalCostByCategory(activities, currency)

	b := Breakdown{Currency: currency, Categories: []CategoryAmount{}}
	for _, v := range totals {
		b.Total += v
	}
	for _, c := range domain.Categories() {
		v, ok := totals[c]
		if !ok {
			continue
		}
		ca := CategoryAmount{Category: c, Label: c.Label(), Amount: v}
		if b.Total != 0 {
			ca.Share = float64(v) / float64(b.Total)
		}
		b.Categories = append(b.Categories, ca)
	}
	return b
}

// Money formats an amount with its currency symbol and digit grouping
func Money(amount int, c domain.Currency) string {
	switch c {
	case domain.JPY:
		return printer.Sprintf("¥%d", amount)
	case domain.TWD:
		return printer.Sprintf("NT$%d", amount)
	default:
		return printer.Sprintf("%d %s", amount, string(c))
	}
}
