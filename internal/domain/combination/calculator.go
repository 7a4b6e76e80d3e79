// Package combination computes the cheapest multi-supplier purchase plan for
// a quote.
//
// Given every supplier's proposal, the calculator picks the lowest unit price
// per item, even if that means buying from several suppliers:
//
//	result := combination.Calculate(proposals)
//	if result == nil {
//		// nothing to compare
//	}
//	fmt.Println(result.TotalCost, result.TotalSavings, result.IsMultiSupplier)
//
// Savings for an item are measured against that item's most expensive offer,
// then summed. The calculation is pure arithmetic: no I/O, no logging, and the
// input is never modified. Non-finite amounts are summed as zero rather than
// panicking; CalculateChecked reports them as validation errors instead.
package combination

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// offerGroup collects every offer for one grouping key.
type offerGroup struct {
	name   string
	offers []Offer
}

// Calculate returns the best combination for the given proposals.
// Returns nil when there are no proposals.
func Calculate(proposals []Proposal) *Result {
	if len(proposals) == 0 {
		return nil
	}

	keys, groups := groupOffers(proposals)

	result := &Result{
		Items:             make([]Item, 0, len(keys)),
		UniqueSuppliers:   make([]string, 0),
		SupplierBreakdown: make([]SupplierBreakdown, 0),
	}

	totalCost := decimal.Zero
	totalOriginal := decimal.Zero

	for _, key := range keys {
		group := groups[key]

		sorted := make([]Offer, len(group.offers))
		copy(sorted, group.offers)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UnitPrice < sorted[j].UnitPrice
		})

		best := sorted[0]
		worst := sorted[len(sorted)-1]

		others := make([]Offer, 0, len(sorted)-1)
		others = append(others, sorted[1:]...)

		result.Items = append(result.Items, Item{
			ItemName:          group.name,
			BestSupplierID:    best.SupplierID,
			BestSupplierName:  best.SupplierName,
			BestPrice:         best.UnitPrice,
			Quantity:          best.Quantity,
			TotalItemCost:     best.TotalPrice,
			Savings:           money(worst.TotalPrice).Sub(money(best.TotalPrice)).InexactFloat64(),
			SavingsPercentage: percentOf(worst.UnitPrice-best.UnitPrice, worst.UnitPrice),
			OtherOptions:      others,
		})

		totalCost = totalCost.Add(money(best.TotalPrice))
		totalOriginal = totalOriginal.Add(money(worst.TotalPrice))
	}

	totalSavings := totalOriginal.Sub(totalCost)

	result.TotalCost = totalCost.InexactFloat64()
	result.TotalSavings = totalSavings.InexactFloat64()
	if !totalOriginal.IsZero() {
		result.SavingsPercentage = totalSavings.Div(totalOriginal).Mul(hundred).InexactFloat64()
	}

	result.UniqueSuppliers = uniqueWinners(result.Items)
	result.IsMultiSupplier = len(result.UniqueSuppliers) > 1
	result.SupplierBreakdown = breakdown(result.UniqueSuppliers, result.Items)
	result.BestSingleSupplier = bestSingleSupplier(proposals, keys, totalCost)

	return result
}

// groupOffers groups every offer by item key, preserving first-seen key order
// and input order within each group.
func groupOffers(proposals []Proposal) ([]string, map[string]*offerGroup) {
	keys := make([]string, 0)
	groups := make(map[string]*offerGroup)

	for _, proposal := range proposals {
		for _, item := range proposal.Items {
			key := itemKey(item)
			group, ok := groups[key]
			if !ok {
				group = &offerGroup{name: item.ProductName}
				groups[key] = group
				keys = append(keys, key)
			}
			group.offers = append(group.offers, Offer{
				SupplierID:   proposal.SupplierID,
				SupplierName: proposal.SupplierName,
				UnitPrice:    item.UnitPrice,
				Quantity:     item.Quantity,
				TotalPrice:   item.Total,
			})
		}
	}

	return keys, groups
}

// itemKey prefers the shared line-item ID; product names must match exactly.
func itemKey(item ProposalItem) string {
	if item.ItemID != "" {
		return "id:" + item.ItemID
	}
	return "name:" + item.ProductName
}

// uniqueWinners returns winning supplier IDs in first-seen order.
func uniqueWinners(items []Item) []string {
	seen := make(map[string]bool)
	suppliers := make([]string, 0)
	for _, item := range items {
		if seen[item.BestSupplierID] {
			continue
		}
		seen[item.BestSupplierID] = true
		suppliers = append(suppliers, item.BestSupplierID)
	}
	return suppliers
}

func breakdown(suppliers []string, items []Item) []SupplierBreakdown {
	breakdowns := make([]SupplierBreakdown, 0, len(suppliers))
	for _, supplierID := range suppliers {
		entry := SupplierBreakdown{
			SupplierID: supplierID,
			Items:      make([]Item, 0),
		}
		subtotal := decimal.Zero
		for _, item := range items {
			if item.BestSupplierID != supplierID {
				continue
			}
			if entry.SupplierName == "" {
				entry.SupplierName = item.BestSupplierName
			}
			entry.Items = append(entry.Items, item)
			subtotal = subtotal.Add(money(item.TotalItemCost))
		}
		entry.Subtotal = subtotal.InexactFloat64()
		entry.ItemCount = len(entry.Items)
		breakdowns = append(breakdowns, entry)
	}
	return breakdowns
}

// bestSingleSupplier finds the cheapest supplier that quoted every item key.
// When a supplier quoted the same key twice, its lowest unit price counts.
func bestSingleSupplier(proposals []Proposal, keys []string, combinationCost decimal.Decimal) *SingleSupplierOption {
	type candidate struct {
		name   string
		offers map[string]ProposalItem
	}

	order := make([]string, 0, len(proposals))
	candidates := make(map[string]*candidate)
	for _, proposal := range proposals {
		c, ok := candidates[proposal.SupplierID]
		if !ok {
			c = &candidate{name: proposal.SupplierName, offers: make(map[string]ProposalItem)}
			candidates[proposal.SupplierID] = c
			order = append(order, proposal.SupplierID)
		}
		for _, item := range proposal.Items {
			key := itemKey(item)
			if existing, ok := c.offers[key]; ok && existing.UnitPrice <= item.UnitPrice {
				continue
			}
			c.offers[key] = item
		}
	}

	var best *SingleSupplierOption
	var bestTotal decimal.Decimal
	for _, supplierID := range order {
		c := candidates[supplierID]
		if len(keys) == 0 || len(c.offers) < len(keys) {
			continue
		}

		total := decimal.Zero
		for _, key := range keys {
			total = total.Add(money(c.offers[key].Total))
		}

		if best == nil || total.LessThan(bestTotal) {
			bestTotal = total
			best = &SingleSupplierOption{
				SupplierID:   supplierID,
				SupplierName: c.name,
			}
		}
	}

	if best == nil {
		return nil
	}
	best.TotalCost = bestTotal.InexactFloat64()
	best.SavingsVsSingleSupplier = bestTotal.Sub(combinationCost).InexactFloat64()
	return best
}

// money converts an amount for summing. NaN and Inf count as zero; Calculate
// does not validate, CalculateChecked rejects them up front.
func money(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount)
}

// percentOf returns part/whole as a percentage, 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
