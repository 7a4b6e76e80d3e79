package combination

// Proposal is one supplier's full bid for a quote.
type Proposal struct {
	SupplierID   string         `json:"supplier_id"`
	SupplierName string         `json:"supplier_name"`
	Items        []ProposalItem `json:"items"`
}

// ProposalItem is a priced line item inside a proposal.
type ProposalItem struct {
	// ItemID is the quote line-item identifier. When set it is used as the
	// grouping key instead of ProductName.
	ItemID      string  `json:"item_id,omitempty"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"` // Line total as quoted by the supplier
}

// Offer is a single supplier's price for one item.
type Offer struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     float64 `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
}

// Item is the winning offer for one distinct item across all proposals.
type Item struct {
	ItemName          string  `json:"item_name"`
	BestSupplierID    string  `json:"best_supplier_id"`
	BestSupplierName  string  `json:"best_supplier_name"`
	BestPrice         float64 `json:"best_price"`
	Quantity          float64 `json:"quantity"`
	TotalItemCost     float64 `json:"total_item_cost"`
	Savings           float64 `json:"savings"`
	SavingsPercentage float64 `json:"savings_percentage"`
	OtherOptions      []Offer `json:"other_options"` // Ascending by unit price
}

// SupplierBreakdown lists the items a supplier won and what they cost.
type SupplierBreakdown struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	Items        []Item  `json:"items"`
	Subtotal     float64 `json:"subtotal"`
	ItemCount    int     `json:"item_count"`
}

// SingleSupplierOption is the cheapest way to buy everything from one supplier.
type SingleSupplierOption struct {
	SupplierID              string  `json:"supplier_id"`
	SupplierName            string  `json:"supplier_name"`
	TotalCost               float64 `json:"total_cost"`
	SavingsVsSingleSupplier float64 `json:"savings_vs_single_supplier"`
}

// Result is the best-combination recommendation for a set of proposals.
type Result struct {
	Items             []Item              `json:"items"`
	TotalCost         float64             `json:"total_cost"`
	TotalSavings      float64             `json:"total_savings"`
	SavingsPercentage float64             `json:"savings_percentage"`
	UniqueSuppliers   []string            `json:"unique_suppliers"`
	IsMultiSupplier   bool                `json:"is_multi_supplier"`
	SupplierBreakdown []SupplierBreakdown `json:"supplier_breakdown"`

	// BestSingleSupplier is nil when no supplier quoted every item.
	BestSingleSupplier *SingleSupplierOption `json:"best_single_supplier,omitempty"`
}
