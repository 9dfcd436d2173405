package events

const (
	SaleLifecycleTopic      = "sales.sale.lifecycle.v1"
	CommissionResolvedTopic = "sales.commission.resolved.v1"
)

const (
	EventSaleCreated        = "sale_created"
	EventSaleUpdated        = "sale_updated"
	EventSaleStatusChanged  = "sale_status_changed"
	EventCommissionResolved = "commission_resolved"
)

type SaleLifecycleEvent struct {
	Meta
	SaleID        string `json:"sale_id"`
	SellerID      string `json:"seller_id"`
	SaleStatus    string `json:"sale_status"`
	PaymentStatus string `json:"payment_status"`
	ContractState string `json:"contract_status"`
}

type CommissionResolvedEvent struct {
	Meta
	SaleID    string `json:"sale_id"`
	SellerID  string `json:"seller_id"`
	ProductID string `json:"product_id"`
	Source    string `json:"source"`
	Amount    string `json:"amount"`
	Previous  string `json:"previous_amount,omitempty"`
}
