package events

const (
	LotClosedTopic          = "commissions.lot.closed.v1"
	LotPaymentRecordedTopic = "commissions.lot.payment_recorded.v1"
	LotDeletedTopic         = "commissions.lot.deleted.v1"
)

const (
	EventLotClosed          = "lot_closed"
	EventLotPaymentRecorded = "lot_payment_recorded"
	EventLotDeleted         = "lot_deleted"
)

type LotClosedEvent struct {
	Meta
	LotID     string   `json:"lot_id"`
	Code      string   `json:"code"`
	SellerID  string   `json:"seller_id"`
	TotalDue  string   `json:"total_due"`
	SaleIDs   []string `json:"sale_ids"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

type LotPaymentRecordedEvent struct {
	Meta
	LotID         string `json:"lot_id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	TotalPaid     string `json:"total_paid"`
	Status        string `json:"status"`
}

type LotDeletedEvent struct {
	Meta
	LotID    string   `json:"lot_id"`
	Code     string   `json:"code"`
	SellerID string   `json:"seller_id"`
	SaleIDs  []string `json:"sale_ids"`
}
