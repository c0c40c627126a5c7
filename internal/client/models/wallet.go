package models

// TransactionType classifies a wallet transaction.
type TransactionType string

const (
	TransactionTopUp          TransactionType = "topup"
	TransactionTicketPurchase TransactionType = "ticket_purchase"
	TransactionRefund         TransactionType = "refund"
)

// Transaction is a single wallet movement.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	Status        string          `json:"status"`
	Date          string          `json:"date"`
	Reference     string          `json:"reference"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// Wallet is the user's stored-value balance and recent transactions.
type Wallet struct {
	Balance      float64       `json:"balance"`
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions"`
}
