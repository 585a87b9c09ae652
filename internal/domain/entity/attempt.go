package entity

// WorkflowState is the position of an upgrade attempt in its state machine.
type WorkflowState string

const (
	StateDetails                 WorkflowState = "details"
	StateAwaitingExternalPayment WorkflowState = "awaiting_external_payment"
	StateVerified                WorkflowState = "verified"
)

// Attempt is the explicit state of one upgrade attempt. It is passed through
// the workflow operations by value and never stored as ambient state.
type Attempt struct {
	ID            string        `json:"attempt_id"`
	UserID        string        `json:"user_id"`
	Email         string        `json:"-"`
	DisplayName   string        `json:"-"`
	Tier          Tier          `json:"tier"`
	State         WorkflowState `json:"state"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaymentURL    string        `json:"payment_url,omitempty"`
}

// Identity is the authenticated user as reported by the identity provider.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
}
