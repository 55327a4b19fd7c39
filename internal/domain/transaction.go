package domain

import "time"

type TransactionKind string

const (
	TransactionKindCashDonation TransactionKind = "CASH_DONATION"
	TransactionKindItemDonation TransactionKind = "ITEM_DONATION"
	TransactionKindPurchase     TransactionKind = "PURCHASE"
)

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusVerified TransactionStatus = "VERIFIED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

// Transaction is a claimed donation or marketplace purchase awaiting
// admin verification against an out-of-band bank transfer.
type Transaction struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	UserName        string            `json:"user_name"`
	Kind            TransactionKind   `json:"kind"`
	TargetID        string            `json:"target_id"` // project slug or marketplace item id
	TargetName      string            `json:"target_name"`
	AmountMAD       int64             `json:"amount_mad"` // zero for item donations unless assessed
	ItemDescription string            `json:"item_description,omitempty"`
	Status          TransactionStatus `json:"status"`
	ReferenceCode   string            `json:"reference_code"`
	ReceiptURL      string            `json:"receipt_url"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	VerifiedOn      *time.Time        `json:"verified_on,omitempty"`
}

// IsCash reports whether the transaction carries a monetary amount
// that must be positive at submission.
func (t *Transaction) IsCash() bool {
	return t.Kind == TransactionKindCashDonation || t.Kind == TransactionKindPurchase
}

type VerificationDecision string

const (
	DecisionApprove VerificationDecision = "APPROVE"
	DecisionReject  VerificationDecision = "REJECT"
)
