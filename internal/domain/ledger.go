package domain

import "time"

type LedgerEntryType string

const (
	LedgerEntryDonationReward LedgerEntryType = "DONATION_REWARD"
	LedgerEntryAdjustment     LedgerEntryType = "ADJUSTMENT"
)

// LedgerEntry records one DPS balance change. Every reward application
// writes exactly one entry keyed to its transaction, which is the
// audit trail for the at-most-once guarantee.
type LedgerEntry struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Points        int64           `json:"points"` // positive for credit
	Type          LedgerEntryType `json:"type"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Description   string          `json:"description"`
	CreatedOn     time.Time       `json:"created_on"`
}
