package domain

import "time"

type BadgeTrack string

const (
	BadgeTrackDonor  BadgeTrack = "donor"
	BadgeTrackSeller BadgeTrack = "seller"
	BadgeTrackBuyer  BadgeTrack = "buyer"
)

type BadgeRequestStatus string

const (
	BadgeRequestStatusPending  BadgeRequestStatus = "PENDING"
	BadgeRequestStatusApproved BadgeRequestStatus = "APPROVED"
	BadgeRequestStatusRejected BadgeRequestStatus = "REJECTED"
)

// BadgeRequest is the second human gate: eligibility computed from
// stats never grants a badge directly, an admin signs off first.
type BadgeRequest struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	UserName   string             `json:"user_name"`
	Track      BadgeTrack         `json:"track"`
	BadgeName  string             `json:"badge_name"`
	Status     BadgeRequestStatus `json:"status"`
	CreatedOn  time.Time          `json:"created_on"`
	ResolvedOn *time.Time         `json:"resolved_on,omitempty"`
}

// BadgeCandidate is a newly eligible badge the evaluator proposes.
type BadgeCandidate struct {
	Track     BadgeTrack `json:"track"`
	BadgeName string     `json:"badge_name"`
}

// DonorBadgeRank orders the donor ladder so approvals never downgrade
// a held badge. Unknown names rank lowest.
func DonorBadgeRank(name string) int {
	switch name {
	case "Gold Donor":
		return 3
	case "Silver Donor":
		return 2
	case "Bronze Donor":
		return 1
	}
	return 0
}
