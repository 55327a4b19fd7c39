package domain

type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleAdmin   UserRole = "ADMIN"
)

// BadgeNone is the default badge on every track.
const BadgeNone = "None"

type UserStats struct {
	TotalDonated      int64 `json:"total_donated"` // whole MAD
	TotalItemsDonated int32 `json:"total_items_donated"`
	TotalSales        int32 `json:"total_sales"`
	TotalPurchases    int32 `json:"total_purchases"`
}

type UserBadges struct {
	Donor  string `json:"donor"`
	Seller string `json:"seller"`
	Buyer  string `json:"buyer"`
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	Role         UserRole   `json:"role"`
	PasswordHash string     `json:"-"` // set only in local auth mode
	DPSBalance   int64      `json:"dps_balance"`
	Stats        UserStats  `json:"stats"`
	Badges       UserBadges `json:"badges"`
	Anonymous    bool       `json:"anonymous"` // hidden on public rankings
	CreatedOn    string     `json:"created_on"`
	UpdatedOn    string     `json:"updated_on"`
}

// NewProfile returns the zeroed profile created at registration.
func NewProfile(id, email, displayName string) *User {
	return &User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		Role:        UserRoleStudent,
		Badges: UserBadges{
			Donor:  BadgeNone,
			Seller: BadgeNone,
			Buyer:  BadgeNone,
		},
	}
}

// BadgeForTrack returns the badge currently held on the given track.
func (u *User) BadgeForTrack(track BadgeTrack) string {
	switch track {
	case BadgeTrackDonor:
		return u.Badges.Donor
	case BadgeTrackSeller:
		return u.Badges.Seller
	case BadgeTrackBuyer:
		return u.Badges.Buyer
	}
	return BadgeNone
}
