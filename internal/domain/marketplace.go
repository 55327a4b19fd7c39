package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusPending   ItemStatus = "PENDING" // a buyer's purchase claim is under review
	ItemStatusSold      ItemStatus = "SOLD"
)

type MarketplaceItem struct {
	ID             string     `json:"id"`
	SellerID       string     `json:"seller_id"`
	SellerName     string     `json:"seller_name"`
	SellerWhatsApp string     `json:"seller_whatsapp"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	PriceMAD       int64      `json:"price_mad"`
	ImageURL       string     `json:"image_url"`
	Status         ItemStatus `json:"status"`
	BuyerID        string     `json:"buyer_id,omitempty"`    // set while a purchase is pending
	ReceiptURL     string     `json:"receipt_url,omitempty"` // buyer's proof while pending
	CreatedOn      time.Time  `json:"created_on"`
}
