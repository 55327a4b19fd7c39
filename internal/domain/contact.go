package domain

import "time"

type ContactStatus string

const (
	ContactStatusUnread ContactStatus = "UNREAD"
	ContactStatusRead   ContactStatus = "READ"
)

type ContactSubmission struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`
}
