package domain

import "time"

// CustomerInfo holds passenger identity details keyed by user. Required
// before an invoice can be fully rendered, not required to book.
type CustomerInfo struct {
	UserID         int64
	FullName       string
	Email          string
	Phone          string
	PassportNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
