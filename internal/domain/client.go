package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation statuses and quality tags recognised by the named list filters
const (
	StatusFinalizedDeal = "Finalized Deal"
	StatusPending       = "Pending"
	QualityHigh         = "high"
)

// Client is a prospective customer intake record
type Client struct {
	ID                 uuid.UUID `json:"id"`
	Project            string    `json:"project"`
	Bedrooms           string    `json:"bedrooms"`
	Budget             string    `json:"budget"`
	Schedule           string    `json:"schedule"`
	Email              string    `json:"email"`
	Fullname           string    `json:"fullname"`
	Phone              string    `json:"phone"`
	Quality            string    `json:"quality"`
	ConversationStatus string    `json:"conversation_status"`
	CreatedAt          time.Time `json:"created_at"`

	// Populated by list and get when a payment record exists
	PaymentDetails *PaymentDetails `json:"payment_details,omitempty"`
}

// PaymentDetails is the optional financial record owned 1:1 by a client
type PaymentDetails struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	AmountPaid      float64   `json:"amount_paid"`
	PaymentDuration string    `json:"payment_duration"`
	TotalAmount     float64   `json:"total_amount"`
	Balance         float64   `json:"balance"`
	PaymentDate     time.Time `json:"payment_date"`
}

// ClientInput carries every client-owned column. Update overwrites all of
// them, so an absent field is stored as empty.
type ClientInput struct {
	Project            string `json:"project" validate:"max=255"`
	Bedrooms           string `json:"bedrooms" validate:"max=64"`
	Budget             string `json:"budget" validate:"max=64"`
	Schedule           string `json:"schedule" validate:"max=255"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Fullname           string `json:"fullname" validate:"max=255"`
	Phone              string `json:"phone" validate:"max=64"`
	Quality            string `json:"quality" validate:"max=64"`
	ConversationStatus string `json:"conversation_status" validate:"max=64"`

	// Only honoured on create
	PaymentDetails *PaymentDetailsInput `json:"paymentDetails,omitempty" validate:"omitempty"`
}

// PaymentDetailsInput represents input for recording a payment with a new client
type PaymentDetailsInput struct {
	AmountPaid      float64 `json:"amount_paid" validate:"gte=0"`
	PaymentDuration string  `json:"payment_duration" validate:"max=64"`
	TotalAmount     float64 `json:"total_amount" validate:"gte=0"`
	Balance         float64 `json:"balance" validate:"gte=0"`
}

// ClientFilter names one of the fixed client list queries
type ClientFilter string

const (
	ClientFilterAll         ClientFilter = "all"
	ClientFilterFinalized   ClientFilter = "finalized"
	ClientFilterPending     ClientFilter = "pending"
	ClientFilterHighQuality ClientFilter = "high-quality"
)

// Valid reports whether f is one of the named filters
func (f ClientFilter) Valid() bool {
	switch f {
	case ClientFilterAll, ClientFilterFinalized, ClientFilterPending, ClientFilterHighQuality:
		return true
	}
	return false
}

// Matches reports whether c satisfies the filter predicate
func (f ClientFilter) Matches(c *Client) bool {
	switch f {
	case ClientFilterAll:
		return true
	case ClientFilterFinalized:
		return c.ConversationStatus == StatusFinalizedDeal
	case ClientFilterPending:
		return c.ConversationStatus == StatusPending
	case ClientFilterHighQuality:
		return c.Quality == QualityHigh
	}
	return false
}
