package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// GuestUserID is stored when a booking is placed without an account.
const GuestUserID = "guest"

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// AllowedTransition is the single source of truth for the strict booking
// state machine. Completed and cancelled are terminal.
func AllowedTransition(from, to BookingStatus) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	}
	return false
}

// Booking is a user's request to reserve a listing (optionally a specific
// offering) at a date/time. ServiceName and ServiceItemName are snapshots
// taken at creation and are never refreshed from the live listing.
type Booking struct {
	ID              string        `json:"id"`
	ServiceID       string        `json:"service_id"`
	ServiceName     string        `json:"service_name"`
	UserID          string        `json:"user_id"`
	UserName        string        `json:"user_name"`
	UserEmail       string        `json:"user_email"`
	UserPhone       string        `json:"user_phone"`
	ServiceItemID   string        `json:"service_item_id,omitempty"`
	ServiceItemName string        `json:"service_item_name,omitempty"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Status          BookingStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}
