package domain

import "time"

type Review struct {
	ID         string    `json:"id"`
	ServiceID  string    `json:"service_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text,omitempty"`
	Images     []string  `json:"images,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary is the derived pair recomputed on every review creation.
type RatingSummary struct {
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}
