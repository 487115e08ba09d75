package admin

import "servicedir/internal/domain"

// UpdateServiceRequest is a partial update; only supplied fields change.
// Derived columns (rating, review_count) and immutable ones (id, slug,
// created_at) can never be set through it.
type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty"`
	CategoryID  *string          `json:"category,omitempty"`
	City        *string          `json:"city,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`
	Description *string          `json:"description,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	Schedule    *domain.Schedule `json:"schedule,omitempty"`
	Items       *[]ItemRequest   `json:"services,omitempty"`
}

type ItemRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
}

type FlagRequest struct {
	Value bool `json:"value"`
}
