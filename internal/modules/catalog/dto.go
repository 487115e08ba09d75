package catalog

import "servicedir/internal/domain"

type CreateServiceRequest struct {
	Name        string               `json:"name"`
	CategoryID  string               `json:"category"`
	City        string               `json:"city"`
	Address     string               `json:"address"`
	Phone       string               `json:"phone"`
	Email       string               `json:"email"`
	Website     string               `json:"website,omitempty"`
	Description string               `json:"description,omitempty"`
	IsPremium   bool                 `json:"is_premium"`
	Images      []string             `json:"images,omitempty"`
	Schedule    domain.Schedule      `json:"schedule,omitempty"`
	Items       []ServiceItemRequest `json:"services,omitempty"`
}

type ServiceItemRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
}
