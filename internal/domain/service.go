package domain

import "time"

// Schedule maps a day name to a free-text hours string ("09:00 - 18:00",
// "Închis"). All seven days are always present.
type Schedule map[string]string

var weekDays = []string{"Luni", "Marți", "Miercuri", "Joi", "Vineri", "Sâmbătă", "Duminică"}

// DefaultSchedule returns the schedule every new listing starts with.
func DefaultSchedule() Schedule {
	s := Schedule{}
	for _, d := range weekDays {
		s[d] = "09:00 - 18:00"
	}
	s["Sâmbătă"] = "10:00 - 14:00"
	s["Duminică"] = "Închis"
	return s
}

// Normalize fills in any missing day so the seven-day invariant holds.
func (s Schedule) Normalize() Schedule {
	if s == nil {
		return DefaultSchedule()
	}
	for _, d := range weekDays {
		if _, ok := s[d]; !ok {
			s[d] = "Închis"
		}
	}
	return s
}

// Service is a business listing. Rating and ReviewCount are derived from
// reviews and are only ever written by the review recompute; nothing else
// may touch them.
type Service struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	CategoryID  string        `json:"category_id"`
	City        string        `json:"city"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Website     string        `json:"website,omitempty"`
	Description string        `json:"description"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
	IsPremium   bool          `json:"is_premium"`
	IsVerified  bool          `json:"is_verified"`
	IsActive    bool          `json:"is_active"`
	Images      []string      `json:"images,omitempty"`
	Schedule    Schedule      `json:"schedule"`
	Items       []ServiceItem `json:"services"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ServiceItem is a priced offering belonging to a listing, like "teeth
// cleaning, 100 lei". Price and duration are display-only free text.
type ServiceItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
}
