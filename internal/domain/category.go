package domain

// Category groups listings ("stomatologie", "auto", ...). ServiceCount is
// derived and refreshed by the recount maintenance job.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Icon         string `json:"icon,omitempty"`
	Description  string `json:"description,omitempty"`
	ServiceCount int    `json:"service_count"`
	IsActive     bool   `json:"is_active"`
}
