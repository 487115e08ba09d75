package review

type CreateReviewRequest struct {
	ServiceID string   `json:"service_id"`
	UserID    string   `json:"user_id,omitempty"`
	UserName  string   `json:"user_name"`
	Rating    int      `json:"rating"`
	Text      string   `json:"text,omitempty"`
	Images    []string `json:"images,omitempty"`
}
