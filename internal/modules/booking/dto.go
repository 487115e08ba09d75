package booking

type CreateBookingRequest struct {
	ServiceID       string `json:"service_id"`
	ServiceName     string `json:"service_name"`
	UserID          string `json:"user_id,omitempty"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	UserPhone       string `json:"user_phone"`
	ServiceItemID   string `json:"service_item_id,omitempty"`
	ServiceItemName string `json:"service_item_name,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Notes           string `json:"notes,omitempty"`
}

// PatchRequest is the permissive merge payload: every supplied field,
// status included, overwrites the stored value without lifecycle checks.
type PatchRequest struct {
	ServiceName     *string `json:"service_name,omitempty"`
	UserName        *string `json:"user_name,omitempty"`
	UserEmail       *string `json:"user_email,omitempty"`
	UserPhone       *string `json:"user_phone,omitempty"`
	ServiceItemID   *string `json:"service_item_id,omitempty"`
	ServiceItemName *string `json:"service_item_name,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

func (p PatchRequest) fields() map[string]interface{} {
	out := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			out[col] = *v
		}
	}
	set("service_name", p.ServiceName)
	set("user_name", p.UserName)
	set("user_email", p.UserEmail)
	set("user_phone", p.UserPhone)
	set("service_item_id", p.ServiceItemID)
	set("service_item_name", p.ServiceItemName)
	set("date", p.Date)
	set("time", p.Time)
	set("status", p.Status)
	set("notes", p.Notes)
	return out
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}
