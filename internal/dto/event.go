package dto

// CreateEventRequest is the payload for a new calendar entry. Date accepts
// RFC3339 or YYYY-MM-DD; Time is a free-form display string such as "09:30".
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required,max=40"`
	Location    string `json:"location" validate:"required,max=200"`
}

// UpdateEventRequest carries a partial update.
type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Date        *string `json:"date"`
	Time        *string `json:"time" validate:"omitempty,min=1,max=40"`
	Location    *string `json:"location" validate:"omitempty,min=1,max=200"`
}
