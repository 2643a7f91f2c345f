package dto

// UpdateSettingsRequest lists the settings fields an administrator may change.
type UpdateSettingsRequest struct {
	SchoolName *string `json:"schoolName" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=40"`
	Address    *string `json:"address" validate:"omitempty,max=500"`
	Website    *string `json:"website" validate:"omitempty,url"`
}

// Empty reports whether no field was supplied.
func (r UpdateSettingsRequest) Empty() bool {
	return r.SchoolName == nil && r.Email == nil && r.Phone == nil && r.Address == nil && r.Website == nil
}
