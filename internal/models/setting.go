package models

import "time"

// SettingID is the fixed identifier of the singleton settings document.
const SettingID = "school"

// Setting holds the school-wide contact details.
type Setting struct {
	ID         string    `bson:"_id" json:"id"`
	SchoolName string    `bson:"school_name" json:"schoolName"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone" json:"phone"`
	Address    string    `bson:"address" json:"address"`
	Website    string    `bson:"website" json:"website"`
	UpdatedBy  string    `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultSetting returns the values a fresh installation starts with.
func DefaultSetting() Setting {
	return Setting{
		ID:         SettingID,
		SchoolName: "Bright Minds Academy",
		Email:      "info@brightminds.edu",
		Phone:      "(555) 123-4567",
		Address:    "123 Education Lane\nAcademic City, AC 12345",
		Website:    "https://brightminds.edu",
	}
}
