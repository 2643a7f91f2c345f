package models

import "time"

// Event is a school calendar entry. CreatedBy references users._id.
type Event struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"`
	Location    string    `bson:"location" json:"location"`
	CreatedBy   string    `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
