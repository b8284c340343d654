package domain

import "time"

// ContactStatus tracks triage state for inbound contact messages.
type ContactStatus string

const (
	// ContactStatusNew marks a message nobody has looked at yet.
	ContactStatusNew ContactStatus = "NEW"
	// ContactStatusRead marks a message staff have seen.
	ContactStatusRead ContactStatus = "READ"
	// ContactStatusReplied marks a message staff have answered.
	ContactStatusReplied ContactStatus = "REPLIED"
)

// Contact is an append-only record of a contact-form submission.
type Contact struct {
	ID        string        `gorm:"primaryKey;size:40"`
	Name      string        `gorm:"size:200;not null"`
	Email     string        `gorm:"size:254;not null"`
	Phone     string        `gorm:"size:40"`
	Message   string        `gorm:"type:text;not null"`
	Status    ContactStatus `gorm:"size:20;not null;default:NEW"`
	CreatedAt time.Time
}
