package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

// ContactRepository is the GORM-backed implementation of repositories.ContactRepository.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs the repository.
func NewContactRepository(db *gorm.DB) (*ContactRepository, error) {
	if db == nil {
		return nil, errors.New("contact repository: db handle is required")
	}
	return &ContactRepository{db: db}, nil
}

// Create appends a contact-form message.
func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if contact == nil {
		return errors.New("contact repository: contact is nil")
	}
	return translateError("contact", contact.ID, r.db.WithContext(ctx).Create(contact).Error)
}

// List returns messages newest first.
func (r *ContactRepository) List(ctx context.Context, limit int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var contacts []domain.Contact
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, translateError("contact", "", err)
	}
	return contacts, nil
}

// UpdateStatus moves a message through triage.
func (r *ContactRepository) UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("id = ?", contactID).
		Update("status", status)
	if result.Error != nil {
		return translateError("contact", contactID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.NotFoundError("contact", contactID)
	}
	return nil
}
