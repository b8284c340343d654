package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

const maxContactMessageLen = 5000

// ContactServiceDeps wires the contact service.
type ContactServiceDeps struct {
	Contacts repositories.ContactRepository
	Notifier Notifier

	IDs    IDGenerator
	Clock  func() time.Time
	Logger Logger
}

type contactService struct {
	contacts repositories.ContactRepository
	notifier Notifier
	ids      IDGenerator
	clock    func() time.Time
	logger   Logger
}

// NewContactService validates dependencies and returns a ContactService.
func NewContactService(deps ContactServiceDeps) (ContactService, error) {
	if deps.Contacts == nil {
		return nil, errors.New("services: contact requires a contact repository")
	}
	svc := &contactService{
		contacts: deps.Contacts,
		notifier: deps.Notifier,
		ids:      deps.IDs,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
	if svc.ids == nil {
		svc.ids = NewULID
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = func(context.Context, string, map[string]any) {}
	}
	return svc, nil
}

// SubmitMessage stores the submission and notifies staff. The notification
// is best effort; the stored row is the source of truth.
func (s *contactService) SubmitMessage(ctx context.Context, cmd ContactCommand) (domain.Contact, error) {
	var v fieldErrors
	v.requireString("name", cmd.Name, "name is required")
	if strings.TrimSpace(cmd.Email) == "" {
		v.add("email", "email is required")
	} else if !validEmail(cmd.Email) {
		v.add("email", "email is not a valid address")
	}
	v.requireString("message", cmd.Message, "message is required")
	if len(cmd.Message) > maxContactMessageLen {
		v.add("message", "message is too long")
	}
	if err := v.err(); err != nil {
		return domain.Contact{}, err
	}

	contact := domain.Contact{
		ID:        s.ids(ContactIDPrefix),
		Name:      strings.TrimSpace(cmd.Name),
		Email:     strings.TrimSpace(cmd.Email),
		Phone:     strings.TrimSpace(cmd.Phone),
		Message:   strings.TrimSpace(cmd.Message),
		Status:    domain.ContactStatusNew,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.contacts.Create(ctx, &contact); err != nil {
		return domain.Contact{}, fmt.Errorf("services: store contact message: %w", err)
	}
	s.logger(ctx, "contact.received", map[string]any{"contactId": contact.ID})

	if s.notifier != nil {
		s.notifier.NotifyContactReceived(ctx, contact)
	}
	return contact, nil
}

func (s *contactService) ListMessages(ctx context.Context, limit int) ([]domain.Contact, error) {
	contacts, err := s.contacts.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("services: list contact messages: %w", err)
	}
	return contacts, nil
}

func (s *contactService) UpdateMessageStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	switch status {
	case domain.ContactStatusNew, domain.ContactStatusRead, domain.ContactStatusReplied:
	default:
		return &ValidationError{Fields: []FieldError{{Field: "status", Message: "unknown contact status"}}}
	}
	if err := s.contacts.UpdateStatus(ctx, contactID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("services: contact not found: %w", err)
		}
		return fmt.Errorf("services: update contact status: %w", err)
	}
	return nil
}
