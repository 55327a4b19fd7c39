package service

import (
	"context"
	"strings"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/repository"

	"github.com/google/uuid"
)

type contactService struct {
	store repository.Store
}

func NewContactService(store repository.Store) ContactService {
	return &contactService{store: store}
}

// Submit accepts a message from the public contact form. No
// authentication is required.
func (s *contactService) Submit(ctx context.Context, name, email, subject, message string) (*domain.ContactSubmission, error) {
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if !strings.Contains(email, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "a valid email address is required"}
	}
	if message == "" {
		return nil, &domain.ValidationError{Field: "message", Reason: "is required"}
	}

	sub := &domain.ContactSubmission{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  domain.ContactStatusUnread,
	}
	if err := s.store.Contacts().Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *contactService) List(ctx context.Context, actor Actor) ([]domain.ContactSubmission, error) {
	if err := requireAdmin(actor, "list contact submissions"); err != nil {
		return nil, err
	}
	return s.store.Contacts().List(ctx)
}

func (s *contactService) MarkRead(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor, "update contact submissions"); err != nil {
		return err
	}
	return s.store.Contacts().MarkRead(ctx, id)
}
