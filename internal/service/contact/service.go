package contact

import (
	"context"
	"fmt"
	"strings"

	"digitalshop/internal/domain"
	contactrepo "digitalshop/internal/repository/contact"
)

const (
	maxNameLen    = 100
	maxEmailLen   = 255
	maxSubjectLen = 200
	maxMessageLen = 2000
)

// Service accepts contact form submissions.
type Service struct {
	repo contactrepo.Repository
}

func New(repo contactrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries one contact form submission. SubmittedBy is set from the
// authenticated user when present, empty for anonymous visitors.
type Input struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	SubmittedBy string `json:"-"`
}

func (s *Service) Submit(ctx context.Context, in Input) (*domain.ContactMessage, error) {
	msg := domain.ContactMessage{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(strings.ToLower(in.Email)),
		Subject:     strings.TrimSpace(in.Subject),
		Message:     strings.TrimSpace(in.Message),
		SubmittedBy: in.SubmittedBy,
	}
	if err := validate(msg); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, msg)
}

func validate(msg domain.ContactMessage) error {
	if msg.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(msg.Name) > maxNameLen {
		return fmt.Errorf("name must be at most %d characters", maxNameLen)
	}
	if msg.Email == "" || !strings.Contains(msg.Email, "@") {
		return fmt.Errorf("valid email required")
	}
	if len(msg.Email) > maxEmailLen {
		return fmt.Errorf("email must be at most %d characters", maxEmailLen)
	}
	if msg.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if len(msg.Subject) > maxSubjectLen {
		return fmt.Errorf("subject must be at most %d characters", maxSubjectLen)
	}
	if msg.Message == "" {
		return fmt.Errorf("message is required")
	}
	if len(msg.Message) > maxMessageLen {
		return fmt.Errorf("message must be at most %d characters", maxMessageLen)
	}
	return nil
}
