package contact

import (
	"context"
	"strings"
	"testing"

	"digitalshop/internal/domain"
)

type stubContactRepo struct {
	created []domain.ContactMessage
}

func (r *stubContactRepo) Create(_ context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	r.created = append(r.created, msg)
	return &msg, nil
}

func (r *stubContactRepo) ListRecent(_ context.Context, limit int) ([]domain.ContactMessage, error) {
	return r.created, nil
}

func (r *stubContactRepo) Count(_ context.Context) (int, error) {
	return len(r.created), nil
}

func TestSubmitTrimsAndStores(t *testing.T) {
	repo := &stubContactRepo{}
	svc := New(repo)

	msg, err := svc.Submit(context.Background(), Input{
		Name:        "  Alice  ",
		Email:       " Alice@Example.com ",
		Subject:     " Refund ",
		Message:     " Please refund my order. ",
		SubmittedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg.Name != "Alice" || msg.Email != "alice@example.com" || msg.Subject != "Refund" {
		t.Fatalf("fields not normalized: %+v", msg)
	}
	if msg.Message != "Please refund my order." {
		t.Fatalf("message not trimmed: %q", msg.Message)
	}
	if msg.SubmittedBy != "user-1" {
		t.Fatalf("submitter dropped: %q", msg.SubmittedBy)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(repo.created))
	}
}

func TestSubmitValidation(t *testing.T) {
	repo := &stubContactRepo{}
	svc := New(repo)
	ctx := context.Background()

	valid := Input{Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello there"}

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"blank name", func(in *Input) { in.Name = "  " }},
		{"long name", func(in *Input) { in.Name = strings.Repeat("a", 101) }},
		{"bad email", func(in *Input) { in.Email = "not-an-email" }},
		{"long email", func(in *Input) { in.Email = strings.Repeat("a", 250) + "@example.com" }},
		{"blank subject", func(in *Input) { in.Subject = "" }},
		{"long subject", func(in *Input) { in.Subject = strings.Repeat("s", 201) }},
		{"blank message", func(in *Input) { in.Message = "   " }},
		{"long message", func(in *Input) { in.Message = strings.Repeat("m", 2001) }},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		if _, err := svc.Submit(ctx, in); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
	if len(repo.created) != 0 {
		t.Fatalf("invalid submissions reached the repository: %d", len(repo.created))
	}
}
