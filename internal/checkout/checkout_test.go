package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"digitalshop/internal/cart"
	"digitalshop/internal/domain"
)

type stubOrderWriter struct {
	created *domain.Order
	err     error
	calls   int
	last    domain.Order
	before  func()
}

func (s *stubOrderWriter) Create(_ context.Context, order domain.Order) (*domain.Order, error) {
	s.calls++
	s.last = order
	if s.before != nil {
		s.before()
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return s.created, nil
	}
	out := order
	out.ID = "order-1"
	return &out, nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func validForm() BillingForm {
	return BillingForm{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Address:       "12 Analytical Engine Way",
		City:          "London",
		Zip:           "E1 6AN",
		PaymentMethod: PaymentCard,
		CardNumber:    "4242424242424242",
		Expiry:        "04/27",
		CVV:           "123",
	}
}

func cartWith(t *testing.T, items ...domain.Product) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	for _, p := range items {
		store.AddItem(p, 1)
	}
	return store
}

func TestSubmitHappyPath(t *testing.T) {
	writer := &stubOrderWriter{}
	notifier := &recordingNotifier{}
	flow := New(writer, notifier, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "Marketing Dashboard Pro", PriceCents: 14900})

	order, err := flow.Submit(context.Background(), "user-1", validForm(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TotalCents != 14900 {
		t.Fatalf("expected total 14900, got %d", order.TotalCents)
	}
	if writer.calls != 1 {
		t.Fatalf("expected exactly one order write, got %d", writer.calls)
	}
	if writer.last.UserID != "user-1" {
		t.Fatalf("order keyed under %q", writer.last.UserID)
	}
	if len(writer.last.Items) != 1 || writer.last.Items[0].ProductID != "1" || writer.last.Items[0].Quantity != 1 {
		t.Fatalf("unexpected order items %+v", writer.last.Items)
	}
	if !store.Empty() {
		t.Fatalf("cart not cleared after confirmed checkout")
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification, got %v", notifier.successes)
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected flow back in idle, got %s", flow.State())
	}
}

func TestSubmitBillingFieldsCopiedIntoSnapshot(t *testing.T) {
	writer := &stubOrderWriter{}
	flow := New(writer, nil, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 100})

	if _, err := flow.Submit(context.Background(), "u", validForm(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := writer.last
	if got.BillingName != "Ada Lovelace" {
		t.Fatalf("billing name %q", got.BillingName)
	}
	if got.BillingEmail != "ada@example.com" || got.BillingCity != "London" {
		t.Fatalf("billing fields not copied: %+v", got)
	}
	if got.PaymentMethod != "card" || got.PaymentStatus != "completed" {
		t.Fatalf("payment fields: method=%q status=%q", got.PaymentMethod, got.PaymentStatus)
	}
}

func TestSubmitValidationFailureLeavesCartUntouched(t *testing.T) {
	writer := &stubOrderWriter{}
	notifier := &recordingNotifier{}
	flow := New(writer, notifier, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 14900})

	form := validForm()
	form.Email = "not-an-email"

	_, err := flow.Submit(context.Background(), "user-1", form, store)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "email" || verr.Message != "Invalid email address" {
		t.Fatalf("unexpected field error %+v", verr)
	}
	if writer.calls != 0 {
		t.Fatalf("order write attempted despite validation failure")
	}
	if store.TotalItems() != 1 {
		t.Fatalf("cart mutated on validation failure")
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle after validation failure, got %s", flow.State())
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one error notification, got %v", notifier.errors)
	}
}

func TestSubmitSubmissionFailurePreservesCart(t *testing.T) {
	writer := &stubOrderWriter{err: errors.New("firestore is down")}
	notifier := &recordingNotifier{}
	flow := New(writer, notifier, nil)
	store := cartWith(t,
		domain.Product{ID: "1", Title: "P1", PriceCents: 14900},
		domain.Product{ID: "2", Title: "P2", PriceCents: 9900},
	)

	_, err := flow.Submit(context.Background(), "user-1", validForm(), store)
	var serr *SubmissionError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if store.TotalItems() != 2 {
		t.Fatalf("cart changed on submission failure: %+v", store.Items())
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle after submission failure, got %s", flow.State())
	}

	// Resubmission after the collaborator recovers succeeds with the same
	// cart contents.
	writer.err = nil
	order, err := flow.Submit(context.Background(), "user-1", validForm(), store)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if order.TotalCents != 24800 {
		t.Fatalf("expected retry total 24800, got %d", order.TotalCents)
	}
	if !store.Empty() {
		t.Fatalf("cart not cleared after successful retry")
	}
}

func TestSubmitRequiresAuthenticatedUser(t *testing.T) {
	writer := &stubOrderWriter{}
	flow := New(writer, nil, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 100})

	_, err := flow.Submit(context.Background(), "", validForm(), store)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if writer.calls != 0 {
		t.Fatalf("flow reached submission without a user")
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle, got %s", flow.State())
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	flow := New(&stubOrderWriter{}, nil, nil)
	_, err := flow.Submit(context.Background(), "user-1", validForm(), cart.NewStore())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitCancelledContextDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	writer := &stubOrderWriter{before: cancel}
	flow := New(writer, nil, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 14900})

	_, err := flow.Submit(ctx, "user-1", validForm(), store)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.Empty() {
		t.Fatalf("cart cleared despite cancelled context")
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle, got %s", flow.State())
	}
}

func TestValidationContract(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*BillingForm)
		field   string
		message string
	}{
		{"missing first name", func(f *BillingForm) { f.FirstName = "  " }, "firstName", "First name is required"},
		{"first name too long", func(f *BillingForm) { f.FirstName = strings.Repeat("a", 101) }, "firstName", "First name too long"},
		{"missing last name", func(f *BillingForm) { f.LastName = "" }, "lastName", "Last name is required"},
		{"invalid email", func(f *BillingForm) { f.Email = "nope" }, "email", "Invalid email address"},
		{"email too long", func(f *BillingForm) { f.Email = strings.Repeat("a", 250) + "@example.com" }, "email", "Email too long"},
		{"missing address", func(f *BillingForm) { f.Address = "" }, "address", "Address is required"},
		{"address too long", func(f *BillingForm) { f.Address = strings.Repeat("a", 501) }, "address", "Address too long"},
		{"missing city", func(f *BillingForm) { f.City = "" }, "city", "City is required"},
		{"zip too long", func(f *BillingForm) { f.Zip = strings.Repeat("1", 21) }, "zip", "ZIP code too long"},
		{"card number short", func(f *BillingForm) { f.CardNumber = "1234" }, "cardNumber", "Card number must be 16 digits"},
		{"card number non-digit", func(f *BillingForm) { f.CardNumber = "42424242424242ab" }, "cardNumber", "Card number must be 16 digits"},
		{"card number missing", func(f *BillingForm) { f.CardNumber = "" }, "cardNumber", "Card number must be 16 digits"},
		{"expiry month 00", func(f *BillingForm) { f.Expiry = "00/27" }, "expiry", "Expiry must be MM/YY format"},
		{"expiry month 13", func(f *BillingForm) { f.Expiry = "13/27" }, "expiry", "Expiry must be MM/YY format"},
		{"expiry wrong shape", func(f *BillingForm) { f.Expiry = "4/27" }, "expiry", "Expiry must be MM/YY format"},
		{"cvv too short", func(f *BillingForm) { f.CVV = "12" }, "cvv", "CVV must be 3-4 digits"},
		{"cvv too long", func(f *BillingForm) { f.CVV = "12345" }, "cvv", "CVV must be 3-4 digits"},
		{"unknown payment method", func(f *BillingForm) { f.PaymentMethod = "wire" }, "paymentMethod", "Unsupported payment method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flow := New(&stubOrderWriter{}, nil, nil)
			store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 100})
			form := validForm()
			tc.mutate(&form)

			_, err := flow.Submit(context.Background(), "user-1", form, store)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field || verr.Message != tc.message {
				t.Fatalf("got field=%q message=%q, want field=%q message=%q", verr.Field, verr.Message, tc.field, tc.message)
			}
		})
	}
}

func TestCardFieldsIgnoredForNonCardPayment(t *testing.T) {
	flow := New(&stubOrderWriter{}, nil, nil)
	store := cartWith(t, domain.Product{ID: "1", Title: "P", PriceCents: 100})

	form := validForm()
	form.PaymentMethod = PaymentPaypal
	form.CardNumber = ""
	form.Expiry = ""
	form.CVV = ""

	if _, err := flow.Submit(context.Background(), "user-1", form, store); err != nil {
		t.Fatalf("paypal checkout should not require card fields: %v", err)
	}
}

func TestSubmitMergedQuantitiesCarryIntoSnapshot(t *testing.T) {
	writer := &stubOrderWriter{}
	flow := New(writer, nil, nil)
	store := cart.NewStore()
	p := domain.Product{ID: "1", Title: "P", PriceCents: 5000}
	store.AddItem(p, 1)
	store.AddItem(p, 2)

	order, err := flow.Submit(context.Background(), "user-1", validForm(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Fatalf("expected one merged line with quantity 3, got %+v", order.Items)
	}
	if order.TotalCents != 15000 {
		t.Fatalf("expected total 15000, got %d", order.TotalCents)
	}
}
