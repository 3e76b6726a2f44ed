package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"digitalshop/internal/cart"
	"digitalshop/internal/domain"

	"github.com/go-playground/validator/v10"
)

// State tracks where a checkout attempt currently is. Confirmed is terminal
// for one attempt; the flow returns to Idle afterwards so the same Flow can
// serve a later, unrelated checkout.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// OrderWriter persists one order snapshot per confirmed checkout, keyed
// under the purchasing user. No partial-write semantics are assumed.
type OrderWriter interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
}

// Notifier receives human-readable success and error strings. Delivery is
// fire-and-forget; the flow never waits on it.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Flow validates billing input, assembles an order snapshot from the
// session cart, delegates the write, and clears the cart only after the
// write is confirmed.
type Flow struct {
	orders   OrderWriter
	notify   Notifier
	validate *validator.Validate
	logger   *log.Logger

	mu    sync.Mutex
	state State
}

func New(orders OrderWriter, notify Notifier, logger *log.Logger) *Flow {
	if notify == nil {
		notify = nopNotifier{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Flow{
		orders:   orders,
		notify:   notify,
		validate: newValidator(),
		logger:   logger,
	}
}

// State reports the current position of the flow.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Submit runs one checkout attempt. On any failure the cart is left exactly
// as it was and the flow returns to Idle; the cart is cleared exactly once,
// after the order write succeeds. If ctx is cancelled before the post-write
// step runs, the result is discarded and the cart is not touched.
func (f *Flow) Submit(ctx context.Context, userID string, form BillingForm, store *cart.Store) (*domain.Order, error) {
	if userID == "" {
		f.notify.Error("Please log in to complete your purchase")
		return nil, ErrAuthRequired
	}
	if store.Empty() {
		return nil, ErrEmptyCart
	}

	f.setState(StateValidating)
	form.normalize()
	if err := f.validate.Struct(form); err != nil {
		f.setState(StateIdle)
		verr := validationError(err)
		f.notify.Error(verr.Message)
		return nil, verr
	}

	// Snapshot before the write so a concurrent mutation cannot leak into
	// the order.
	items := store.Items()
	if len(items) == 0 {
		f.setState(StateIdle)
		return nil, ErrEmptyCart
	}
	orderItems := make([]domain.OrderItem, 0, len(items))
	var total int64
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:      item.ProductID,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
		total += item.UnitPriceCents * int64(item.Quantity)
	}

	order := domain.Order{
		UserID:         userID,
		TotalCents:     total,
		PaymentMethod:  form.PaymentMethod,
		PaymentStatus:  "completed",
		BillingName:    form.FirstName + " " + form.LastName,
		BillingEmail:   form.Email,
		BillingAddress: form.Address,
		BillingCity:    form.City,
		BillingZip:     form.Zip,
		BillingCountry: "US",
		Items:          orderItems,
	}

	f.setState(StateSubmitting)
	created, err := f.orders.Create(ctx, order)
	if err != nil {
		f.setState(StateIdle)
		f.logger.Printf("checkout: order write for user %s failed: %v", userID, err)
		f.notify.Error("Failed to process order")
		return nil, &SubmissionError{Err: err}
	}

	// The surrounding session may have been torn down while the write was
	// in flight; discard the result rather than clearing a cart that is no
	// longer ours.
	if ctx.Err() != nil {
		f.setState(StateIdle)
		return nil, ctx.Err()
	}

	f.setState(StateConfirmed)
	store.Clear()
	f.notify.Success(fmt.Sprintf("Order confirmed! Total $%.2f", float64(created.TotalCents)/100))
	f.setState(StateIdle)
	return created, nil
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
