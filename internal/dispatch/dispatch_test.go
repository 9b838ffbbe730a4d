package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/flugede/storefront-ui/internal/checkout"
	"github.com/flugede/storefront-ui/internal/model"
)

type stubClient struct {
	subscribeRes *model.ActionResult
	subscribeErr error

	couponRes *model.ActionResult
	couponErr error

	cartRes *model.ActionResult
	cartErr error

	calls int
}

func (s *stubClient) Subscribe(ctx context.Context, email, token string) (*model.ActionResult, error) {
	s.calls++
	return s.subscribeRes, s.subscribeErr
}

func (s *stubClient) ApplyCoupon(ctx context.Context, code, token string) (*model.ActionResult, error) {
	s.calls++
	return s.couponRes, s.couponErr
}

func (s *stubClient) UpdateCartQuantity(ctx context.Context, itemID int64, quantity int, token string) (*model.ActionResult, error) {
	s.calls++
	return s.cartRes, s.cartErr
}

type pushed struct {
	kind    model.NotificationKind
	message string
}

type stubNotifier struct {
	pushes []pushed
}

func (s *stubNotifier) Push(kind model.NotificationKind, message string) uuid.UUID {
	s.pushes = append(s.pushes, pushed{kind: kind, message: message})
	return uuid.New()
}

type stubCalculator struct {
	recomputes int
}

func (s *stubCalculator) Recompute() { s.recomputes++ }

type stubRefresher struct {
	refreshes int
	err       error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.refreshes++
	return s.err
}

type stubTokens struct{}

func (stubTokens) Token() string { return "tok" }

type stubForms struct {
	cleared int
}

func (s *stubForms) ClearSubscribeForm() { s.cleared++ }

type fixture struct {
	client     *stubClient
	notifier   *stubNotifier
	fields     *checkout.PriceFields
	calculator *stubCalculator
	refresher  *stubRefresher
	forms      *stubForms
	dispatcher *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		client:     &stubClient{},
		notifier:   &stubNotifier{},
		fields:     &checkout.PriceFields{},
		calculator: &stubCalculator{},
		refresher:  &stubRefresher{},
		forms:      &stubForms{},
	}
	f.dispatcher = NewDispatcher(
		f.client, f.notifier, f.fields, f.calculator,
		f.refresher, stubTokens{}, f.forms, zap.NewNop(),
	)
	return f
}

func (f *fixture) lastPush(t *testing.T) pushed {
	t.Helper()
	if len(f.notifier.pushes) == 0 {
		t.Fatalf("no notifications pushed")
	}
	return f.notifier.pushes[len(f.notifier.pushes)-1]
}

func TestSubscribe_SuccessClearsFormAndNotifies(t *testing.T) {
	f := newFixture(t)
	f.client.subscribeRes = &model.ActionResult{Success: true, Message: "Subscribed successfully!"}

	f.dispatcher.Subscribe(context.Background(), "user@example.com")

	if f.forms.cleared != 1 {
		t.Fatalf("form cleared %d times, want 1", f.forms.cleared)
	}
	p := f.lastPush(t)
	if p.kind != model.NotificationSuccess || p.message != "Subscribed successfully!" {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestSubscribe_BusinessFailureFallbackMessage(t *testing.T) {
	f := newFixture(t)
	f.client.subscribeRes = &model.ActionResult{Success: false}

	f.dispatcher.Subscribe(context.Background(), "user@example.com")

	if f.forms.cleared != 0 {
		t.Fatalf("form cleared on failure")
	}
	p := f.lastPush(t)
	if p.kind != model.NotificationError || p.message != "Subscription failed. Please try again." {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestSubscribe_TransportFailureGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.client.subscribeErr = errors.New("connection refused")

	f.dispatcher.Subscribe(context.Background(), "user@example.com")

	p := f.lastPush(t)
	if p.kind != model.NotificationError || p.message != "An error occurred. Please try again." {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestApplyCoupon_EmptyCodeShortCircuits(t *testing.T) {
	f := newFixture(t)

	f.dispatcher.ApplyCoupon(context.Background(), "")

	if f.client.calls != 0 {
		t.Fatalf("network calls = %d for empty code, want 0", f.client.calls)
	}
	if f.calculator.recomputes != 0 {
		t.Fatalf("recomputes = %d for empty code, want 0", f.calculator.recomputes)
	}
	p := f.lastPush(t)
	if p.kind != model.NotificationWarning || p.message != "Please enter a coupon code first." {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestApplyCoupon_SuccessSetsDiscountAndRecomputesOnce(t *testing.T) {
	f := newFixture(t)
	f.client.couponRes = &model.ActionResult{
		Success:  true,
		Message:  "Coupon applied successfully!",
		Discount: decimal.RequireFromString("10.00"),
	}

	f.dispatcher.ApplyCoupon(context.Background(), "SAVE10")

	_, _, _, discount := f.fields.Snapshot()
	if !discount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("discount = %s, want 10.00", discount)
	}
	if f.calculator.recomputes != 1 {
		t.Fatalf("recomputes = %d, want exactly 1", f.calculator.recomputes)
	}
	if p := f.lastPush(t); p.kind != model.NotificationSuccess {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestApplyCoupon_RejectionResetsDiscountAndRecomputesOnce(t *testing.T) {
	f := newFixture(t)
	f.fields.SetDiscount(decimal.RequireFromString("25"))
	f.client.couponRes = &model.ActionResult{Success: false, Message: "Invalid coupon code!"}

	f.dispatcher.ApplyCoupon(context.Background(), "BAD")

	_, _, _, discount := f.fields.Snapshot()
	if !discount.IsZero() {
		t.Fatalf("discount = %s after rejection, want 0", discount)
	}
	if f.calculator.recomputes != 1 {
		t.Fatalf("recomputes = %d, want exactly 1", f.calculator.recomputes)
	}
	p := f.lastPush(t)
	if p.kind != model.NotificationError || p.message != "Invalid coupon code!" {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestApplyCoupon_TransportFailureLeavesFieldsAlone(t *testing.T) {
	f := newFixture(t)
	f.fields.SetDiscount(decimal.RequireFromString("25"))
	f.client.couponErr = errors.New("timeout")

	f.dispatcher.ApplyCoupon(context.Background(), "SAVE10")

	_, _, _, discount := f.fields.Snapshot()
	if !discount.Equal(decimal.RequireFromString("25")) {
		t.Fatalf("discount = %s after transport failure, want untouched 25", discount)
	}
	if f.calculator.recomputes != 0 {
		t.Fatalf("recomputes = %d after transport failure, want 0", f.calculator.recomputes)
	}
	p := f.lastPush(t)
	if p.message != "An error occurred. Please try again." {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestUpdateQuantity_SuccessTriggersFullRefreshOnly(t *testing.T) {
	f := newFixture(t)
	f.client.cartRes = &model.ActionResult{Success: true, Message: "Cart updated!"}

	f.dispatcher.UpdateQuantity(context.Background(), 42, 3)

	if f.refresher.refreshes != 1 {
		t.Fatalf("refreshes = %d, want exactly 1", f.refresher.refreshes)
	}
	if f.calculator.recomputes != 0 {
		t.Fatalf("recomputes = %d, cart update must not recompute locally", f.calculator.recomputes)
	}
	if len(f.notifier.pushes) != 0 {
		t.Fatalf("unexpected notifications: %+v", f.notifier.pushes)
	}
}

func TestUpdateQuantity_FailureSurfacesServerMessageVerbatim(t *testing.T) {
	f := newFixture(t)
	f.client.cartRes = &model.ActionResult{Success: false, Message: "Invalid quantity!"}

	f.dispatcher.UpdateQuantity(context.Background(), 42, 999)

	if f.refresher.refreshes != 0 {
		t.Fatalf("refreshes = %d on failure, want 0", f.refresher.refreshes)
	}
	p := f.lastPush(t)
	if p.kind != model.NotificationError || p.message != "Invalid quantity!" {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestUpdateQuantity_TransportFailureGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.client.cartErr = errors.New("connection reset")

	f.dispatcher.UpdateQuantity(context.Background(), 42, 3)

	if f.refresher.refreshes != 0 {
		t.Fatalf("refreshes = %d on transport failure, want 0", f.refresher.refreshes)
	}
	p := f.lastPush(t)
	if p.message != "An error occurred. Please try again." {
		t.Fatalf("unexpected notification: %+v", p)
	}
}

func TestUpdateQuantity_RefreshFailureIsSurfaced(t *testing.T) {
	f := newFixture(t)
	f.client.cartRes = &model.ActionResult{Success: true}
	f.refresher.err = errors.New("store unavailable")

	f.dispatcher.UpdateQuantity(context.Background(), 42, 3)

	p := f.lastPush(t)
	if p.kind != model.NotificationError {
		t.Fatalf("unexpected notification: %+v", p)
	}
}
