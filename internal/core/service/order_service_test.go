package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders    []*domain.Order // insertion order
	seq       int
	createErr error
	listErr   error
	updateErr error
	// racer, when set, is stored by a competing request just before the
	// next Create, which then fails on the idempotency key.
	racer *domain.Order
}

func newStubOrderRepo() *stubOrderRepo { return &stubOrderRepo{} }

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.racer != nil {
		r.seq++
		r.racer.ID = fmt.Sprintf("order-%d", r.seq)
		r.orders = append(r.orders, cloneOrder(r.racer))
		r.racer = nil
		if r.orders[len(r.orders)-1].IdempotencyKey == o.IdempotencyKey {
			return domain.ErrDuplicateOrder
		}
	}
	r.seq++
	o.ID = fmt.Sprintf("order-%d", r.seq)
	r.orders = append(r.orders, cloneOrder(o))
	return nil
}

func (r *stubOrderRepo) find(id string) *domain.Order {
	for _, o := range r.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o := r.find(id)
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.UserID == userID && o.IdempotencyKey == key {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]domain.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Order
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	o := r.find(id)
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, domain.ErrConcurrentUpdate
	}
	o.Status = to
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

type recordingPublisher struct {
	events []domain.StatusEvent
}

func (p *recordingPublisher) Publish(e domain.StatusEvent) { p.events = append(p.events, e) }

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type orderFixture struct {
	svc    *OrderService
	orders *stubOrderRepo
	users  *stubUserRepo
	events *stubEventRepo
	clock  *fakeClock
}

func newOrderFixture(t *testing.T, opts ...OrderOption) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders: newStubOrderRepo(),
		users:  newStubUserRepo(),
		events: &stubEventRepo{},
		clock:  &fakeClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	catalog := NewCatalogService(&stubProductRepo{products: menu()}, nil, zerolog.Nop())
	opts = append([]OrderOption{WithOrderClock(f.clock.Now)}, opts...)
	f.svc = NewOrderService(f.orders, catalog, f.users, NewStatusEventService(f.events, zerolog.Nop()), zerolog.Nop(), opts...)
	return f
}

func (f *orderFixture) user(t *testing.T, name string, role domain.Role) domain.Actor {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return domain.Actor{UserID: u.ID, Role: u.Role}
}

func (f *orderFixture) place(t *testing.T, userID string, items ...ports.OrderItemInput) *domain.OrderView {
	t.Helper()
	if len(items) == 0 {
		items = []ports.OrderItemInput{{ProductID: "1"}}
	}
	res, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: userID, Items: items})
	require.NoError(t, err)
	return res.Order
}

// withStatus forces an order into a given status, bypassing the policy.
func (f *orderFixture) withStatus(t *testing.T, id string, st domain.OrderStatus) {
	t.Helper()
	o := f.orders.find(id)
	require.NotNil(t, o)
	o.Status = st
}

func qty(n int) *int { return &n }

// ---------------------------------------------------------------------------
// CreateOrder
// ---------------------------------------------------------------------------

func TestOrderService_Create_Success(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)

	res, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: alice.UserID,
		Items: []ports.OrderItemInput{
			{ProductID: "1", Quantity: qty(2)},
			{ProductID: "3"},
		},
	})
	require.NoError(t, err)
	assert.False(t, res.AlreadyExisted)

	o := res.Order
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, alice.UserID, o.UserID)
	assert.Equal(t, f.clock.Now(), o.CreatedAt)
	assert.Nil(t, o.Purchaser)
	require.Len(t, o.Items, 2)

	assert.Equal(t, "Pizza Margherita", o.Items[0].Name)
	assert.Equal(t, "35", o.Items[0].Price.String())
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "Suco de Laranja", o.Items[1].Name)
	assert.Equal(t, 1, o.Items[1].Quantity, "quantity defaults to 1")
	assert.NotEqual(t, o.Items[0].ID, o.Items[1].ID)

	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, domain.StatusPending, f.orders.orders[0].Status)
}

func TestOrderService_Create_ItemCountMatchesInput(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)

	for n := 1; n <= 4; n++ {
		items := make([]ports.OrderItemInput, n)
		for i := range items {
			items[i] = ports.OrderItemInput{ProductID: fmt.Sprint(i%3 + 1), Quantity: qty(i + 1)}
		}
		o := f.place(t, alice.UserID, items...)
		assert.Len(t, o.Items, n)
		assert.Equal(t, domain.StatusPending, o.Status)
	}
}

func TestOrderService_Create_RejectsInvalidInput(t *testing.T) {
	cases := map[string][]ports.OrderItemInput{
		"empty items":      nil,
		"unknown product":  {{ProductID: "1"}, {ProductID: "99"}},
		"blank product id": {{ProductID: "  "}},
		"zero quantity":    {{ProductID: "1", Quantity: qty(0)}},
		"negative qty":     {{ProductID: "2", Quantity: qty(-3)}},
	}

	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			f := newOrderFixture(t)
			alice := f.user(t, "alice", domain.RoleCustomer)

			_, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: alice.UserID, Items: items})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, f.orders.orders, "nothing may be written on invalid input")
		})
	}
}

func TestOrderService_Create_StoreFailureIsInternal(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.createErr = errors.New("mongo unavailable")

	_, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "u", Items: []ports.OrderItemInput{{ProductID: "1"}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderService_Create_IdempotencyReplay(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	bob := f.user(t, "bob", domain.RoleCustomer)

	in := ports.CreateOrderInput{UserID: alice.UserID, Items: []ports.OrderItemInput{{ProductID: "2"}}, IdempotencyKey: "k-1"}
	first, err := f.svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)

	second, err := f.svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, second.AlreadyExisted)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Len(t, f.orders.orders, 1)

	// The same key from another user is a different order.
	in.UserID = bob.UserID
	third, err := f.svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, third.AlreadyExisted)
	assert.Len(t, f.orders.orders, 2)
}

func TestOrderService_Create_IdempotencyRaceReturnsWinner(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)

	f.orders.racer = &domain.Order{
		UserID:         alice.UserID,
		Items:          []domain.OrderItem{{ID: "item-1", ProductID: "2", Quantity: 1}},
		Status:         domain.StatusPending,
		CreatedAt:      f.clock.Now(),
		IdempotencyKey: "k-race",
	}

	res, err := f.svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID:         alice.UserID,
		Items:          []ports.OrderItemInput{{ProductID: "2"}},
		IdempotencyKey: "k-race",
	})
	require.NoError(t, err)
	assert.True(t, res.AlreadyExisted)
	assert.Equal(t, "order-1", res.Order.ID)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, "Hambúrguer Artesanal", res.Order.Items[0].Name)
	assert.Len(t, f.orders.orders, 1)
}

func TestOrderService_Create_TruncatesCreatedAtToStorePrecision(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	f.clock.t = time.Date(2026, 5, 1, 12, 0, 0, 123456789, time.UTC)

	view := f.place(t, alice.UserID)
	want := time.Date(2026, 5, 1, 12, 0, 0, 123000000, time.UTC)
	assert.Equal(t, want, view.CreatedAt)

	history, err := f.svc.History(context.Background(), alice.UserID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, view.CreatedAt, history[0].CreatedAt)
}

// ---------------------------------------------------------------------------
// TransitionStatus
// ---------------------------------------------------------------------------

func TestOrderService_Transition_AdminFromAnyNonTerminal(t *testing.T) {
	for _, from := range domain.OrderStatuses {
		if from.IsTerminal() {
			continue
		}
		for _, to := range domain.OrderStatuses {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				f := newOrderFixture(t)
				alice := f.user(t, "alice", domain.RoleCustomer)
				admin := f.user(t, "admin", domain.RoleAdmin)
				o := f.place(t, alice.UserID)
				f.withStatus(t, o.ID, from)

				got, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
					OrderID: o.ID, Status: string(to), Actor: admin,
				})
				require.NoError(t, err)
				assert.Equal(t, to, got.Status)
				assert.Equal(t, to, f.orders.find(o.ID).Status)
				assert.Equal(t, "Pizza Margherita", got.Items[0].Name)
			})
		}
	}
}

func TestOrderService_Transition_TerminalStatesAreFinal(t *testing.T) {
	for _, from := range []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled} {
		f := newOrderFixture(t)
		alice := f.user(t, "alice", domain.RoleCustomer)
		admin := f.user(t, "admin", domain.RoleAdmin)
		o := f.place(t, alice.UserID)
		f.withStatus(t, o.ID, from)

		_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
			OrderID: o.ID, Status: string(domain.StatusPreparing), Actor: admin,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "from %s", from)
		assert.Equal(t, from, f.orders.find(o.ID).Status)
	}
}

func TestOrderService_Transition_CustomerOnlyCancelsPending(t *testing.T) {
	for _, from := range domain.OrderStatuses {
		for _, to := range domain.OrderStatuses {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				f := newOrderFixture(t)
				alice := f.user(t, "alice", domain.RoleCustomer)
				o := f.place(t, alice.UserID)
				f.withStatus(t, o.ID, from)

				got, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
					OrderID: o.ID, Status: string(to), Actor: alice,
				})
				if from == domain.StatusPending && to == domain.StatusCancelled {
					require.NoError(t, err)
					assert.Equal(t, domain.StatusCancelled, got.Status)
					return
				}
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				assert.Equal(t, from, f.orders.find(o.ID).Status)
			})
		}
	}
}

func TestOrderService_Transition_CustomerCannotTouchOthersOrders(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	mallory := f.user(t, "mallory", domain.RoleCustomer)
	o := f.place(t, alice.UserID)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusCancelled), Actor: mallory,
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, domain.StatusPending, f.orders.find(o.ID).Status)
}

func TestOrderService_Transition_UnknownStatus(t *testing.T) {
	f := newOrderFixture(t)
	admin := f.user(t, "admin", domain.RoleAdmin)

	for _, raw := range []string{"", "pendente", "em rota", "ready", "DELIVERED"} {
		_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
			OrderID: "does-not-matter", Status: raw, Actor: admin,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "status %q", raw)
	}
}

func TestOrderService_Transition_NotFound(t *testing.T) {
	f := newOrderFixture(t)
	admin := f.user(t, "admin", domain.RoleAdmin)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: "missing", Status: string(domain.StatusDelivered), Actor: admin,
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_Transition_UnknownRoleForbidden(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	o := f.place(t, alice.UserID)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusPreparing), Actor: domain.Actor{UserID: "k", Role: "kitchen"},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderService_Transition_ConcurrentUpdate(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)
	o := f.place(t, alice.UserID)
	f.orders.updateErr = domain.ErrConcurrentUpdate

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusPreparing), Actor: admin,
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	assert.Empty(t, f.events.events, "rejected transitions are not logged")
}

func TestOrderService_Transition_RecordsEventInline(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)
	o := f.place(t, alice.UserID)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusEnRoute), Actor: admin,
	})
	require.NoError(t, err)

	require.Len(t, f.events.events, 1)
	e := f.events.events[0]
	assert.Equal(t, o.ID, e.OrderID)
	assert.Equal(t, domain.StatusPending, e.From)
	assert.Equal(t, domain.StatusEnRoute, e.To)
	assert.Equal(t, admin.UserID, e.ActorID)
	assert.Equal(t, domain.RoleAdmin, e.ActorRole)
}

func TestOrderService_Transition_UsesPublisherWhenConfigured(t *testing.T) {
	pub := &recordingPublisher{}
	f := newOrderFixture(t, WithEventPublisher(pub))
	alice := f.user(t, "alice", domain.RoleCustomer)
	o := f.place(t, alice.UserID)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusCancelled), Actor: alice,
	})
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
	assert.Empty(t, f.events.events)
}

func TestOrderService_Transition_EventLogFailureIsNonFatal(t *testing.T) {
	f := newOrderFixture(t)
	f.events.insertErr = errors.New("mongo unavailable")
	alice := f.user(t, "alice", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)
	o := f.place(t, alice.UserID)

	got, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusPreparing), Actor: admin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, got.Status)
}

// ---------------------------------------------------------------------------
// ListOrders / History
// ---------------------------------------------------------------------------

func TestOrderService_List_CustomerSeesOnlyOwn(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	bob := f.user(t, "bob", domain.RoleCustomer)

	f.place(t, alice.UserID)
	f.place(t, bob.UserID)
	f.place(t, alice.UserID)

	views, err := f.svc.ListOrders(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, alice.UserID, v.UserID)
		assert.Nil(t, v.Purchaser, "customers never see purchaser fields")
	}
}

func TestOrderService_List_AdminSeesAllNewestFirst(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	bob := f.user(t, "bob", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)

	first := f.place(t, alice.UserID)
	f.clock.t = f.clock.t.Add(time.Minute)
	second := f.place(t, bob.UserID)
	third := f.place(t, alice.UserID) // same instant as second
	f.clock.t = f.clock.t.Add(time.Minute)
	fourth := f.place(t, bob.UserID)

	views, err := f.svc.ListOrders(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, views, 4)

	gotIDs := []string{views[0].ID, views[1].ID, views[2].ID, views[3].ID}
	assert.Equal(t, []string{fourth.ID, second.ID, third.ID, first.ID}, gotIDs)

	for _, v := range views {
		require.NotNil(t, v.Purchaser)
		assert.Equal(t, v.UserID, v.Purchaser.ID)
	}
	assert.Equal(t, "bob", views[0].Purchaser.Name)
	assert.Equal(t, "bob@example.com", views[0].Purchaser.Email)
}

func TestOrderService_History_IsSelfScopedForAdminsToo(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)
	f.place(t, alice.UserID)
	f.place(t, admin.UserID)

	views, err := f.svc.History(context.Background(), admin.UserID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, admin.UserID, views[0].UserID)
}

func TestOrderService_List_UnknownRoleForbidden(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.ListOrders(context.Background(), domain.Actor{UserID: "x", Role: "guest"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderService_List_StoreError(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.listErr = errors.New("boom")
	_, err := f.svc.ListOrders(context.Background(), domain.Actor{UserID: "x", Role: domain.RoleAdmin})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Delete / events
// ---------------------------------------------------------------------------

func TestOrderService_Delete(t *testing.T) {
	f := newOrderFixture(t)
	alice := f.user(t, "alice", domain.RoleCustomer)
	admin := f.user(t, "admin", domain.RoleAdmin)
	o := f.place(t, alice.UserID)

	_, err := f.svc.TransitionStatus(context.Background(), ports.TransitionInput{
		OrderID: o.ID, Status: string(domain.StatusPreparing), Actor: admin,
	})
	require.NoError(t, err)

	events, err := f.svc.StatusEvents(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), o.ID))
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, []string{o.ID}, f.events.purged)

	assert.ErrorIs(t, f.svc.DeleteOrder(context.Background(), o.ID), domain.ErrOrderNotFound)
	_, err = f.svc.StatusEvents(context.Background(), o.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ---------------------------------------------------------------------------
// End-to-end scenario
// ---------------------------------------------------------------------------

func TestOrderLifecycle_Scenario(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	tokens, err := NewTokenService("secret", DefaultTokenTTL)
	require.NoError(t, err)
	auth := NewAuthService(users, tokens, bcrypt.MinCost, zerolog.Nop())

	_, err = auth.Register(ctx, "A", "a@example.com", "pw")
	require.NoError(t, err)
	login, err := auth.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	claims, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	customer := domain.Actor{UserID: claims.SubjectID, Role: claims.Role}

	admin, err := auth.EnsureAdmin(ctx, "Boss", "boss@example.com", "pw")
	require.NoError(t, err)

	catalog := NewCatalogService(&stubProductRepo{products: menu()}, nil, zerolog.Nop())
	orders := NewOrderService(newStubOrderRepo(), catalog, users, NewStatusEventService(&stubEventRepo{}, zerolog.Nop()), zerolog.Nop())

	created, err := orders.CreateOrder(ctx, ports.CreateOrderInput{
		UserID: customer.UserID,
		Items:  []ports.OrderItemInput{{ProductID: "1", Quantity: qty(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Order.Status)
	require.Len(t, created.Order.Items, 1)
	assert.Equal(t, 2, created.Order.Items[0].Quantity)

	_, err = orders.TransitionStatus(ctx, ports.TransitionInput{
		OrderID: created.Order.ID,
		Status:  string(domain.StatusDelivered),
		Actor:   domain.Actor{UserID: admin.ID, Role: admin.Role},
	})
	require.NoError(t, err)

	mine, err := orders.ListOrders(ctx, customer)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.StatusDelivered, mine[0].Status)
}
