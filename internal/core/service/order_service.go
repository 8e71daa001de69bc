package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
	"github.com/sabor/restaurant-orders/internal/pkg/metrics"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService is the order lifecycle manager: creation, status transitions
// and role-scoped listings.
type OrderService struct {
	orders    ports.OrderRepository
	catalog   ports.CatalogService
	users     ports.UserRepository
	events    ports.StatusEventService
	publisher ports.StatusEventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

// OrderOption customises an OrderService.
type OrderOption func(*OrderService)

// WithOrderClock overrides the time source for creation timestamps.
func WithOrderClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

// WithEventPublisher sends transition events through p instead of recording
// them inline.
func WithEventPublisher(p ports.StatusEventPublisher) OrderOption {
	return func(s *OrderService) { s.publisher = p }
}

func NewOrderService(
	orders ports.OrderRepository,
	catalog ports.CatalogService,
	users ports.UserRepository,
	events ports.StatusEventService,
	log zerolog.Logger,
	opts ...OrderOption,
) *OrderService {
	s := &OrderService{
		orders:  orders,
		catalog: catalog,
		users:   users,
		events:  events,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder validates every line before anything is written, then stores
// a new pending order. A repeated idempotency key from the same user returns
// the earlier order untouched.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: missing user", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, len(in.Items))
	ids := make([]string, 0, len(in.Items))
	for i, item := range in.Items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" {
			return nil, fmt.Errorf("%w: item %d has no product id", domain.ErrInvalidInput, i)
		}
		quantity := 1
		if item.Quantity != nil {
			quantity = *item.Quantity
		}
		if quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for product %s must be at least 1", domain.ErrInvalidInput, productID)
		}
		items[i] = domain.OrderItem{ID: uuid.NewString(), ProductID: productID, Quantity: quantity}
		ids = append(ids, productID)
	}

	if in.IdempotencyKey != "" {
		res, err := s.replay(ctx, in.UserID, in.IdempotencyKey)
		switch {
		case err == nil:
			return res, nil
		case !errors.Is(err, domain.ErrOrderNotFound):
			return nil, fmt.Errorf("create order: idempotency lookup: %w", err)
		}
	}

	products, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("%w: product %s not found", domain.ErrInvalidInput, id)
		}
	}

	order := &domain.Order{
		UserID:         in.UserID,
		Items:          items,
		Status:         domain.StatusPending,
		CreatedAt:      s.now().Truncate(time.Millisecond),
		IdempotencyKey: in.IdempotencyKey,
	}
	err = s.orders.Create(ctx, order)
	if errors.Is(err, domain.ErrDuplicateOrder) {
		// Lost the race against a concurrent request with the same key.
		res, err := s.replay(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("create order: idempotency lookup: %w", err)
		}
		return res, nil
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().Str("order_id", order.ID).Str("user_id", order.UserID).Int("items", len(order.Items)).Msg("order created")

	view := toOrderView(*order, products, nil)
	return &ports.CreateOrderResult{Order: &view}, nil
}

// replay returns the order a user already submitted under key.
func (s *OrderService) replay(ctx context.Context, userID, key string) (*ports.CreateOrderResult, error) {
	existing, err := s.orders.FindByIdempotencyKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("idempotency_key", key).Str("order_id", existing.ID).Msg("idempotent replay")
	views, err := s.project(ctx, []domain.Order{*existing}, false)
	if err != nil {
		return nil, err
	}
	return &ports.CreateOrderResult{Order: &views[0], AlreadyExisted: true}, nil
}

// TransitionStatus applies a status change requested by an actor. The status
// is checked against the canonical set before the store is consulted.
func (s *OrderService) TransitionStatus(ctx context.Context, in ports.TransitionInput) (*domain.OrderView, error) {
	next, ok := domain.ParseOrderStatus(in.Status)
	if !ok {
		metrics.OrderTransitionsRejectedTotal.WithLabelValues("unknown_status").Inc()
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, in.Status)
	}
	if !in.Actor.Role.Valid() {
		return nil, domain.ErrForbidden
	}

	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			metrics.OrderTransitionsRejectedTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("transition status: %w", err)
	}

	// Customers never learn that someone else's order exists.
	if in.Actor.Role == domain.RoleCustomer && order.UserID != in.Actor.UserID {
		metrics.OrderTransitionsRejectedTotal.WithLabelValues("not_found").Inc()
		return nil, domain.ErrOrderNotFound
	}

	if !order.Status.CanTransition(in.Actor.Role, next) {
		metrics.OrderTransitionsRejectedTotal.WithLabelValues("not_allowed").Inc()
		return nil, fmt.Errorf("%w: %s cannot move order from %s to %s",
			domain.ErrInvalidTransition, in.Actor.Role, order.Status, next)
	}

	updated, err := s.orders.UpdateStatus(ctx, order.ID, order.Status, next)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConcurrentUpdate):
			metrics.OrderTransitionsRejectedTotal.WithLabelValues("conflict").Inc()
			return nil, err
		case errors.Is(err, domain.ErrOrderNotFound):
			metrics.OrderTransitionsRejectedTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("transition status: %w", err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(next), string(in.Actor.Role)).Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Str("actor_id", in.Actor.UserID).
		Str("actor_role", string(in.Actor.Role)).
		Msg("order status changed")

	s.publish(ctx, domain.StatusEvent{
		OrderID:   order.ID,
		From:      order.Status,
		To:        next,
		ActorID:   in.Actor.UserID,
		ActorRole: in.Actor.Role,
		Timestamp: s.now(),
	})

	views, err := s.project(ctx, []domain.Order{*updated}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListOrders returns all orders with purchaser details for admins, and only
// the actor's own orders for customers. Newest first.
func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor) ([]domain.OrderView, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.list(ctx, ports.ListOrdersFilter{}, true)
	case domain.RoleCustomer:
		return s.History(ctx, actor.UserID)
	default:
		return nil, domain.ErrForbidden
	}
}

func (s *OrderService) History(ctx context.Context, userID string) ([]domain.OrderView, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.list(ctx, ports.ListOrdersFilter{UserID: userID}, false)
}

// DeleteOrder purges an order and its event log.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("delete order: %w", err)
	}

	if err := s.events.Purge(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("order_id", id).Msg("failed to purge status events")
	}
	s.log.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

func (s *OrderService) StatusEvents(ctx context.Context, orderID string) ([]domain.StatusEvent, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("status events: %w", err)
	}
	return s.events.History(ctx, orderID)
}

func (s *OrderService) list(ctx context.Context, filter ports.ListOrdersFilter, withPurchaser bool) ([]domain.OrderView, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	views, err := s.project(ctx, orders, withPurchaser)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

// project builds read views, copying product and purchaser data in.
func (s *OrderService) project(ctx context.Context, orders []domain.Order, withPurchaser bool) ([]domain.OrderView, error) {
	views := make([]domain.OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	var productIDs []string
	userIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		for _, item := range o.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		userIDs = append(userIDs, o.UserID)
	}

	products, err := s.resolveProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	var purchasers map[string]*domain.Purchaser
	if withPurchaser {
		users, err := s.users.FindByIDs(ctx, uniq(userIDs))
		if err != nil {
			return nil, fmt.Errorf("load purchasers: %w", err)
		}
		purchasers = make(map[string]*domain.Purchaser, len(users))
		for _, u := range users {
			purchasers[u.ID] = &domain.Purchaser{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	for _, o := range orders {
		var purchaser *domain.Purchaser
		if withPurchaser {
			purchaser = purchasers[o.UserID]
			if purchaser == nil {
				purchaser = &domain.Purchaser{ID: o.UserID}
			}
		}
		views = append(views, toOrderView(o, products, purchaser))
	}
	return views, nil
}

func (s *OrderService) resolveProducts(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	found, err := s.catalog.FindByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.StatusEvent) {
	if s.publisher != nil {
		s.publisher.Publish(event)
		return
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("order_id", event.OrderID).Msg("failed to record status event")
	}
}

func toOrderView(o domain.Order, products map[string]domain.Product, purchaser *domain.Purchaser) domain.OrderView {
	items := make([]domain.OrderItemView, len(o.Items))
	for i, item := range o.Items {
		p := products[item.ProductID]
		items[i] = domain.OrderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
		}
	}
	return domain.OrderView{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     items,
		Purchaser: purchaser,
	}
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
