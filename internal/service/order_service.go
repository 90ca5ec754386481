package service

import (
	"context"
	"fmt"
	"time"

	"foolivery/internal/models"
	"foolivery/internal/store"
	"foolivery/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher receives order lifecycle events
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// OrderService handles order business logic
type OrderService struct {
	store          store.Repository
	eventPublisher EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(store store.Repository, eventPublisher EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
		now:            time.Now,
	}
}

// CreateOrderRequest is the checkout payload: delivery details, cart lines
// and the client-declared total, all money in minor units.
type CreateOrderRequest struct {
	FullName        string     `json:"fullName" validate:"required,min=3"`
	Phone           string     `json:"phone" validate:"required,min=10"`
	Address         string     `json:"address" validate:"required,min=5"`
	City            string     `json:"city" validate:"required,min=2"`
	ZipCode         string     `json:"zipCode" validate:"required,min=5"`
	AdditionalNotes string     `json:"additionalNotes,omitempty"`
	Items           []CartItem `json:"items" validate:"required,min=1,dive"`
	Total           int64      `json:"total" validate:"gt=0"`
	PaymentMethod   string     `json:"paymentMethod" validate:"omitempty,eq=COD"`
}

// CartItem is one cart line as submitted by the client
type CartItem struct {
	ID       int64  `json:"id" validate:"gt=0"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gt=0"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// FullAddress joins the structured delivery fields into one line
func (r *CreateOrderRequest) FullAddress() string {
	addr := fmt.Sprintf("%s, %s, %s", r.Address, r.City, r.ZipCode)
	if r.AdditionalNotes != "" {
		addr += fmt.Sprintf(" (%s)", r.AdditionalNotes)
	}
	return addr
}

// CreateOrder validates the checkout and persists a pending COD order.
// Nothing is written when validation fails.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	if err := validateStruct("Invalid order data", req); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	items := snapshotItems(req.Items)
	if sum := calculateTotal(items); sum != req.Total {
		util.OrderTotalMismatchTotal.Inc()
		s.logger.Warn("Declared order total differs from item sum",
			zap.Int64("user_id", userID),
			zap.Int64("declared", req.Total),
			zap.Int64("computed", sum))
	}

	order := &models.Order{
		UserID:        userID,
		Items:         items,
		TotalMinor:    req.Total,
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCOD,
		Address:       req.FullAddress(),
		Phone:         req.Phone,
		CreatedAt:     s.now(),
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("db_error").Inc()
		s.logger.Error("Failed to create order", zap.Int64("user_id", userID), zap.Error(err))
		return nil, internal("Error creating order", err)
	}

	util.OrdersCreatedTotal.Inc()
	util.OrderValueMinor.Observe(float64(order.TotalMinor))
	s.logger.Info("Order created", zap.Int64("order_id", order.ID), zap.Int64("user_id", userID))

	s.publishCreated(ctx, order)
	return order, nil
}

// ListOrders returns the caller's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	orders, err := s.store.ListOrdersByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Int64("user_id", userID), zap.Error(err))
		return nil, internal("Error retrieving orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder returns an order owned by the caller. A missing order is NotFound,
// an order owned by someone else is Forbidden.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	return s.ownedOrder(ctx, userID, orderID, "Forbidden: You can only access your own orders")
}

// UpdateOrderStatus moves an owned order to any valid status.
// Only the status changes; items, total and createdAt are kept.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, userID, orderID int64, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	next := models.OrderStatus(status)
	if status == "" {
		return nil, validationError("Status is required", map[string]string{"status": "is required"})
	}
	if !next.Valid() {
		return nil, validationError("Invalid status", map[string]string{"status": fmt.Sprintf("must be one of %v", models.OrderStatuses)})
	}

	current, err := s.ownedOrder(ctx, userID, orderID, "Forbidden: You can only update your own orders")
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		s.logger.Error("Failed to update order status", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, internal("Error updating order status", err)
	}
	if updated == nil {
		return nil, notFound("Order not found")
	}

	util.OrderStatusUpdatesTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info("Order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)))

	s.publishStatusChanged(ctx, updated, current.Status)
	return updated, nil
}

func (s *OrderService) ownedOrder(ctx context.Context, userID, orderID int64, forbiddenMsg string) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to get order", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, internal("Error retrieving order", err)
	}
	if order == nil {
		return nil, notFound("Order not found")
	}
	if order.UserID != userID {
		s.logger.Warn("Order ownership check failed",
			zap.Int64("order_id", orderID),
			zap.Int64("user_id", userID))
		return nil, forbidden(forbiddenMsg)
	}
	return order, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	items := make([]models.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemData{
			FoodID:     item.ID,
			Quantity:   item.Quantity,
			PriceMinor: item.PriceMinor,
		})
	}

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: s.now(),
		},
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalMinor:    order.TotalMinor,
		PaymentMethod: order.PaymentMethod,
		Items:         items,
	}

	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) {
	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: s.now(),
		},
		OrderID: order.ID,
		UserID:  order.UserID,
		From:    from,
		To:      order.Status,
	}

	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

// snapshotItems copies cart lines into order items so later catalog
// changes never reach a placed order.
func snapshotItems(cart []CartItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart))
	for _, c := range cart {
		items = append(items, models.OrderItem{
			ID:         c.ID,
			Name:       c.Name,
			PriceMinor: c.Price,
			Quantity:   c.Quantity,
		})
	}
	return items
}

// calculateTotal sums price times quantity over the items
func calculateTotal(items []models.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceMinor * int64(item.Quantity)
	}
	return total
}
