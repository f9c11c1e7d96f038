package usecase

import (
	"context"
	"fmt"
	"strings"

	"stempede-store/internal/data/entity"
	"stempede-store/internal/data/repository"
	"stempede-store/internal/dto/response"

	"go.uber.org/zap"
)

const (
	msgOrdersRetrieved      = "Orders retrieved successfully."
	msgOrdersFailed         = "Failed to retrieve orders."
	msgOrderRetrieved       = "Order retrieved successfully."
	msgOrderFailed          = "Failed to retrieve the order."
	msgOrderNotFound        = "Order not found"
	msgAccessDenied         = "Access denied."
	msgStatusesRetrieved    = "Available delivery statuses retrieved successfully."
	msgInvalidTransition    = "Invalid status transition"
	msgDeliveryUpdated      = "Delivery status updated successfully."
	msgDeliveryUpdateFailed = "Failed to update delivery status."
)

// orderIncludes is the related data every order view needs.
var orderIncludes = []string{"User", "OrderDetails.Product"}

type OrderService interface {
	ListAll(ctx context.Context) response.Result[[]response.OrderResponse]
	ListPaged(ctx context.Context, page, pageSize int) response.Result[*response.PaginatedResponse[response.OrderResponse]]
	GetByID(ctx context.Context, orderID int, username, role string) response.Result[*response.OrderResponse]
	AvailableDeliveryStatuses(ctx context.Context, orderID int) response.Result[[]string]
	UpdateDeliveryStatus(ctx context.Context, orderID int, status string) response.Result[string]
}

type orderService struct {
	uow *repository.UnitOfWorkFactory
	rec Recorder
	log *zap.Logger
}

func NewOrderService(uow *repository.UnitOfWorkFactory, rec Recorder, log *zap.Logger) OrderService {
	return &orderService{
		uow: uow,
		rec: rec,
		log: log.With(zap.String("service", "order")),
	}
}

func (s *orderService) ListAll(ctx context.Context) response.Result[[]response.OrderResponse] {
	return observe(s.rec, "order", "list_all", s.listAll(ctx))
}

func (s *orderService) listAll(ctx context.Context) response.Result[[]response.OrderResponse] {
	uow := s.uow.New()
	defer uow.Close()

	orders, err := uow.Order.GetAll(ctx, orderIncludes...).OrderBy("id").List()
	if err != nil {
		return storageFailure[[]response.OrderResponse](s.log, err, msgOrdersFailed, msgOrdersFailed)
	}

	return response.Ok(response.OrdersToResponse(orders), msgOrdersRetrieved)
}

func (s *orderService) ListPaged(ctx context.Context, page, pageSize int) response.Result[*response.PaginatedResponse[response.OrderResponse]] {
	return observe(s.rec, "order", "list_paged", s.listPaged(ctx, page, pageSize))
}

func (s *orderService) listPaged(ctx context.Context, page, pageSize int) response.Result[*response.PaginatedResponse[response.OrderResponse]] {
	s.log.Debug("Listing orders", zap.Int("page", page), zap.Int("page_size", pageSize))

	uow := s.uow.New()
	defer uow.Close()

	query := uow.Order.GetAll(ctx, orderIncludes...).OrderBy("id")
	orders, err := repository.Paginate(query, page, pageSize)
	if err != nil {
		return storageFailure[*response.PaginatedResponse[response.OrderResponse]](s.log, err, msgOrdersFailed, msgOrdersFailed)
	}

	return response.Ok(response.PageToResponse(orders, response.OrderToResponse), msgOrdersRetrieved)
}

func (s *orderService) GetByID(ctx context.Context, orderID int, username, role string) response.Result[*response.OrderResponse] {
	return observe(s.rec, "order", "get", s.getByID(ctx, orderID, username, role))
}

func (s *orderService) getByID(ctx context.Context, orderID int, username, role string) response.Result[*response.OrderResponse] {
	log := s.log.With(zap.Int("order_id", orderID))

	uow := s.uow.New()
	defer uow.Close()

	order, err := uow.Order.GetByID(ctx, orderID, orderIncludes...)
	if err != nil {
		return storageFailure[*response.OrderResponse](log, err, msgOrderFailed, msgOrderFailed)
	}
	if order == nil {
		log.Warn("Order not found")
		return response.Fail[*response.OrderResponse](response.KindNotFound, msgOrderNotFound,
			"The specified order does not exist.")
	}

	// Customers only see their own orders.
	if actingRole, _ := entity.ParseRoleName(role); actingRole == entity.RoleCustomer {
		if order.User == nil || !strings.EqualFold(order.User.Username, username) {
			log.Warn("Order access denied", zap.String("username", username))
			return response.Fail[*response.OrderResponse](response.KindForbidden, msgAccessDenied,
				"You do not have permission to access this order.")
		}
	}

	view := response.OrderToResponse(order)
	return response.Ok(&view, msgOrderRetrieved)
}

func (s *orderService) AvailableDeliveryStatuses(ctx context.Context, orderID int) response.Result[[]string] {
	return observe(s.rec, "order", "available_statuses", s.availableDeliveryStatuses(ctx, orderID))
}

func (s *orderService) availableDeliveryStatuses(ctx context.Context, orderID int) response.Result[[]string] {
	log := s.log.With(zap.Int("order_id", orderID))

	uow := s.uow.New()
	defer uow.Close()

	order, err := uow.Order.GetByID(ctx, orderID)
	if err != nil {
		return storageFailure[[]string](log, err, msgOrderFailed, msgOrderFailed)
	}
	if order == nil {
		return response.Fail[[]string](response.KindNotFound, msgOrderNotFound,
			"The specified order does not exist.")
	}

	return response.Ok(order.DeliveryStatus.Available(), msgStatusesRetrieved)
}

func (s *orderService) UpdateDeliveryStatus(ctx context.Context, orderID int, status string) response.Result[string] {
	return observe(s.rec, "order", "update_delivery_status", s.updateDeliveryStatus(ctx, orderID, status))
}

func (s *orderService) updateDeliveryStatus(ctx context.Context, orderID int, status string) response.Result[string] {
	log := s.log.With(zap.Int("order_id", orderID), zap.String("requested", status))

	uow := s.uow.New()
	defer uow.Close()

	order, err := uow.Order.GetByID(ctx, orderID)
	if err != nil {
		return storageFailure[string](log, err, msgDeliveryUpdateFailed, msgDeliveryUpdateFailed)
	}
	if order == nil {
		log.Warn("Order not found")
		return response.Fail[string](response.KindNotFound, msgOrderNotFound,
			"The specified order does not exist.")
	}

	target, ok := entity.ParseDeliveryStatus(status)
	if !ok || !order.DeliveryStatus.CanTransitionTo(target) {
		log.Info("Delivery status transition rejected", zap.String("current", string(order.DeliveryStatus)))
		return response.Fail[string](response.KindConflict, msgInvalidTransition,
			fmt.Sprintf("Cannot change delivery status from %q to %q.", order.DeliveryStatus, status))
	}

	order.DeliveryStatus = target
	uow.Order.Update(order)
	if _, err := uow.Complete(ctx); err != nil {
		return storageFailure[string](log, err, msgDeliveryUpdateFailed, msgDeliveryUpdateFailed)
	}

	log.Info("Delivery status updated", zap.String("status", string(target)))
	return response.Ok(msgDeliveryUpdated, msgDeliveryUpdated)
}
