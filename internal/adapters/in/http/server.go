// Package http exposes the order core over a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"errands/internal/core/application/usecases/commands"
	"errands/internal/core/application/usecases/queries"
	"errands/internal/core/domain/model/kernel"
	"errands/internal/core/domain/model/order"
	"errands/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	// CommandHandler runs a state change that produces no value.
	CommandHandler[C any] interface {
		Handle(ctx context.Context, cmd C) error
	}

	// ResultHandler runs a command or query that produces R.
	ResultHandler[C, R any] interface {
		Handle(ctx context.Context, cmd C) (R, error)
	}
)

// Handlers lists every use case the API reaches.
type Handlers struct {
	CreateOrder   ResultHandler[commands.CreateOrderCommand, kernel.UUID]
	AcceptOrder   CommandHandler[commands.AcceptOrderCommand]
	DeliverOrder  CommandHandler[commands.DeliverOrderCommand]
	ConfirmOrder  CommandHandler[commands.ConfirmOrderCommand]
	CancelOrder   CommandHandler[commands.CancelOrderCommand]
	SubmitDispute CommandHandler[commands.SubmitDisputeCommand]
	ReviewDispute CommandHandler[commands.ReviewDisputeCommand]
	Recharge      ResultHandler[commands.RechargeBalanceCommand, string]
	MarkRead      CommandHandler[commands.MarkNotificationReadCommand]
	MarkAllRead   ResultHandler[commands.MarkAllNotificationsReadCommand, int64]

	GetOrder            ResultHandler[queries.GetOrderQuery, queries.OrderView]
	ListOrders          ResultHandler[queries.ListOrdersQuery, []queries.OrderView]
	GetDispute          ResultHandler[queries.GetDisputeQuery, queries.DisputeView]
	ListPendingDisputes ResultHandler[queries.ListPendingDisputesQuery, []queries.DisputeView]
	ListNotifications   ResultHandler[queries.ListNotificationsQuery, queries.NotificationsView]
	ListBalanceRecords  ResultHandler[queries.ListBalanceRecordsQuery, queries.BalanceHistoryView]
}

// Server maps HTTP requests onto command and query handlers.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Setup wires routes, authentication, request validation, swagger and error rendering onto e.
func Setup(ctx context.Context, e *echo.Echo, s *Server, jwtSecret []byte, logger *slog.Logger) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return err
	}

	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", authenticate(jwtSecret), validate)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/pending", s.listOrders(queries.ScopePending))
	api.GET("/orders/published", s.listOrders(queries.ScopePublished))
	api.GET("/orders/accepted", s.listOrders(queries.ScopeAccepted))
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/deliver", s.DeliverOrder)
	api.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/dispute", s.SubmitDispute)
	api.GET("/orders/:orderId/dispute", s.GetDispute)

	api.GET("/admin/disputes/pending", s.ListPendingDisputes)
	api.PUT("/admin/disputes/:orderId/review", s.ReviewDispute)
	api.POST("/admin/users/:userId/recharge", s.RechargeBalance)

	api.GET("/balance/records", s.ListBalanceRecords)

	api.GET("/notifications", s.ListNotifications)
	api.PUT("/notifications/read-all", s.MarkAllNotificationsRead)
	api.PUT("/notifications/:notificationId/read", s.MarkNotificationRead)

	return nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	publisherID, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	reward, err := kernel.MoneyFromString(req.Reward)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reward", err)
	}

	cmd, err := commands.NewCreateOrderCommand(publisherID, order.Details{
		ExpressCompany: req.ExpressCompany,
		PickupCode:     req.PickupCode,
		Description:    req.Description,
		PickupAddress:  req.PickupAddress,
	}, reward, req.Deadline)
	if err != nil {
		return err
	}

	orderID, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedOrder{ID: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	viewerID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(orderID, viewerID)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(view))
}

func (s *Server) listOrders(scope queries.OrderScope) echo.HandlerFunc {
	return func(c echo.Context) error {
		viewerID, err := caller(c)
		if err != nil {
			return err
		}
		page, err := bindPage(c)
		if err != nil {
			return err
		}
		query, err := queries.NewListOrdersQuery(scope, viewerID, page)
		if err != nil {
			return err
		}

		views, err := s.h.ListOrders.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		out := make([]Order, 0, len(views))
		for _, v := range views {
			out = append(out, toOrder(v))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	receiverID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptOrderCommand(orderID, receiverID)
	if err != nil {
		return err
	}
	return noContent(c, s.h.AcceptOrder.Handle(c.Request().Context(), cmd))
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	receiverID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeliverOrderCommand(orderID, receiverID)
	if err != nil {
		return err
	}
	return noContent(c, s.h.DeliverOrder.Handle(c.Request().Context(), cmd))
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	publisherID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmOrderCommand(orderID, publisherID)
	if err != nil {
		return err
	}
	return noContent(c, s.h.ConfirmOrder.Handle(c.Request().Context(), cmd))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	publisherID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	var req CancelOrderRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return err
		}
	}
	cmd, err := commands.NewCancelOrderCommand(orderID, publisherID, req.Reason)
	if err != nil {
		return err
	}
	return noContent(c, s.h.CancelOrder.Handle(c.Request().Context(), cmd))
}

// SubmitDispute handles POST /api/v1/orders/{orderId}/dispute.
func (s *Server) SubmitDispute(c echo.Context) error {
	userID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	var req SubmitDisputeRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewSubmitDisputeCommand(orderID, userID, req.Description, req.Image)
	if err != nil {
		return err
	}
	return noContent(c, s.h.SubmitDispute.Handle(c.Request().Context(), cmd))
}

// GetDispute handles GET /api/v1/orders/{orderId}/dispute.
func (s *Server) GetDispute(c echo.Context) error {
	viewerID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetDisputeQuery(orderID, viewerID)
	if err != nil {
		return err
	}
	view, err := s.h.GetDispute.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDispute(view))
}

// ListPendingDisputes handles GET /api/v1/admin/disputes/pending.
func (s *Server) ListPendingDisputes(c echo.Context) error {
	adminID, err := caller(c)
	if err != nil {
		return err
	}
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListPendingDisputesQuery(adminID, page)
	if err != nil {
		return err
	}

	views, err := s.h.ListPendingDisputes.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	out := make([]Dispute, 0, len(views))
	for _, v := range views {
		out = append(out, toDispute(v))
	}
	return c.JSON(http.StatusOK, out)
}

// ReviewDispute handles PUT /api/v1/admin/disputes/{orderId}/review.
func (s *Server) ReviewDispute(c echo.Context) error {
	reviewerID, orderID, err := callerAndPathID(c, "orderId")
	if err != nil {
		return err
	}
	var req ReviewDisputeRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewReviewDisputeCommand(orderID, reviewerID, req.Decision, req.Remark, req.FundTo)
	if err != nil {
		return err
	}
	return noContent(c, s.h.ReviewDispute.Handle(c.Request().Context(), cmd))
}

// RechargeBalance handles POST /api/v1/admin/users/{userId}/recharge.
func (s *Server) RechargeBalance(c echo.Context) error {
	adminID, userID, err := callerAndPathID(c, "userId")
	if err != nil {
		return err
	}
	var req RechargeRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	cmd, err := commands.NewRechargeBalanceCommand(adminID, userID, amount, req.Remark)
	if err != nil {
		return err
	}

	balance, err := s.h.Recharge.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Balance{Balance: balance})
}

// ListBalanceRecords handles GET /api/v1/balance/records.
func (s *Server) ListBalanceRecords(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListBalanceRecordsQuery(userID, page)
	if err != nil {
		return err
	}
	history, err := s.h.ListBalanceRecords.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBalanceHistory(history))
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	var unread *bool
	if err = runtime.BindQueryParameter("form", true, false, "unread", c.QueryParams(), &unread); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("unread", err)
	}
	query, err := queries.NewListNotificationsQuery(userID, unread != nil && *unread)
	if err != nil {
		return err
	}
	view, err := s.h.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotifications(view))
}

// MarkNotificationRead handles PUT /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	userID, notificationID, err := callerAndPathID(c, "notificationId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, userID)
	if err != nil {
		return err
	}
	return noContent(c, s.h.MarkRead.Handle(c.Request().Context(), cmd))
}

// MarkAllNotificationsRead handles PUT /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkAllNotificationsReadCommand(userID)
	if err != nil {
		return err
	}
	updated, err := s.h.MarkAllRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MarkAllReadResult{Updated: updated})
}

func callerAndPathID(c echo.Context, param string) (kernel.UUID, kernel.UUID, error) {
	callerID, err := caller(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	var id openapi_types.UUID
	err = runtime.BindStyledParameterWithOptions("simple", param, c.Param(param), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return callerID, kernel.UUIDFrom(id), nil
}

func bindPage(c echo.Context) (queries.Page, error) {
	// Optional query params bind into pointers; nil means absent.
	var number, size *int
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &number); err != nil {
		return queries.Page{}, errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", c.QueryParams(), &size); err != nil {
		return queries.Page{}, errs.NewValueIsInvalidErrorWithCause("size", err)
	}
	return queries.NewPage(derefOr(number, 1), derefOr(size, queries.DefaultPageSize))
}

func derefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func noContent(c echo.Context, err error) error {
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
