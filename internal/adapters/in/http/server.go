// Package http exposes the application use cases as a JSON API on echo.
package http

import (
	"net/http"

	"carrierlink/internal/core/application/usecases/commands"
	"carrierlink/internal/core/application/usecases/queries"
	"carrierlink/internal/core/domain/model/delivery"
	"carrierlink/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	RegisterUser     commands.RegisterUserCommandHandler
	CreateDelivery   commands.CreateDeliveryCommandHandler
	TransitionStatus commands.TransitionDeliveryStatusCommandHandler
	SubmitReview     commands.SubmitReviewCommandHandler

	Authenticate        queries.AuthenticateUserQueryHandler
	ListDeliveries      queries.ListDeliveriesQueryHandler
	GetDelivery         queries.GetDeliveryQueryHandler
	ListPartyDeliveries queries.ListPartyDeliveriesQueryHandler
	GetUserProfile      queries.GetUserProfileQueryHandler
	ListReviewsForUser  queries.ListReviewsForUserQueryHandler
	GetDeliveryStats    queries.GetDeliveryStatsQueryHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	tokens   *TokenIssuer
	newID    func() kernel.UUID
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, tokens *TokenIssuer) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		newID:    kernel.NewUUID,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterUser handles POST /api/v1/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(req.Handle, req.Password, req.Name, req.Role)
	if err != nil {
		return err
	}

	profile, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toProfile(profile))
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	query, err := queries.NewAuthenticateUserQuery(req.Handle, req.Password)
	if err != nil {
		return err
	}

	profile, err := s.handlers.Authenticate.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	token, expires, err := s.tokens.Issue(profile)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      toProfile(profile),
	})
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(ctx echo.Context, params ListDeliveriesParams) error {
	query, err := queries.NewListDeliveriesQuery(
		deref(params.Status),
		deref(params.PickupLocation),
		deref(params.DropLocation),
		deref(params.PackageSize),
	)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]DeliveryResponse, len(views))
	for i, v := range views {
		resp[i] = toDeliveryView(v)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var req CreateDeliveryRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(s.newID(), actor.ID(), req.toInput())
	if err != nil {
		return err
	}

	d, err := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toDelivery(d))
}

// GetDelivery handles GET /api/v1/deliveries/{id}.
func (s *Server) GetDelivery(ctx echo.Context, id openapi_types.UUID) error {
	deliveryID, err := toKernelUUID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDeliveryView(view))
}

// TransitionDeliveryStatus handles PUT /api/v1/deliveries/{id}/status.
func (s *Server) TransitionDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	deliveryID, err := toKernelUUID(id)
	if err != nil {
		return err
	}

	var req TransitionStatusRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewTransitionDeliveryStatusCommand(deliveryID, actor, req.Status)
	if err != nil {
		return err
	}

	d, err := s.handlers.TransitionStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDelivery(d))
}

// SubmitReview handles POST /api/v1/deliveries/{id}/reviews.
func (s *Server) SubmitReview(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	deliveryID, err := toKernelUUID(id)
	if err != nil {
		return err
	}

	var req SubmitReviewRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	revieweeID, err := kernel.NewUserID(*req.RevieweeID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitReviewCommand(s.newID(), deliveryID, actor.ID(), revieweeID, *req.Rating, req.Comment)
	if err != nil {
		return err
	}

	result, err := s.handlers.SubmitReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, SubmitReviewResponse{
		Review:   toReview(result.Review),
		Reviewee: toProfile(result.Reviewee),
	})
}

// ListMyDeliveries handles GET /api/v1/me/deliveries.
func (s *Server) ListMyDeliveries(ctx echo.Context, params ListMyDeliveriesParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListPartyDeliveriesQuery(actor.ID(), params.As)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListPartyDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]PartyDeliveryResponse, len(views))
	for i, v := range views {
		resp[i] = PartyDeliveryResponse{
			DeliveryResponse: toDelivery(v.Delivery),
			Counterpart:      toProfilePtr(v.Counterpart),
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetUserProfile handles GET /api/v1/users/{id}.
func (s *Server) GetUserProfile(ctx echo.Context, id int64) error {
	userID, err := kernel.NewUserID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserProfileQuery(userID)
	if err != nil {
		return err
	}

	profile, err := s.handlers.GetUserProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toProfile(profile))
}

// ListUserReviews handles GET /api/v1/users/{id}/reviews.
func (s *Server) ListUserReviews(ctx echo.Context, id int64) error {
	userID, err := kernel.NewUserID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewListReviewsForUserQuery(userID)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListReviewsForUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]ReviewResponse, len(views))
	for i, v := range views {
		resp[i] = toReview(v.Review)
		resp[i].Reviewer = &ReviewerResponse{Handle: v.ReviewerHandle, Name: v.ReviewerName}
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetDeliveryStats handles GET /api/v1/stats/deliveries.
func (s *Server) GetDeliveryStats(ctx echo.Context) error {
	stats, err := s.handlers.GetDeliveryStats.Handle(ctx.Request().Context(), queries.NewGetDeliveryStatsQuery())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int, len(stats.ByStatus))
	for _, status := range delivery.Statuses() {
		byStatus[status.String()] = stats.ByStatus[status]
	}
	return ctx.JSON(http.StatusOK, DeliveryStatsResponse{ByStatus: byStatus, Total: stats.Total})
}

func bindAndValidate(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return err
	}
	return ctx.Validate(dst)
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
