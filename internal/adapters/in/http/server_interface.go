package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListDeliveriesParams are the optional public board filters.
type ListDeliveriesParams struct {
	Status         *string `form:"status" json:"status,omitempty"`
	PickupLocation *string `form:"pickupLocation" json:"pickupLocation,omitempty"`
	DropLocation   *string `form:"dropLocation" json:"dropLocation,omitempty"`
	PackageSize    *string `form:"packageSize" json:"packageSize,omitempty"`
}

// ListMyDeliveriesParams selects the caller's side of the deliveries.
type ListMyDeliveriesParams struct {
	As string `form:"as" json:"as"`
}

// ServerInterface is the set of operations described in openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /api/v1/auth/register)
	RegisterUser(ctx echo.Context) error
	// (POST /api/v1/auth/login)
	Login(ctx echo.Context) error
	// (GET /api/v1/deliveries)
	ListDeliveries(ctx echo.Context, params ListDeliveriesParams) error
	// (POST /api/v1/deliveries)
	CreateDelivery(ctx echo.Context) error
	// (GET /api/v1/deliveries/{id})
	GetDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/v1/deliveries/{id}/status)
	TransitionDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/v1/deliveries/{id}/reviews)
	SubmitReview(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/v1/me/deliveries)
	ListMyDeliveries(ctx echo.Context, params ListMyDeliveriesParams) error
	// (GET /api/v1/users/{id})
	GetUserProfile(ctx echo.Context, id int64) error
	// (GET /api/v1/users/{id}/reviews)
	ListUserReviews(ctx echo.Context, id int64) error
	// (GET /api/v1/stats/deliveries)
	GetDeliveryStats(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) ListDeliveries(ctx echo.Context) error {
	var params ListDeliveriesParams

	for name, dest := range map[string]**string{
		"status":         &params.Status,
		"pickupLocation": &params.PickupLocation,
		"dropLocation":   &params.DropLocation,
		"packageSize":    &params.PackageSize,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}

	return w.Handler.ListDeliveries(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	return w.Handler.CreateDelivery(ctx)
}

func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) TransitionDeliveryStatus(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionDeliveryStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) SubmitReview(ctx echo.Context) error {
	id, err := bindUUIDPath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SubmitReview(ctx, id)
}

func (w *ServerInterfaceWrapper) ListMyDeliveries(ctx echo.Context) error {
	var params ListMyDeliveriesParams

	if err := runtime.BindQueryParameter("form", true, true, "as", ctx.QueryParams(), &params.As); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter as: %s", err))
	}

	return w.Handler.ListMyDeliveries(ctx, params)
}

func (w *ServerInterfaceWrapper) GetUserProfile(ctx echo.Context) error {
	id, err := bindInt64Path(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetUserProfile(ctx, id)
}

func (w *ServerInterfaceWrapper) ListUserReviews(ctx echo.Context) error {
	id, err := bindInt64Path(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListUserReviews(ctx, id)
}

func (w *ServerInterfaceWrapper) GetDeliveryStats(ctx echo.Context) error {
	return w.Handler.GetDeliveryStats(ctx)
}

func bindUUIDPath(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindInt64Path(ctx echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation. authenticated guards the routes
// that require a bearer token.
func RegisterHandlers(router EchoRouter, si ServerInterface, authenticated echo.MiddlewareFunc) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/health", w.GetHealth)
	router.POST("/api/v1/auth/register", w.RegisterUser)
	router.POST("/api/v1/auth/login", w.Login)
	router.GET("/api/v1/deliveries", w.ListDeliveries)
	router.POST("/api/v1/deliveries", w.CreateDelivery, authenticated)
	router.GET("/api/v1/deliveries/:id", w.GetDelivery)
	router.PUT("/api/v1/deliveries/:id/status", w.TransitionDeliveryStatus, authenticated)
	router.POST("/api/v1/deliveries/:id/reviews", w.SubmitReview, authenticated)
	router.GET("/api/v1/me/deliveries", w.ListMyDeliveries, authenticated)
	router.GET("/api/v1/users/:id", w.GetUserProfile)
	router.GET("/api/v1/users/:id/reviews", w.ListUserReviews)
	router.GET("/api/v1/stats/deliveries", w.GetDeliveryStats)
}
