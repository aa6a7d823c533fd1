package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshlink/marketplace-api/internal/api/metrics"
	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// VerificationHandler exposes the administrative account verification flow.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

type pendingAccountsResponse struct {
	Vendors   []*domain.Account `json:"vendors"`
	Suppliers []*domain.Account `json:"suppliers"`
}

type verifyRequest struct {
	UserType string `json:"userType" validate:"required"`
	ID       string `json:"id"       validate:"required"`
}

// ListPending handles GET /unverified-users.
//
// @Summary      List accounts pending verification
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingAccountsResponse
// @Failure      500  {object}  errorResponse
// @Router       /unverified-users [get]
func (h *VerificationHandler) ListPending(c echo.Context) error {
	pending, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendingAccountsResponse{
		Vendors:   pending.Vendors,
		Suppliers: pending.Suppliers,
	})
}

// Approve handles POST /verify-user.
//
// @Summary      Approve a pending account
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyRequest  true  "Account to approve"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /verify-user [post]
func (h *VerificationHandler) Approve(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Approve(c.Request().Context(), req.UserType, req.ID); err != nil {
		return err
	}

	metrics.AccountsVerifiedTotal.WithLabelValues(req.UserType).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "account verified"})
}

// Reject handles DELETE /reject-user/:type/:id.
//
// @Summary      Reject a pending account (permanent delete)
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Account role (vendor or supplier)"
// @Param        id    path      string  true  "Account id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /reject-user/{type}/{id} [delete]
func (h *VerificationHandler) Reject(c echo.Context) error {
	role := c.Param("type")
	id := c.Param("id")

	if err := h.service.Reject(c.Request().Context(), role, id); err != nil {
		return err
	}

	metrics.AccountsRejectedTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "account rejected"})
}
