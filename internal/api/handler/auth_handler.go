package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshlink/marketplace-api/internal/api/metrics"
	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// AuthHandler handles registration, login, and the supplier shop toggle.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	UserType     string `json:"userType"      validate:"required,oneof=vendor supplier"`
	FullName     string `json:"fullName"      validate:"required"`
	Email        string `json:"email"         validate:"required,email"`
	Phone        string `json:"phone"         validate:"required"`
	Password     string `json:"password"      validate:"required,min=6"`
	GovernmentID string `json:"governmentId"`
	TaxID        string `json:"taxId"`
	ShopName     string `json:"shopName"`
	ShopLocation string `json:"shopLocation"`
}

type loginRequest struct {
	UserType   string `json:"userType"   validate:"required,oneof=vendor supplier"`
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type adminLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type shopStatusRequest struct {
	Phone string `json:"phone" validate:"required"`
	Open  *bool  `json:"open"  validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an unverified vendor or supplier account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Role:         req.UserType,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		GovernmentID: req.GovernmentID,
		TaxID:        req.TaxID,
		ShopName:     req.ShopName,
		ShopLocation: req.ShopLocation,
	})
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(account.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Account: account})
}

// Login authenticates by email or phone and returns a token. Accounts still
// pending verification are refused with 403.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Role:       req.UserType,
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, Account: account})
}

// LoginAdmin authenticates the configured administrator.
//
// @Summary      Administrator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/admin/login [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.LoginAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token})
}

// SetShopStatus toggles a supplier's open/closed flag.
//
// @Summary      Toggle supplier shop status
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        body  body      shopStatusRequest  true  "Shop status"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /suppliers/shop-status [put]
func (h *AuthHandler) SetShopStatus(c echo.Context) error {
	var req shopStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.SetShopStatus(c.Request().Context(), req.Phone, *req.Open); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "shop status updated"})
}
