package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshlink/marketplace-api/internal/core/ports"
)

// CatalogHandler handles menu listings and the vendor cart log.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type addMenuItemRequest struct {
	SupplierPhone string  `json:"supplierPhone" validate:"required"`
	ShopName      string  `json:"shopName"`
	TaxID         string  `json:"taxId"         validate:"required"`
	ItemName      string  `json:"itemName"      validate:"required"`
	Cost          float64 `json:"cost"          validate:"required,gt=0"`
	Stock         int     `json:"stock"         validate:"min=0"`
}

type addCartEntryRequest struct {
	ItemID         string `json:"itemId"      validate:"required"`
	Quantity       int    `json:"quantity"    validate:"required,gt=0"`
	VendorPhone    string `json:"vendorPhone" validate:"required"`
	VendorName     string `json:"vendorName"`
	VendorLocation string `json:"vendorLocation"`
}

// AddMenuItem handles POST /menu.
//
// @Summary      Create a menu item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      addMenuItemRequest  true  "Menu item"
// @Success      201   {object}  domain.MenuItem
// @Failure      400   {object}  errorResponse
// @Router       /menu [post]
func (h *CatalogHandler) AddMenuItem(c echo.Context) error {
	var req addMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.AddMenuItem(c.Request().Context(), ports.AddMenuItemInput{
		SupplierPhone: req.SupplierPhone,
		ShopName:      req.ShopName,
		TaxID:         req.TaxID,
		ItemName:      req.ItemName,
		Cost:          req.Cost,
		Stock:         req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// MenuBySupplier handles GET /menu/supplier/:phone.
//
// @Summary      List a supplier's menu by phone
// @Tags         catalog
// @Produce      json
// @Param        phone  path      string  true  "Supplier phone"
// @Success      200    {array}   domain.MenuItem
// @Router       /menu/supplier/{phone} [get]
func (h *CatalogHandler) MenuBySupplier(c echo.Context) error {
	items, err := h.service.MenuBySupplier(c.Request().Context(), c.Param("phone"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// MenuByTaxID handles GET /menu/tax/:taxId.
//
// @Summary      List menu items by tax ID
// @Tags         catalog
// @Produce      json
// @Param        taxId  path      string  true  "Supplier tax ID"
// @Success      200    {array}   domain.MenuItem
// @Router       /menu/tax/{taxId} [get]
func (h *CatalogHandler) MenuByTaxID(c echo.Context) error {
	items, err := h.service.MenuByTaxID(c.Request().Context(), c.Param("taxId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AddCartEntry handles POST /cart. The cart is an append-only log; entries
// are never updated or removed and stock is not decremented.
//
// @Summary      Append a cart entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      addCartEntryRequest  true  "Cart entry"
// @Success      201   {object}  domain.CartEntry
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [post]
func (h *CatalogHandler) AddCartEntry(c echo.Context) error {
	var req addCartEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.AddCartEntry(c.Request().Context(), ports.AddCartEntryInput{
		ItemID:         req.ItemID,
		Quantity:       req.Quantity,
		VendorPhone:    req.VendorPhone,
		VendorName:     req.VendorName,
		VendorLocation: req.VendorLocation,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// CartLog handles GET /cart/:vendorPhone.
//
// @Summary      List a vendor's cart entries
// @Tags         catalog
// @Produce      json
// @Param        vendorPhone  path      string  true  "Vendor phone"
// @Success      200          {array}   domain.CartEntry
// @Router       /cart/{vendorPhone} [get]
func (h *CatalogHandler) CartLog(c echo.Context) error {
	entries, err := h.service.CartLog(c.Request().Context(), c.Param("vendorPhone"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
