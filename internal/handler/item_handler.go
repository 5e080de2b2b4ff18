package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"consite/internal/service"
)

// ItemHandler handles the item catalog endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRequest represents an item create/update request.
type ItemRequest struct {
	ItemID            *uint           `json:"item_id,omitempty"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description,omitempty"`
	Manufacturer      string          `json:"manufacturer" validate:"required"`
	QuantityAvailable int             `json:"quantity_available" validate:"min=0"`
	Price             decimal.Decimal `json:"price"`
	VolumeType        string          `json:"volume_type" validate:"required"`
	Weight            *float64        `json:"weight,omitempty"`
	Color             string          `json:"color,omitempty"`
}

func (r *ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		ItemID:            r.ItemID,
		Name:              r.Name,
		Description:       r.Description,
		Manufacturer:      r.Manufacturer,
		QuantityAvailable: r.QuantityAvailable,
		Price:             r.Price,
		VolumeType:        r.VolumeType,
		Weight:            r.Weight,
		Color:             r.Color,
	}
}

// Add godoc
// @Summary List a new catalog item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /site-manager/item [post]
func (h *ItemHandler) Add(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.Add(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "the item has been listed successfully",
		"item":    item,
	})
}

// List godoc
// @Summary List all catalog items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.GetAll(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a catalog item by id
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	item, err := h.itemService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Update a catalog item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ItemRequest true "Item data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item [put]
func (h *ItemHandler) Update(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.itemService.Update(c.Request().Context(), req.toInput()); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "the item has been updated successfully",
	})
}

// Delete godoc
// @Summary Delete a catalog item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := h.itemService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "the item has been deleted successfully",
	})
}
