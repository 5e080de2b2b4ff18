package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"consite/internal/auth"
	"consite/internal/model"
	"consite/internal/service"
)

// OrderHandler handles the order workflow endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderLineRequest represents one requested item of a new order.
type OrderLineRequest struct {
	ItemID   uint `json:"item_id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

// AddOrderRequest represents an order creation request.
type AddOrderRequest struct {
	RequiredDate time.Time          `json:"required_date" validate:"required"`
	Items        []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// AddOrderItemRequest represents an add-item-to-order request.
type AddOrderItemRequest struct {
	OrderID  uint `json:"order_id" validate:"required"`
	ItemID   uint `json:"item_id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

// AssignSupplierRequest represents a supplier assignment request.
type AssignSupplierRequest struct {
	SupplierID uint `json:"supplier_id" validate:"required"`
}

func caller(c echo.Context) (*model.User, error) {
	return auth.CallerFrom(c.Request().Context())
}

// List godoc
// @Summary List the caller's site orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OrderDetailsView
// @Failure 404 {object} errors.ErrorResponse
// @Router /all-users/order/all/details [get]
func (h *OrderHandler) List(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	orders, err := h.orderService.GetAllOrderDetails(c.Request().Context(), u)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

// Add godoc
// @Summary Create an order for the caller's site
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddOrderRequest true "Order data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/order [post]
func (h *OrderHandler) Add(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	var req AddOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.OrderInput{RequiredDate: req.RequiredDate}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.OrderLine{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	order, err := h.orderService.AddOrder(c.Request().Context(), u, input)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "order has been added successfully",
		"order":   order,
	})
}

// AddItem godoc
// @Summary Add an item to an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddOrderItemRequest true "Order item data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/order/item [put]
func (h *OrderHandler) AddItem(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	var req AddOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.orderService.AddOrderItem(c.Request().Context(), u, req.OrderID, req.ItemID, req.Quantity); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "order item has been added successfully",
	})
}

// RemoveItem godoc
// @Summary Remove an item from an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order item ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/order/item/{id} [delete]
func (h *OrderHandler) RemoveItem(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := h.orderService.RemoveOrderItem(c.Request().Context(), u, id); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "order item has been removed successfully",
	})
}

// Suppliers godoc
// @Summary List active suppliers on the caller's site
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /procurement-manager/suppliers [get]
func (h *OrderHandler) Suppliers(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	suppliers, err := h.orderService.GetSuppliers(c.Request().Context(), u)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, suppliers)
}

// AssignSupplier godoc
// @Summary Assign a supplier to an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body AssignSupplierRequest true "Supplier assignment"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /procurement-manager/order/assign/{id} [put]
func (h *OrderHandler) AssignSupplier(c echo.Context) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	var req AssignSupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.orderService.AssignSupplier(c.Request().Context(), u, id, req.SupplierID); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "supplier has been assigned successfully",
	})
}

// orderTransition wraps the shared shape of the order-level status endpoints.
func (h *OrderHandler) orderTransition(c echo.Context, fn func(echo.Context, *model.User, uint) error) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := fn(c, u, id); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "order status has been updated successfully",
	})
}

// Approve godoc
// @Summary Approve a pending order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /procurement-manager/order/approval/{id} [put]
func (h *OrderHandler) Approve(c echo.Context) error {
	return h.orderTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsApproved(c.Request().Context(), u, id)
	})
}

// Cancel godoc
// @Summary Cancel an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /procurement-manager/order/cancel/{id} [put]
func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.orderTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsCancelled(c.Request().Context(), u, id)
	})
}

// Deliver godoc
// @Summary Mark an approved order delivered
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/order/delivered/{id} [put]
func (h *OrderHandler) Deliver(c echo.Context) error {
	return h.orderTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsDelivered(c.Request().Context(), u, id)
	})
}

// Complete godoc
// @Summary Complete an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/order/complete/{id} [put]
func (h *OrderHandler) Complete(c echo.Context) error {
	return h.orderTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsComplete(c.Request().Context(), u, id)
	})
}

// itemTransition wraps the shared shape of the single-item status endpoints.
func (h *OrderHandler) itemTransition(c echo.Context, fn func(echo.Context, *model.User, uint) error) error {
	u, err := caller(c)
	if err != nil {
		return respondError(err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := fn(c, u, id); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "order item status has been updated successfully",
	})
}

// CompleteItem godoc
// @Summary Complete a single order item
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item/complete/{id} [put]
func (h *OrderHandler) CompleteItem(c echo.Context) error {
	return h.itemTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsCompleteItem(c.Request().Context(), u, id)
	})
}

// ReturnItem godoc
// @Summary Mark a single order item returned
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /site-manager/item/return/{id} [put]
func (h *OrderHandler) ReturnItem(c echo.Context) error {
	return h.itemTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsReturnItem(c.Request().Context(), u, id)
	})
}

// DeliverItem godoc
// @Summary Mark a single order item delivered
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/item/delivered/{id} [put]
func (h *OrderHandler) DeliverItem(c echo.Context) error {
	return h.itemTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsDeliveredItem(c.Request().Context(), u, id)
	})
}

// CancelItem godoc
// @Summary Cancel a single order item
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/item/cancelled/{id} [put]
func (h *OrderHandler) CancelItem(c echo.Context) error {
	return h.itemTransition(c, func(c echo.Context, u *model.User, id uint) error {
		return h.orderService.SetAsCancelledItem(c.Request().Context(), u, id)
	})
}

// SiteInfo godoc
// @Summary Get the supplier view of a site
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Site ID"
// @Success 200 {object} model.Site
// @Failure 404 {object} errors.ErrorResponse
// @Router /supplier/site/info/{id} [get]
func (h *OrderHandler) SiteInfo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	site, err := h.orderService.GetSiteInfo(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, site)
}
