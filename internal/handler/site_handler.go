package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"consite/internal/service"
)

// SiteHandler handles site management endpoints.
type SiteHandler struct {
	siteService service.SiteService
}

// NewSiteHandler creates a new site handler.
func NewSiteHandler(siteService service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// SiteRequest represents a site create/update request.
type SiteRequest struct {
	SiteID               *uint           `json:"site_id,omitempty"`
	Name                 string          `json:"name" validate:"required"`
	Location             string          `json:"location" validate:"required"`
	ContactNumber        string          `json:"contact_number" validate:"required,min=7,max=15"`
	AllocatedBudget      decimal.Decimal `json:"allocated_budget"`
	StartDate            *time.Time      `json:"start_date,omitempty"`
	SiteManagerID        *uint           `json:"site_manager_id" validate:"required"`
	ProcurementManagerID *uint           `json:"procurement_manager_id,omitempty"`
}

// AllocationRequest represents a user-to-site (de)allocation request.
type AllocationRequest struct {
	SiteID    uint   `json:"site_id" validate:"required"`
	UserEmail string `json:"user_email" validate:"required,email"`
}

func (r *SiteRequest) toInput() service.SiteInput {
	return service.SiteInput{
		SiteID:               r.SiteID,
		Name:                 r.Name,
		Location:             r.Location,
		ContactNumber:        r.ContactNumber,
		AllocatedBudget:      r.AllocatedBudget,
		StartDate:            r.StartDate,
		SiteManagerID:        r.SiteManagerID,
		ProcurementManagerID: r.ProcurementManagerID,
	}
}

// Add godoc
// @Summary Create a site
// @Tags sites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SiteRequest true "Site data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/site [post]
func (h *SiteHandler) Add(c echo.Context) error {
	var req SiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	site, err := h.siteService.Add(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "site data has been added successfully",
		"site":    site,
	})
}

// List godoc
// @Summary List sites
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} pagedResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site [get]
func (h *SiteHandler) List(c echo.Context) error {
	page, size := pagination(c)

	sites, total, err := h.siteService.GetAll(c.Request().Context(), page, size)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, pagedResponse{
		Content: sites,
		Page:    page,
		Size:    size,
		Total:   total,
	})
}

// Get godoc
// @Summary Get a site by id
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Site ID"
// @Success 200 {object} model.Site
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site/{id} [get]
func (h *SiteHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	site, err := h.siteService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, site)
}

// Update godoc
// @Summary Update a site
// @Tags sites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SiteRequest true "Site data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/site [put]
func (h *SiteHandler) Update(c echo.Context) error {
	var req SiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.siteService.Update(c.Request().Context(), req.toInput()); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "site data has been updated successfully",
	})
}

// Delete godoc
// @Summary Delete a site
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Site ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site/{id} [delete]
func (h *SiteHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}

	if err := h.siteService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "site has been deleted successfully",
	})
}

// Allocate godoc
// @Summary Allocate a user to a site
// @Tags sites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AllocationRequest true "Allocation data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site/allocate [put]
func (h *SiteHandler) Allocate(c echo.Context) error {
	var req AllocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.siteService.Allocate(c.Request().Context(), req.SiteID, req.UserEmail); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user has been allocated successfully",
	})
}

// Deallocate godoc
// @Summary Deallocate a user from a site
// @Tags sites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AllocationRequest true "Allocation data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site/deallocate [put]
func (h *SiteHandler) Deallocate(c echo.Context) error {
	var req AllocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.siteService.Deallocate(c.Request().Context(), req.SiteID, req.UserEmail); err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user has been deallocated successfully",
	})
}

// Users godoc
// @Summary List users allocated to a site
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Site ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} pagedResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/site/{id}/users [get]
func (h *SiteHandler) Users(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(err)
	}
	page, size := pagination(c)

	users, err := h.siteService.UsersOf(c.Request().Context(), id, page, size)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, pagedResponse{
		Content: users,
		Page:    page,
		Size:    size,
		Total:   int64(len(users)),
	})
}
