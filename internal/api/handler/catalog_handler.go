package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// CatalogHandler serves the public catalog and its admin editor.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type serviceRequest struct {
	ServiceName      string  `json:"serviceName"      validate:"required,max=200"`
	ShortDescription string  `json:"shortDescription" validate:"max=500"`
	LongDescription  string  `json:"longDescription"  validate:"max=10000"`
	Price            float64 `json:"price"            validate:"gte=0"`
	Image            string  `json:"image"`
	Status           string  `json:"status"           validate:"omitempty,oneof=active inactive"`
	Category         string  `json:"category"         validate:"max=100"`
}

type serviceListResponse struct {
	Success  bool              `json:"success"`
	Services []*domain.Service `json:"services"`
}

type serviceResponse struct {
	Success bool            `json:"success"`
	Service *domain.Service `json:"service"`
}

func (r serviceRequest) toInput() ports.ServiceInput {
	return ports.ServiceInput{
		ServiceName:      r.ServiceName,
		ShortDescription: r.ShortDescription,
		LongDescription:  r.LongDescription,
		Price:            r.Price,
		Image:            r.Image,
		Status:           r.Status,
		Category:         r.Category,
	}
}

// List handles GET /api/services.
//
// @Summary      List active services
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {object}  serviceListResponse
// @Router       /api/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.service.ListActive(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceListResponse{Success: true, Services: nonNil(services)})
}

// Get handles GET /api/services/:id. Inactive services are not found.
//
// @Summary      Get an active service
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  serviceResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	svc, err := h.service.GetActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Success: true, Service: svc})
}

// ListAll handles GET /api/admin/services.
//
// @Summary      List all services
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  serviceListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/services [get]
func (h *CatalogHandler) ListAll(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	services, err := h.service.ListAll(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceListResponse{Success: true, Services: nonNil(services)})
}

// Create handles POST /api/admin/services.
//
// @Summary      Create a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      serviceRequest  true  "Service; image may be a data URI"
// @Success      201   {object}  serviceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.service.Create(c.Request().Context(), identity, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serviceResponse{Success: true, Service: svc})
}

// Update handles PUT /api/admin/services/:id.
//
// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string          true  "Service id"
// @Param        body  body      serviceRequest  true  "Service; omit image to keep the current one"
// @Success      200   {object}  serviceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/services/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serviceResponse{Success: true, Service: svc})
}

// Delete handles DELETE /api/admin/services/:id.
//
// @Summary      Delete a service
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/services/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
