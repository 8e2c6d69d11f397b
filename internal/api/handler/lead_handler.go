package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/api/metrics"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// LeadHandler serves contact messages and sample report requests.
type LeadHandler struct {
	contacts ports.ContactService
	reports  ports.SampleReportService
}

func NewLeadHandler(contacts ports.ContactService, reports ports.SampleReportService) *LeadHandler {
	return &LeadHandler{contacts: contacts, reports: reports}
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"max=20"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read resolved"`
}

type sampleReportRequest struct {
	FirstName      string `json:"firstName"      validate:"required,max=100"`
	BirthDate      string `json:"birthDate"      validate:"required,datetime=2006-01-02"`
	Time           string `json:"time"           validate:"required,datetime=15:04"`
	WhatsappNumber string `json:"whatsappNumber" validate:"required,e164"`
	Email          string `json:"email"          validate:"required,email"`
	City           string `json:"city"           validate:"required,max=100"`
}

type contactListResponse struct {
	Success  bool              `json:"success"`
	Contacts []*domain.Contact `json:"contacts"`
}

type contactResponse struct {
	Success bool            `json:"success"`
	Contact *domain.Contact `json:"contact"`
}

// sampleReportListResponse has no success flag; the admin dashboard reads
// the bare list.
type sampleReportListResponse struct {
	Reports []*domain.SampleReport `json:"reports"`
}

// SubmitContact handles POST /api/contact.
//
// @Summary      Send a contact message
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Message"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/contact [post]
func (h *LeadHandler) SubmitContact(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.contacts.Submit(c.Request().Context(), ports.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Success: true, ID: id})
}

// ListContacts handles GET /api/admin/contacts.
//
// @Summary      List contact messages
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  contactListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/contacts [get]
func (h *LeadHandler) ListContacts(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	contacts, err := h.contacts.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactListResponse{Success: true, Contacts: nonNil(contacts)})
}

// UpdateContactStatus handles PATCH /api/admin/contacts/:id.
//
// @Summary      Update a contact message status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                true  "Contact id"
// @Param        body  body      contactStatusRequest  true  "new, read or resolved"
// @Success      200   {object}  contactResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/contacts/{id} [patch]
func (h *LeadHandler) UpdateContactStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req contactStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contacts.SetStatus(c.Request().Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactResponse{Success: true, Contact: contact})
}

// DeleteContact handles DELETE /api/admin/contacts/:id.
//
// @Summary      Delete a contact message
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/contacts/{id} [delete]
func (h *LeadHandler) DeleteContact(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.contacts.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// SubmitSampleReport handles POST /api/sample-reports.
//
// @Summary      Request a free sample report
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      sampleReportRequest  true  "Birth details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/sample-reports [post]
func (h *LeadHandler) SubmitSampleReport(c echo.Context) error {
	var req sampleReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.reports.Submit(c.Request().Context(), ports.SampleReportInput{
		FirstName:      req.FirstName,
		BirthDate:      req.BirthDate,
		Time:           req.Time,
		WhatsappNumber: req.WhatsappNumber,
		Email:          req.Email,
		City:           req.City,
	})
	if err != nil {
		return err
	}

	metrics.SampleReportsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createdResponse{Success: true, ID: id})
}

// ListSampleReports handles GET /api/admin/sample-reports, newest first.
//
// @Summary      List sample report requests
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  sampleReportListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admin/sample-reports [get]
func (h *LeadHandler) ListSampleReports(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sampleReportListResponse{Reports: nonNil(reports)})
}

// DeleteSampleReport handles DELETE /api/admin/sample-reports/:id.
//
// @Summary      Delete a sample report request
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Sample report id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/sample-reports/{id} [delete]
func (h *LeadHandler) DeleteSampleReport(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.reports.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}
