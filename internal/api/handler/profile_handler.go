package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/core/ports"
)

// ProfileHandler serves the signed-in user's own account and image uploads.
type ProfileHandler struct {
	profiles ports.ProfileService
	media    ports.MediaService
}

func NewProfileHandler(profiles ports.ProfileService, media ports.MediaService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, media: media}
}

// updateProfileRequest has no email or role: neither is editable by the owner.
type updateProfileRequest struct {
	Name         *string `json:"name"         validate:"omitnil,max=100"`
	Phone        *string `json:"phone"        validate:"omitnil,max=20"`
	ProfileImage *string `json:"profileImage"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
}

type uploadRequest struct {
	Image  string `json:"image"  validate:"required"`
	Folder string `json:"folder" validate:"omitempty,max=40"`
}

type uploadResponse struct {
	SecureURL string `json:"secureUrl"`
	PublicID  string `json:"publicId"`
}

// Get handles GET /api/profile.
//
// @Summary      My profile
// @Tags         profile
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.profiles.Get(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Update handles PUT /api/profile.
//
// @Summary      Edit my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      updateProfileRequest  true  "Fields to change; profileImage may be a data URI"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.Update(c.Request().Context(), identity, ports.ProfileInput{
		Name:         req.Name,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// ChangePassword handles PUT /api/profile/password.
//
// @Summary      Change my password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/profile/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.profiles.ChangePassword(c.Request().Context(), identity, ports.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse)
}

// Upload handles POST /api/upload.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      uploadRequest  true  "Base64 data URI and optional folder"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/upload [post]
func (h *ProfileHandler) Upload(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req uploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	img, err := h.media.Upload(c.Request().Context(), identity, req.Image, req.Folder)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploadResponse{SecureURL: img.SecureURL, PublicID: img.PublicID})
}
