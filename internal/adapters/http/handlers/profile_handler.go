package handlers

import (
	"papatacos/internal/adapters/http/middleware"
	"papatacos/internal/config"
	"papatacos/internal/core/services"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	profileService *services.ProfileService
	cfg            *config.Config
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		cfg:            cfg,
	}
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	profile, err := h.profileService.GetProfile(c.Context(), session)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profil récupéré", profile)
}

// UpdateProfile updates name and phone
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	profile, err := h.profileService.UpdateProfile(c.Context(), session, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Profil mis à jour", profile)
}

// RotatePIN changes the PIN and ends every session
// @Summary Change PIN
// @Description Change the PIN. All sessions end and the user must log in again.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RotatePINInput true "Old and new PIN"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/pin [put]
func (h *ProfileHandler) RotatePIN(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	var input services.RotatePINInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	if err := h.profileService.RotatePIN(c.Context(), session, &input); err != nil {
		return respondError(c, err)
	}

	clearAuthCookies(c, h.cfg)

	return response.Success(c, "Code PIN modifié, veuillez vous reconnecter", nil)
}
