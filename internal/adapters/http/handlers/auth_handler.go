package handlers

import (
	"errors"
	"time"

	"papatacos/internal/adapters/http/middleware"
	"papatacos/internal/config"
	"papatacos/internal/core/services"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// SignUpRequest represents sign-up request body
type SignUpRequest struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	PIN       string `json:"pin"`
	Role      string `json:"role"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// SignUp handles account creation
// @Summary Create account
// @Description Create an account and its profile, owner or cashier
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	result, err := h.authService.SignUp(c.Context(), &services.SignUpInput{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Email:     req.Email,
		PIN:       req.PIN,
		Role:      req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Created(c, "Compte créé avec succès", fiber.Map{
		"access_token": result.AccessToken,
		"profile":      result.Profile,
	})
}

// Login handles PIN login
// @Summary Login
// @Description Authenticate with email and PIN
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email: req.Email,
		PIN:   req.PIN,
	})
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Connexion réussie", fiber.Map{
		"access_token": result.AccessToken,
		"profile":      result.Profile,
	})
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Rotate the refresh token cookie and issue a new access token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, msgUnauthorized)
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Session expirée, veuillez vous reconnecter")
		case errors.Is(err, services.ErrTokenRevoked), errors.Is(err, services.ErrInvalidToken):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Session invalide, veuillez vous reconnecter")
		default:
			return respondError(c, err)
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Session renouvelée", fiber.Map{
		"access_token": result.AccessToken,
		"profile":      result.Profile,
	})
}

// Logout handles sign-out
// @Summary Logout
// @Description Revoke the refresh token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if refreshToken := c.Cookies("refresh_token"); refreshToken != "" {
		// Best effort, the cookies are cleared either way
		_ = h.authService.SignOut(c.Context(), refreshToken)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Déconnexion réussie", nil)
}

// LogoutAll handles sign-out from all devices
// @Summary Logout from all devices
// @Description Revoke every refresh token and invalidate issued access tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	if err := h.authService.SignOutEverywhere(c.Context(), session); err != nil {
		return respondError(c, err)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Déconnecté de tous les appareils", nil)
}

// Me returns the current session
// @Summary Current session
// @Description Get the authenticated user's id, email and role
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	return response.Success(c, "Session active", fiber.Map{
		"user_id":    session.UserID,
		"email":      session.Email,
		"role":       session.Role,
		"role_label": session.Role.Label(),
	})
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies expires both auth cookies
func clearAuthCookies(c *fiber.Ctx, cfg *config.Config) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-1 * time.Hour),
			Secure:   cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: cfg.Cookie.SameSite,
			Domain:   cfg.Cookie.Domain,
		})
	}
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	clearAuthCookies(c, h.cfg)
}
