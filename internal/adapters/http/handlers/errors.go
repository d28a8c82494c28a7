package handlers

import (
	"errors"
	"log"

	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// User-facing messages
const (
	msgServerError        = "Erreur du serveur, veuillez réessayer"
	msgInvalidBody        = "Requête invalide"
	msgInvalidCredentials = "Email ou code PIN incorrect"
	msgOldPINIncorrect    = "L'ancien code PIN est incorrect"
	msgDuplicateAccount   = "Cet email est déjà utilisé"
	msgForbidden          = "Accès réservé au propriétaire"
	msgUnauthorized       = "Veuillez vous connecter"
)

// respondError converts a service error into the response envelope.
// Store and unexpected errors are logged and never shown to the user.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := domain.IsValidation(err); ok {
		return response.ValidationError(c, ve.Field, ve.Message)
	}

	var se *domain.StoreError
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		return response.Conflict(c, msgDuplicateAccount)
	case errors.Is(err, domain.ErrOldPINIncorrect):
		return response.BadRequest(c, msgOldPINIncorrect)
	case errors.Is(err, domain.ErrCredential):
		return response.Unauthorized(c, msgInvalidCredentials)
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Introuvable")
	case errors.As(err, &se):
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), se)
		return response.InternalServerError(c, msgServerError)
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return response.InternalServerError(c, msgServerError)
	}
}
