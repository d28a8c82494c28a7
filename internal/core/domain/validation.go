package domain

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// PIN length bounds
const (
	PINMinLength = 4
	PINMaxLength = 6
)

// ValidateEmail checks the address shape and returns it trimmed and lowercased
func ValidateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", &ValidationError{Field: "email", Message: "L'email est requis"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &ValidationError{Field: "email", Message: "Email invalide"}
	}
	if at := strings.LastIndexByte(email, '@'); !strings.Contains(email[at+1:], ".") {
		return "", &ValidationError{Field: "email", Message: "Email invalide"}
	}
	return email, nil
}

// ValidatePIN requires 4 to 6 ASCII digits
func ValidatePIN(field, pin string) error {
	if len(pin) < PINMinLength {
		return &ValidationError{Field: field, Message: "Le code PIN doit contenir au moins 4 chiffres"}
	}
	if len(pin) > PINMaxLength {
		return &ValidationError{Field: field, Message: "Le code PIN doit contenir au plus 6 chiffres"}
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return &ValidationError{Field: field, Message: "Le code PIN doit contenir uniquement des chiffres"}
		}
	}
	return nil
}

// ValidateLoginPIN only checks length, like the login form does
func ValidateLoginPIN(pin string) error {
	if len(pin) < PINMinLength || len(pin) > PINMaxLength {
		return &ValidationError{Field: "pin", Message: "Le code PIN doit contenir entre 4 et 6 chiffres"}
	}
	return nil
}

// ProfileFields are the editable identity fields of a profile
type ProfileFields struct {
	LastName  string
	FirstName string
	Phone     string
}

// Normalize trims every field
func (p ProfileFields) Normalize() ProfileFields {
	return ProfileFields{
		LastName:  strings.TrimSpace(p.LastName),
		FirstName: strings.TrimSpace(p.FirstName),
		Phone:     strings.TrimSpace(p.Phone),
	}
}

// Validate applies the sign-up and profile rules.
// last name 2-50, first name up to 50, phone 8-15 when provided.
func (p ProfileFields) Validate() error {
	if n := utf8.RuneCountInString(p.LastName); n < 2 || n > 50 {
		return &ValidationError{Field: "last_name", Message: "Le nom doit contenir entre 2 et 50 caractères"}
	}
	if utf8.RuneCountInString(p.FirstName) > 50 {
		return &ValidationError{Field: "first_name", Message: "Le prénom doit contenir au plus 50 caractères"}
	}
	if p.Phone != "" {
		if n := utf8.RuneCountInString(p.Phone); n < 8 || n > 15 {
			return &ValidationError{Field: "phone", Message: "Numéro invalide"}
		}
	}
	return nil
}

// MaxAmount is the largest value a decimal(14,2) column holds
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidateAmount requires a non-negative amount with at most two decimals
// that fits the amount columns
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "Le montant doit être positif"}
	}
	if amount.GreaterThan(MaxAmount) {
		return &ValidationError{Field: "amount", Message: "Le montant est trop élevé"}
	}
	if !amount.Equal(amount.Truncate(2)) {
		return &ValidationError{Field: "amount", Message: "Le montant accepte au plus 2 décimales"}
	}
	return nil
}
