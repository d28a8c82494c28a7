package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleOwner   Role = "owner"
	RoleCashier Role = "cashier"
)

// ParseRole accepts the role codes and the French words used by the mobile client
func ParseRole(s string) (Role, error) {
	switch normalize(s) {
	case "owner", "proprietaire":
		return RoleOwner, nil
	case "cashier", "caissier":
		return RoleCashier, nil
	}
	return "", &ValidationError{Field: "role", Message: "Rôle invalide"}
}

// Label returns the display name of the role
func (r Role) Label() string {
	switch r {
	case RoleOwner:
		return "Propriétaire"
	case RoleCashier:
		return "Caissier"
	}
	return string(r)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleCashier
}

// PaymentMethod is how an income entry was paid
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCard        PaymentMethod = "card"
)

// ParsePaymentMethod accepts codes and labels ("Espèces", "Mobile Money", "CB").
// An empty value means cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch normalize(s) {
	case "", "cash", "especes":
		return PaymentCash, nil
	case "mobile_money", "mobile money", "mobilemoney":
		return PaymentMobileMoney, nil
	case "card", "cb", "carte", "carte bancaire":
		return PaymentCard, nil
	}
	return "", &ValidationError{Field: "payment_method", Message: "Mode de paiement invalide"}
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentCash:
		return "Espèces"
	case PaymentMobileMoney:
		return "Mobile Money"
	case PaymentCard:
		return "Carte Bancaire"
	}
	return string(p)
}

// ExpenseCategory classifies an expense entry
type ExpenseCategory string

const (
	CategoryMeat        ExpenseCategory = "viande"
	CategoryDrinks      ExpenseCategory = "boissons"
	CategoryGas         ExpenseCategory = "gaz"
	CategoryPackaging   ExpenseCategory = "emballages"
	CategoryTransport   ExpenseCategory = "transport"
	CategoryVegetables  ExpenseCategory = "legumes"
	CategoryCondiments  ExpenseCategory = "condiments"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryOther       ExpenseCategory = "autre"
)

// ExpenseCategories lists the categories in display order
var ExpenseCategories = []ExpenseCategory{
	CategoryMeat, CategoryDrinks, CategoryGas, CategoryPackaging, CategoryTransport,
	CategoryVegetables, CategoryCondiments, CategoryMaintenance, CategoryOther,
}

// ParseExpenseCategory accepts a code or its label, accents and case ignored
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	n := normalize(s)
	for _, c := range ExpenseCategories {
		if n == string(c) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "Catégorie invalide"}
}

func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryMeat:
		return "Viande"
	case CategoryDrinks:
		return "Boissons"
	case CategoryGas:
		return "Gaz"
	case CategoryPackaging:
		return "Emballages"
	case CategoryTransport:
		return "Transport"
	case CategoryVegetables:
		return "Légumes"
	case CategoryCondiments:
		return "Condiments"
	case CategoryMaintenance:
		return "Maintenance"
	case CategoryOther:
		return "Autre"
	}
	return string(c)
}

// ChargeType classifies a fixed monthly charge
type ChargeType string

const (
	ChargeRent        ChargeType = "loyer"
	ChargeSalary      ChargeType = "salaire"
	ChargeElectricity ChargeType = "electricite"
	ChargeWater       ChargeType = "eau"
	ChargeInternet    ChargeType = "internet"
	ChargeMaintenance ChargeType = "maintenance"
	ChargeInsurance   ChargeType = "assurance"
	ChargeOther       ChargeType = "autre"
)

// ChargeTypes lists the charge types in display order
var ChargeTypes = []ChargeType{
	ChargeRent, ChargeSalary, ChargeElectricity, ChargeWater,
	ChargeInternet, ChargeMaintenance, ChargeInsurance, ChargeOther,
}

func ParseChargeType(s string) (ChargeType, error) {
	n := normalize(s)
	for _, t := range ChargeTypes {
		if n == string(t) {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "charge_type", Message: "Type de charge invalide"}
}

func (t ChargeType) Label() string {
	switch t {
	case ChargeRent:
		return "Loyer"
	case ChargeSalary:
		return "Salaire"
	case ChargeElectricity:
		return "Électricité"
	case ChargeWater:
		return "Eau"
	case ChargeInternet:
		return "Internet"
	case ChargeMaintenance:
		return "Maintenance"
	case ChargeInsurance:
		return "Assurance"
	case ChargeOther:
		return "Autre"
	}
	return string(t)
}

// EntryKind names one of the three entry collections
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
	KindCharge  EntryKind = "charge"
)

// Session is the authenticated caller, threaded into every protected operation
type Session struct {
	UserID       uint
	Email        string
	Role         Role
	TokenVersion uint
}

// IsOwner reports whether the session belongs to an owner
func (s *Session) IsOwner() bool {
	return s != nil && s.Role == RoleOwner
}

// EntryRecorded is emitted after an entry is stored
type EntryRecorded struct {
	Kind       EntryKind       `json:"kind"`
	ID         uint            `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Label      string          `json:"label"`
	OccurredAt time.Time       `json:"occurred_at"`
	UserID     uint            `json:"user_id"`
}

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "î", "i", "ï", "i",
	"ô", "o", "û", "u", "ù", "u", "ç", "c",
)

func normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
