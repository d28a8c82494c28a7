package models

import (
	"time"

	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Identity & Profiles
// ============================================================

// Account is the identity record: login email and the PIN credential
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	SecretHash   string    `gorm:"size:255;not null" json:"-"`
	TokenVersion uint      `gorm:"not null;default:1" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// Profile holds the user's identity fields, pin and role. ID equals Account.ID.
type Profile struct {
	ID        uint        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LastName  string      `gorm:"size:50;not null" json:"last_name"`
	FirstName string      `gorm:"size:50" json:"first_name"`
	Phone     string      `gorm:"size:15" json:"phone"`
	PinCode   string      `gorm:"size:255;not null" json:"-"`
	Role      domain.Role `gorm:"size:20;not null;default:'cashier'" json:"role"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileResponse DTO
type ProfileResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	LastName  string      `json:"last_name"`
	FirstName string      `json:"first_name,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	RoleLabel string      `json:"role_label"`
	CreatedAt time.Time   `json:"created_at"`
}

func (p *Profile) ToResponse(email string) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Email:     email,
		LastName:  p.LastName,
		FirstName: p.FirstName,
		Phone:     p.Phone,
		Role:      p.Role,
		RoleLabel: p.Role.Label(),
		CreatedAt: p.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AccountID uint       `gorm:"index;not null" json:"account_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	Account   Account    `gorm:"foreignKey:AccountID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Entries (insert-only)
// ============================================================

// Entry is implemented by the three entry tables
type Entry interface {
	Income | Expense | FixedCharge
}

// Income represents income_entries table
type Income struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	Amount        decimal.Decimal      `gorm:"type:decimal(14,2);not null" json:"amount"`
	Description   string               `gorm:"size:255;not null" json:"description"`
	PaymentMethod domain.PaymentMethod `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	OccurredAt    time.Time            `gorm:"index;not null" json:"occurred_at"`
	OwnerUserID   uint                 `gorm:"index" json:"owner_user_id"`
	CreatedAt     time.Time            `gorm:"autoCreateTime" json:"created_at"`
}

func (Income) TableName() string {
	return "income_entries"
}

// Expense represents expense_entries table
type Expense struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal        `gorm:"type:decimal(14,2);not null" json:"amount"`
	Category    domain.ExpenseCategory `gorm:"size:20;not null;index" json:"category"`
	Supplier    string                 `gorm:"size:100" json:"supplier,omitempty"`
	OccurredAt  time.Time              `gorm:"index;not null" json:"occurred_at"`
	OwnerUserID uint                   `gorm:"index" json:"owner_user_id"`
	CreatedAt   time.Time              `gorm:"autoCreateTime" json:"created_at"`
}

func (Expense) TableName() string {
	return "expense_entries"
}

// FixedCharge represents fixed_charges table
type FixedCharge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal   `gorm:"type:decimal(14,2);not null" json:"amount"`
	ChargeType  domain.ChargeType `gorm:"size:20;not null;index" json:"charge_type"`
	OccurredAt  time.Time         `gorm:"index;not null" json:"occurred_at"`
	OwnerUserID uint              `gorm:"index" json:"owner_user_id"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (FixedCharge) TableName() string {
	return "fixed_charges"
}

// BeforeCreate hooks store occurred_at in UTC and default it to the insert time
func (e *Income) BeforeCreate(tx *gorm.DB) error {
	e.OccurredAt = occurredAt(e.OccurredAt)
	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	e.OccurredAt = occurredAt(e.OccurredAt)
	return nil
}

func (e *FixedCharge) BeforeCreate(tx *gorm.DB) error {
	e.OccurredAt = occurredAt(e.OccurredAt)
	return nil
}

func occurredAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// EntryResponse is the display form shared by all entry kinds
type EntryResponse struct {
	ID            uint             `json:"id"`
	Kind          domain.EntryKind `json:"kind"`
	Amount        decimal.Decimal  `json:"amount"`
	AmountDisplay string           `json:"amount_display"`
	Code          string           `json:"code"`
	Label         string           `json:"label"`
	Detail        string           `json:"detail,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

func (e *Income) ToResponse() *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Kind:          domain.KindIncome,
		Amount:        e.Amount,
		AmountDisplay: money.Format(e.Amount),
		Code:          string(e.PaymentMethod),
		Label:         e.PaymentMethod.Label(),
		Detail:        e.Description,
		OccurredAt:    e.OccurredAt,
	}
}

func (e *Expense) ToResponse() *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Kind:          domain.KindExpense,
		Amount:        e.Amount,
		AmountDisplay: money.Format(e.Amount),
		Code:          string(e.Category),
		Label:         e.Category.Label(),
		Detail:        e.Supplier,
		OccurredAt:    e.OccurredAt,
	}
}

func (e *FixedCharge) ToResponse() *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Kind:          domain.KindCharge,
		Amount:        e.Amount,
		AmountDisplay: money.Format(e.Amount),
		Code:          string(e.ChargeType),
		Label:         e.ChargeType.Label(),
		OccurredAt:    e.OccurredAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates every table of the service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&Profile{},
		&RefreshToken{},
		&Income{},
		&Expense{},
		&FixedCharge{},
	)
}
