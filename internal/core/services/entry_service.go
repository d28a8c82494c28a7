package services

import (
	"context"
	"log"
	"strings"
	"time"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/core/domain"

	"github.com/shopspring/decimal"
)

// EntryService records income, expenses and fixed charges. Entries are insert-only.
type EntryService struct {
	store     *repositories.Store
	observers []EntryObserver
}

// NewEntryService creates a new entry service
func NewEntryService(store *repositories.Store, observers ...EntryObserver) *EntryService {
	return &EntryService{
		store:     store,
		observers: observers,
	}
}

// RecordIncomeInput represents a new income entry
type RecordIncomeInput struct {
	Amount        *decimal.Decimal `json:"amount"`
	Description   string           `json:"description"`
	PaymentMethod string           `json:"payment_method"`
	OccurredAt    *time.Time       `json:"occurred_at"`
}

// RecordExpenseInput represents a new expense entry
type RecordExpenseInput struct {
	Amount     *decimal.Decimal `json:"amount"`
	Category   string           `json:"category"`
	Supplier   string           `json:"supplier"`
	OccurredAt *time.Time       `json:"occurred_at"`
}

// RecordChargeInput represents a new fixed charge
type RecordChargeInput struct {
	Amount     *decimal.Decimal `json:"amount"`
	ChargeType string           `json:"charge_type"`
	OccurredAt *time.Time       `json:"occurred_at"`
}

// RecordIncome stores an income entry. Payment method defaults to cash.
func (s *EntryService) RecordIncome(ctx context.Context, session *domain.Session, input *RecordIncomeInput) (*models.EntryResponse, error) {
	amount, err := requireAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, &domain.ValidationError{Field: "description", Message: "La description est requise"}
	}
	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	entry := &models.Income{
		Amount:        amount,
		Description:   description,
		PaymentMethod: method,
		OccurredAt:    occurredAtOrZero(input.OccurredAt),
		OwnerUserID:   session.UserID,
	}
	if err := s.store.Income.Create(ctx, entry); err != nil {
		return nil, domain.NewStoreError("record income", err)
	}

	log.Printf("✅ Income recorded: #%d %s (%s)", entry.ID, entry.Amount, entry.PaymentMethod)
	s.notify(ctx, domain.EntryRecorded{
		Kind:       domain.KindIncome,
		ID:         entry.ID,
		Amount:     entry.Amount,
		Label:      entry.PaymentMethod.Label(),
		OccurredAt: entry.OccurredAt,
		UserID:     session.UserID,
	})
	return entry.ToResponse(), nil
}

// RecordExpense stores an expense entry
func (s *EntryService) RecordExpense(ctx context.Context, session *domain.Session, input *RecordExpenseInput) (*models.EntryResponse, error) {
	amount, err := requireAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, &domain.ValidationError{Field: "category", Message: "La catégorie est requise"}
	}
	category, err := domain.ParseExpenseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	entry := &models.Expense{
		Amount:      amount,
		Category:    category,
		Supplier:    strings.TrimSpace(input.Supplier),
		OccurredAt:  occurredAtOrZero(input.OccurredAt),
		OwnerUserID: session.UserID,
	}
	if err := s.store.Expenses.Create(ctx, entry); err != nil {
		return nil, domain.NewStoreError("record expense", err)
	}

	log.Printf("✅ Expense recorded: #%d %s (%s)", entry.ID, entry.Amount, entry.Category)
	s.notify(ctx, domain.EntryRecorded{
		Kind:       domain.KindExpense,
		ID:         entry.ID,
		Amount:     entry.Amount,
		Label:      entry.Category.Label(),
		OccurredAt: entry.OccurredAt,
		UserID:     session.UserID,
	})
	return entry.ToResponse(), nil
}

// RecordCharge stores a fixed charge. Owners only.
func (s *EntryService) RecordCharge(ctx context.Context, session *domain.Session, input *RecordChargeInput) (*models.EntryResponse, error) {
	if !session.IsOwner() {
		return nil, domain.ErrForbidden
	}
	amount, err := requireAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ChargeType) == "" {
		return nil, &domain.ValidationError{Field: "charge_type", Message: "Le type de charge est requis"}
	}
	chargeType, err := domain.ParseChargeType(input.ChargeType)
	if err != nil {
		return nil, err
	}

	entry := &models.FixedCharge{
		Amount:      amount,
		ChargeType:  chargeType,
		OccurredAt:  occurredAtOrZero(input.OccurredAt),
		OwnerUserID: session.UserID,
	}
	if err := s.store.Charges.Create(ctx, entry); err != nil {
		return nil, domain.NewStoreError("record charge", err)
	}

	log.Printf("✅ Charge recorded: #%d %s (%s)", entry.ID, entry.Amount, entry.ChargeType)
	s.notify(ctx, domain.EntryRecorded{
		Kind:       domain.KindCharge,
		ID:         entry.ID,
		Amount:     entry.Amount,
		Label:      entry.ChargeType.Label(),
		OccurredAt: entry.OccurredAt,
		UserID:     session.UserID,
	})
	return entry.ToResponse(), nil
}

func (s *EntryService) notify(ctx context.Context, event domain.EntryRecorded) {
	for _, o := range s.observers {
		o.EntryRecorded(ctx, event)
	}
}

func requireAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero, &domain.ValidationError{Field: "amount", Message: "Le montant est requis"}
	}
	if err := domain.ValidateAmount(*amount); err != nil {
		return decimal.Zero, err
	}
	return *amount, nil
}

// occurredAtOrZero leaves zero for a missing time; the model hook fills in now
func occurredAtOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
