package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"papatacos/internal/config"
	"papatacos/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct {
	calls int
}

func (p *failingPublisher) Publish(ctx context.Context, event domain.EntryRecorded) error {
	p.calls++
	return errors.New("broker unreachable")
}

var (
	owner   = &domain.Session{UserID: 1, Email: "papa@tacos.ci", Role: domain.RoleOwner}
	cashier = &domain.Session{UserID: 2, Email: "awa@tacos.ci", Role: domain.RoleCashier}
)

func TestScenarioIncomeAndExpenseToday(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	reports := NewReportService(store, time.UTC, config.CacheConfig{TTL: time.Hour, MaxEntries: 16})
	entries := NewEntryService(store, reports)
	ctx := context.Background()

	// prime the memo so the writes below must purge it
	_, err := reports.DailyTotals(ctx, time.Now())
	require.NoError(t, err)

	_, err = entries.RecordIncome(ctx, cashier, &RecordIncomeInput{
		Amount:        decPtr("15000"),
		Description:   "Vente tacos",
		PaymentMethod: "Espèces",
	})
	require.NoError(t, err)
	_, err = entries.RecordExpense(ctx, cashier, &RecordExpenseInput{
		Amount:   decPtr("4000"),
		Category: "Viande",
	})
	require.NoError(t, err)

	d, err := reports.DailyTotals(ctx, time.Now())
	require.NoError(t, err)
	assert.True(t, dec("15000").Equal(d.IncomeTotal))
	assert.True(t, dec("4000").Equal(d.ExpenseTotal))
	assert.True(t, dec("11000").Equal(d.Balance))
}

func TestRecordIncome(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	obs := &recordingObserver{}
	entries := NewEntryService(store, obs)
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.FixedZone("UTC+1", 3600))

	resp, err := entries.RecordIncome(context.Background(), cashier, &RecordIncomeInput{
		Amount:      decPtr("2500.50"),
		Description: "  Menu midi ",
		OccurredAt:  &at,
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, domain.KindIncome, resp.Kind)
	assert.Equal(t, string(domain.PaymentCash), resp.Code, "payment method defaults to cash")
	assert.Equal(t, "Menu midi", resp.Detail)
	assert.Equal(t, "2 500 F", resp.AmountDisplay)
	assert.True(t, at.Equal(resp.OccurredAt))
	assert.Equal(t, time.UTC, resp.OccurredAt.Location())

	require.Len(t, obs.events, 1)
	assert.Equal(t, resp.ID, obs.events[0].ID)
	assert.Equal(t, cashier.UserID, obs.events[0].UserID)
	assert.Equal(t, "Espèces", obs.events[0].Label)
}

func TestRecordDefaultsOccurredAtToNow(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	entries := NewEntryService(store)

	before := time.Now().Add(-time.Second)
	resp, err := entries.RecordExpense(context.Background(), cashier, &RecordExpenseInput{
		Amount:   decPtr("0.01"),
		Category: "gaz",
		Supplier: "Total",
	})
	require.NoError(t, err)
	assert.True(t, resp.OccurredAt.After(before))
	assert.Equal(t, "Gaz", resp.Label)
	assert.Equal(t, "Total", resp.Detail)
}

func TestRecordValidation(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	obs := &recordingObserver{}
	entries := NewEntryService(store, obs)
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"income without amount", func() error {
			_, err := entries.RecordIncome(ctx, cashier, &RecordIncomeInput{Description: "x"})
			return err
		}, "amount"},
		{"negative income", func() error {
			_, err := entries.RecordIncome(ctx, cashier, &RecordIncomeInput{Amount: decPtr("-1"), Description: "x"})
			return err
		}, "amount"},
		{"three decimals", func() error {
			_, err := entries.RecordIncome(ctx, cashier, &RecordIncomeInput{Amount: decPtr("1.005"), Description: "x"})
			return err
		}, "amount"},
		{"amount beyond the column", func() error {
			_, err := entries.RecordExpense(ctx, cashier, &RecordExpenseInput{Amount: decPtr("1000000000000"), Category: "gaz"})
			return err
		}, "amount"},
		{"blank description", func() error {
			_, err := entries.RecordIncome(ctx, cashier, &RecordIncomeInput{Amount: decPtr("1"), Description: "  "})
			return err
		}, "description"},
		{"unknown payment method", func() error {
			_, err := entries.RecordIncome(ctx, cashier, &RecordIncomeInput{Amount: decPtr("1"), Description: "x", PaymentMethod: "cheque"})
			return err
		}, "payment_method"},
		{"missing category", func() error {
			_, err := entries.RecordExpense(ctx, cashier, &RecordExpenseInput{Amount: decPtr("1")})
			return err
		}, "category"},
		{"unknown category", func() error {
			_, err := entries.RecordExpense(ctx, cashier, &RecordExpenseInput{Amount: decPtr("1"), Category: "Loyer"})
			return err
		}, "category"},
		{"unknown charge type", func() error {
			_, err := entries.RecordCharge(ctx, owner, &RecordChargeInput{Amount: decPtr("1"), ChargeType: "Viande"})
			return err
		}, "charge_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve, ok := domain.IsValidation(tt.call())
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	assert.Empty(t, obs.events)
}

func TestRecordChargeIsOwnerOnly(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	entries := NewEntryService(store)
	ctx := context.Background()
	input := &RecordChargeInput{Amount: decPtr("150000"), ChargeType: "Loyer"}

	_, err := entries.RecordCharge(ctx, cashier, input)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := entries.RecordCharge(ctx, owner, input)
	require.NoError(t, err)
	assert.Equal(t, domain.KindCharge, resp.Kind)
	assert.Equal(t, "Loyer", resp.Label)
}

func TestPublisherFailureDoesNotFailInsert(t *testing.T) {
	store, _ := openTestStore(t, testConfig(t))
	pub := &failingPublisher{}
	entries := NewEntryService(store, PublishingObserver{Publisher: pub})

	_, err := entries.RecordIncome(context.Background(), owner, &RecordIncomeInput{
		Amount:      decPtr("100"),
		Description: "Vente",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, pub.calls)
}
