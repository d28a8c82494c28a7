package services

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"papatacos/internal/adapters/persistence/models"
	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/config"
	"papatacos/internal/core/domain"
	"papatacos/internal/pkg/cache"
	"papatacos/internal/pkg/money"
	"papatacos/internal/pkg/period"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ReportService computes daily and monthly figures from the entry collections.
// Nothing is persisted; bucket totals may be memoized for a short TTL.
type ReportService struct {
	store  *repositories.Store
	loc    *time.Location
	cache  *cache.LRUCache[bucketTotal]
	flight singleflight.Group

	// generations move forward on every recorded entry of a kind.
	// A load only memoizes its total if the generation it started
	// under is still current.
	generations map[domain.EntryKind]*atomic.Uint64
}

// bucketTotal is the sum and count of one entry kind over one day or month
type bucketTotal struct {
	Total decimal.Decimal
	Count int
}

type scope string

const (
	scopeDay   scope = "day"
	scopeMonth scope = "month"
)

// NewReportService creates a report service. A zero cache TTL disables memoization.
func NewReportService(store *repositories.Store, loc *time.Location, cacheCfg config.CacheConfig) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	s := &ReportService{
		store: store,
		loc:   loc,
		generations: map[domain.EntryKind]*atomic.Uint64{
			domain.KindIncome:  new(atomic.Uint64),
			domain.KindExpense: new(atomic.Uint64),
			domain.KindCharge:  new(atomic.Uint64),
		},
	}
	if cacheCfg.TTL > 0 {
		s.cache = cache.NewLRUCache[bucketTotal](cacheCfg.MaxEntries, cacheCfg.TTL)
	}
	return s
}

// ============================================================
// Results
// ============================================================

// DailyTotals is the day-scoped summary
type DailyTotals struct {
	Date         string          `json:"date"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"income_count"`
	ExpenseCount int             `json:"expense_count"`
	Display      TotalsDisplay   `json:"display"`
}

// MonthlyTotals is the month-scoped profit and loss
type MonthlyTotals struct {
	Month        string          `json:"month"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	ChargeTotal  decimal.Decimal `json:"charge_total"`
	Result       decimal.Decimal `json:"result"`
	Status       string          `json:"status"`
	Display      TotalsDisplay   `json:"display"`
}

// TotalsDisplay holds the formatted amounts shown to the user
type TotalsDisplay struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Charge  string `json:"charge,omitempty"`
	Balance string `json:"balance,omitempty"`
	Result  string `json:"result,omitempty"`
}

// Result status
const (
	StatusSurplus = "surplus"
	StatusDeficit = "deficit"
)

// EntryHistory is a newest-first listing with its total
type EntryHistory struct {
	Kind         domain.EntryKind        `json:"kind"`
	Period       string                  `json:"period,omitempty"`
	Entries      []*models.EntryResponse `json:"entries"`
	Count        int                     `json:"count"`
	Total        decimal.Decimal         `json:"total"`
	TotalDisplay string                  `json:"total_display"`
}

// Dashboard combines the daily and monthly figures
type Dashboard struct {
	Daily   *DailyTotals   `json:"daily"`
	Monthly *MonthlyTotals `json:"monthly"`
}

// ============================================================
// Aggregation
// ============================================================

// DailyTotals sums income and expenses within [startOfDay, endOfDay] of date
func (s *ReportService) DailyTotals(ctx context.Context, date time.Time) (*DailyTotals, error) {
	r := period.Day(date, s.loc)
	key := period.DayKey(date, s.loc)

	var income, expense bucketTotal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = s.bucket(gctx, domain.KindIncome, scopeDay, key, r)
		return err
	})
	g.Go(func() (err error) {
		expense, err = s.bucket(gctx, domain.KindExpense, scopeDay, key, r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balance := income.Total.Sub(expense.Total)
	return &DailyTotals{
		Date:         key,
		IncomeTotal:  income.Total,
		ExpenseTotal: expense.Total,
		Balance:      balance,
		IncomeCount:  income.Count,
		ExpenseCount: expense.Count,
		Display: TotalsDisplay{
			Income:  money.Format(income.Total),
			Expense: money.Format(expense.Total),
			Balance: money.Format(balance),
		},
	}, nil
}

// MonthlyTotals sums the three collections within the month of date.
// result = income - (expense + charge) and may be negative.
func (s *ReportService) MonthlyTotals(ctx context.Context, date time.Time) (*MonthlyTotals, error) {
	r := period.Month(date, s.loc)
	key := period.MonthKey(date, s.loc)

	var income, expense, charge bucketTotal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = s.bucket(gctx, domain.KindIncome, scopeMonth, key, r)
		return err
	})
	g.Go(func() (err error) {
		expense, err = s.bucket(gctx, domain.KindExpense, scopeMonth, key, r)
		return err
	})
	g.Go(func() (err error) {
		charge, err = s.bucket(gctx, domain.KindCharge, scopeMonth, key, r)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := income.Total.Sub(expense.Total.Add(charge.Total))
	status := StatusSurplus
	if result.IsNegative() {
		status = StatusDeficit
	}

	return &MonthlyTotals{
		Month:        key,
		IncomeTotal:  income.Total,
		ExpenseTotal: expense.Total,
		ChargeTotal:  charge.Total,
		Result:       result,
		Status:       status,
		Display: TotalsDisplay{
			Income:  money.Format(income.Total),
			Expense: money.Format(expense.Total),
			Charge:  money.Format(charge.Total),
			Result:  money.Format(result),
		},
	}, nil
}

// Dashboard returns daily and monthly figures for date
func (s *ReportService) Dashboard(ctx context.Context, date time.Time) (*Dashboard, error) {
	daily, err := s.DailyTotals(ctx, date)
	if err != nil {
		return nil, err
	}
	monthly, err := s.MonthlyTotals(ctx, date)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Daily: daily, Monthly: monthly}, nil
}

// ============================================================
// Histories (never cached)
// ============================================================

// ListAll lists every entry of kind, newest first
func (s *ReportService) ListAll(ctx context.Context, kind domain.EntryKind) (*EntryHistory, error) {
	switch kind {
	case domain.KindIncome:
		return s.ListIncome(ctx)
	case domain.KindExpense:
		return s.ListExpenses(ctx)
	case domain.KindCharge:
		return s.ListCharges(ctx)
	}
	return nil, fmt.Errorf("unknown entry kind %q", kind)
}

// ListIncome lists every income entry, newest first
func (s *ReportService) ListIncome(ctx context.Context) (*EntryHistory, error) {
	entries, err := s.store.Income.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list income", err)
	}
	return history(domain.KindIncome, "", entries, (*models.Income).ToResponse), nil
}

// ListExpenses lists every expense entry, newest first
func (s *ReportService) ListExpenses(ctx context.Context) (*EntryHistory, error) {
	entries, err := s.store.Expenses.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list expenses", err)
	}
	return history(domain.KindExpense, "", entries, (*models.Expense).ToResponse), nil
}

// ListCharges lists every fixed charge, newest first
func (s *ReportService) ListCharges(ctx context.Context) (*EntryHistory, error) {
	entries, err := s.store.Charges.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list charges", err)
	}
	return history(domain.KindCharge, "", entries, (*models.FixedCharge).ToResponse), nil
}

// ChargesOfMonth lists the fixed charges of date's month with their total
func (s *ReportService) ChargesOfMonth(ctx context.Context, date time.Time) (*EntryHistory, error) {
	r := period.Month(date, s.loc)
	entries, err := s.store.Charges.ListBetween(ctx, r.From, r.To)
	if err != nil {
		return nil, domain.NewStoreError("list charges", err)
	}
	return history(domain.KindCharge, period.MonthKey(date, s.loc), entries, (*models.FixedCharge).ToResponse), nil
}

func history[T any](kind domain.EntryKind, label string, entries []*T, toResponse func(*T) *models.EntryResponse) *EntryHistory {
	h := &EntryHistory{
		Kind:    kind,
		Period:  label,
		Entries: make([]*models.EntryResponse, 0, len(entries)),
		Total:   decimal.Zero,
	}
	for _, e := range entries {
		resp := toResponse(e)
		h.Entries = append(h.Entries, resp)
		h.Total = h.Total.Add(resp.Amount)
	}
	h.Count = len(h.Entries)
	h.TotalDisplay = money.Format(h.Total)
	return h
}

// ============================================================
// Buckets
// ============================================================

func bucketKey(kind domain.EntryKind, sc scope, key string) string {
	return string(kind) + ":" + string(sc) + ":" + key
}

// bucket returns the total of kind over r, from the memo when possible.
// Concurrent loads of the same bucket and generation share one query.
func (s *ReportService) bucket(ctx context.Context, kind domain.EntryKind, sc scope, key string, r period.Range) (bucketTotal, error) {
	ck := bucketKey(kind, sc, key)
	if s.cache != nil {
		if v, ok := s.cache.Get(ck); ok {
			return v, nil
		}
	}

	gen := s.generation(kind)
	v, err, _ := s.flight.Do(ck+"@"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		total, err := s.sum(ctx, kind, r)
		if err != nil {
			return bucketTotal{}, err
		}
		s.remember(kind, ck, gen, total)
		return total, nil
	})
	if err != nil {
		return bucketTotal{}, err
	}
	return v.(bucketTotal), nil
}

func (s *ReportService) generation(kind domain.EntryKind) uint64 {
	if g, ok := s.generations[kind]; ok {
		return g.Load()
	}
	return 0
}

// remember memoizes total unless an entry of kind was recorded since gen was read
func (s *ReportService) remember(kind domain.EntryKind, ck string, gen uint64, total bucketTotal) {
	if s.cache == nil || s.generation(kind) != gen {
		return
	}
	s.cache.Set(ck, total)
}

// sum reads the entries of kind inside r and adds their amounts
func (s *ReportService) sum(ctx context.Context, kind domain.EntryKind, r period.Range) (bucketTotal, error) {
	var (
		amounts []decimal.Decimal
		err     error
	)
	switch kind {
	case domain.KindIncome:
		amounts, err = amountsBetween(ctx, s.store.Income, r, func(e *models.Income) decimal.Decimal { return e.Amount })
	case domain.KindExpense:
		amounts, err = amountsBetween(ctx, s.store.Expenses, r, func(e *models.Expense) decimal.Decimal { return e.Amount })
	case domain.KindCharge:
		amounts, err = amountsBetween(ctx, s.store.Charges, r, func(e *models.FixedCharge) decimal.Decimal { return e.Amount })
	default:
		return bucketTotal{}, fmt.Errorf("unknown entry kind %q", kind)
	}
	if err != nil {
		return bucketTotal{}, domain.NewStoreError("sum "+string(kind), err)
	}
	return bucketTotal{Total: money.Sum(amounts...), Count: len(amounts)}, nil
}

func amountsBetween[T models.Entry](ctx context.Context, repo repositories.EntryRepository[T], r period.Range, amount func(*T) decimal.Decimal) ([]decimal.Decimal, error) {
	entries, err := repo.ListBetween(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, len(entries))
	for i, e := range entries {
		amounts[i] = amount(e)
	}
	return amounts, nil
}

// EntryRecorded implements EntryObserver. It advances the kind's generation,
// then drops every memoized bucket of that kind.
func (s *ReportService) EntryRecorded(ctx context.Context, event domain.EntryRecorded) {
	if g, ok := s.generations[event.Kind]; ok {
		g.Add(1)
	}
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(string(event.Kind) + ":")
}

// CleanCache drops expired memo entries
func (s *ReportService) CleanCache() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.CleanExpired()
}
