package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pos-kemasan/apperr"
	"pos-kemasan/cache"
	"pos-kemasan/logger"
	"pos-kemasan/metrics"
	"pos-kemasan/models"
	"pos-kemasan/repositories"

	"github.com/shopspring/decimal"
)

const reportKeyPrefix = "report:"

type ReportService struct {
	store   *repositories.Store
	cache   cache.ReportCache
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReportService(store *repositories.Store, c cache.ReportCache, ttl time.Duration, m *metrics.Metrics) *ReportService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ReportService{store: store, cache: c, ttl: ttl, metrics: m, now: time.Now}
}

// Invalidate drops every cached report. Safe on a nil receiver.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, reportKeyPrefix); err != nil {
		logger.FromCtx(ctx).Warn("report cache invalidation failed", "error", err)
	}
}

func (s *ReportService) window(raw string, def models.Period) (models.Period, time.Time, error) {
	p, ok := models.ParsePeriod(raw, def)
	if !ok {
		return "", time.Time{}, apperr.Validation("period",
			fmt.Sprintf("Periode %q tidak dikenal. Gunakan daily, weekly, monthly atau yearly.", raw))
	}
	return p, p.Since(s.now()), nil
}

// cached serves name/period from the cache or computes it with load and stores
// the result. Cache failures never fail the report.
func (s *ReportService) cached(ctx context.Context, name string, p models.Period, dest interface{}, load func() error) error {
	key := reportKeyPrefix + name + ":" + string(p)
	log := logger.FromCtx(ctx)

	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn("report cache read failed", "key", key, "error", err)
	}
	s.metrics.CacheLookup(name, hit)
	if hit {
		return nil
	}

	if err := load(); err != nil {
		return err
	}
	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, dest, s.ttl); err != nil {
			log.Warn("report cache write failed", "key", key, "error", err)
		}
	}
	return nil
}

// SalesSummary counts orders, revenue and distinct customers in the window.
func (s *ReportService) SalesSummary(ctx context.Context, period string) (*models.SalesSummary, error) {
	p, since, err := s.window(period, models.PeriodWeekly)
	if err != nil {
		return nil, err
	}
	var summary models.SalesSummary
	err = s.cached(ctx, "sales-summary", p, &summary, func() error {
		totals, err := s.store.Reports.SalesTotals(ctx, since)
		if err != nil {
			return err
		}
		summary = models.SalesSummary{
			TotalOrders:  totals.TotalOrders,
			TotalRevenue: totals.TotalRevenue,
			NewCustomers: totals.NewCustomers,
			Period:       p,
			Since:        since,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SalesOverTime sums order totals per day, or per month for yearly, in
// ascending date order.
func (s *ReportService) SalesOverTime(ctx context.Context, period string) ([]models.SalesPoint, error) {
	p, since, err := s.window(period, models.PeriodWeekly)
	if err != nil {
		return nil, err
	}
	points := []models.SalesPoint{}
	err = s.cached(ctx, "sales-over-time", p, &points, func() error {
		rows, err := s.store.Reports.OrderAmounts(ctx, since)
		if err != nil {
			return err
		}
		points = bucketSales(rows, p.BucketLayout())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func bucketSales(rows []repositories.OrderAmount, layout string) []models.SalesPoint {
	points := []models.SalesPoint{}
	index := map[string]int{}
	for _, r := range rows {
		date := r.CreatedAt.Format(layout)
		i, ok := index[date]
		if !ok {
			i = len(points)
			index[date] = i
			points = append(points, models.SalesPoint{Date: date, Total: decimal.Zero})
		}
		points[i].Total = points[i].Total.Add(r.TotalPrice)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// SalesDetail lists every item sold in the window, newest order first.
func (s *ReportService) SalesDetail(ctx context.Context, period string) ([]models.SalesDetailRow, error) {
	p, since, err := s.window(period, models.PeriodWeekly)
	if err != nil {
		return nil, err
	}
	rows := []models.SalesDetailRow{}
	err = s.cached(ctx, "sales-detail", p, &rows, func() error {
		r, err := s.store.Reports.SalesDetail(ctx, since)
		if err != nil {
			return err
		}
		if r != nil {
			rows = r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FinancialTransactions merges completed orders as income with the manual
// financial log, newest first, and totals both sides.
func (s *ReportService) FinancialTransactions(ctx context.Context, period string) (*models.FinancialReport, error) {
	p, since, err := s.window(period, models.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	var report models.FinancialReport
	err = s.cached(ctx, "financial-transactions", p, &report, func() error {
		orders, err := s.store.Reports.CompletedOrders(ctx, since)
		if err != nil {
			return err
		}
		logs, err := s.store.Financial.ListSince(ctx, since)
		if err != nil {
			return err
		}
		report = buildFinancialReport(orders, logs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func buildFinancialReport(orders []models.Order, logs []models.FinancialLog) models.FinancialReport {
	report := models.FinancialReport{
		Transactions: make([]models.FinancialTransaction, 0, len(orders)+len(logs)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, o := range orders {
		report.Transactions = append(report.Transactions, models.FinancialTransaction{
			Date:        o.CreatedAt,
			Type:        models.FinancialIncome,
			Amount:      o.TotalPrice,
			Description: fmt.Sprintf("Penjualan dari Pesanan #%d - %s", o.ID, o.CustomerName),
			UserName:    o.CreatedByName,
		})
	}
	for _, l := range logs {
		report.Transactions = append(report.Transactions, models.FinancialTransaction{
			Date:        l.CreatedAt,
			Type:        l.Type,
			Amount:      l.Amount,
			Description: l.Description,
			UserName:    l.UserName,
		})
	}
	sort.SliceStable(report.Transactions, func(i, j int) bool {
		return report.Transactions[i].Date.After(report.Transactions[j].Date)
	})
	for _, t := range report.Transactions {
		if t.Type == models.FinancialIncome {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
		} else {
			report.TotalExpense = report.TotalExpense.Add(t.Amount)
		}
	}
	report.Balance = report.TotalIncome.Sub(report.TotalExpense)
	return report
}
