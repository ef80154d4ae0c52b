package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/models"
	"pos-kemasan/repositories"

	"github.com/shopspring/decimal"
)

type FinancialLogInput struct {
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
}

type FinancialService struct {
	store   *repositories.Store
	reports *ReportService
	now     func() time.Time
}

func NewFinancialService(store *repositories.Store, reports *ReportService) *FinancialService {
	return &FinancialService{store: store, reports: reports, now: time.Now}
}

// Create records a manual income or expense entry.
func (s *FinancialService) Create(ctx context.Context, in FinancialLogInput, actor Actor) (*models.FinancialLog, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	typ := models.FinancialType(in.Type)
	if !typ.Valid() {
		return nil, apperr.Validation("type", fmt.Sprintf("type harus salah satu dari: %s, %s.", models.FinancialIncome, models.FinancialExpense))
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "amount harus lebih besar dari 0.")
	}

	entry := &models.FinancialLog{
		Type:        typ,
		Amount:      in.Amount,
		Description: in.Description,
		UserID:      actor.UserID,
	}
	if err := s.store.Financial.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.reports.Invalidate(ctx)
	logger.FromCtx(ctx).Info("financial log created", "id", entry.ID, "type", entry.Type, "amount", entry.Amount.String())
	return entry, nil
}

// List returns the entries of the window, newest first. The default window
// is one day.
func (s *FinancialService) List(ctx context.Context, period string) ([]models.FinancialLog, error) {
	p, ok := models.ParsePeriod(period, models.PeriodDaily)
	if !ok {
		return nil, apperr.Validation("period", fmt.Sprintf("Periode %q tidak dikenal.", period))
	}
	return s.store.Financial.ListSince(ctx, p.Since(s.now()))
}
