package repositories

import (
	"context"
	"errors"

	"pos-kemasan/apperr"

	"gorm.io/gorm"
)

// Store groups the repositories over one *gorm.DB. Inside Transaction every
// repository shares the transaction's connection.
type Store struct {
	DB *gorm.DB

	Users      *UserRepository
	Orders     *OrderRepository
	History    *HistoryRepository
	Materials  *MaterialRepository
	Categories *CategoryRepository
	Financial  *FinancialRepository
	Reports    *ReportRepository
}

func NewStore(DB *gorm.DB) *Store {
	return &Store{
		DB:         DB,
		Users:      NewUserRepository(DB),
		Orders:     NewOrderRepository(DB),
		History:    NewHistoryRepository(DB),
		Materials:  NewMaterialRepository(DB),
		Categories: NewCategoryRepository(DB),
		Financial:  NewFinancialRepository(DB),
		Reports:    NewReportRepository(DB),
	}
}

// Transaction runs fn as one unit of work on a single connection. It commits
// when fn returns nil and rolls back when fn returns an error or panics; the
// connection goes back to the pool on every path.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// translate maps driver errors onto the apperr taxonomy. Typed errors pass
// through untouched.
func translate(op string, err error, notFound, duplicate string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != "":
		return apperr.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicate != "":
		return apperr.Conflict(duplicate)
	}
	return apperr.Storage(op, err)
}
