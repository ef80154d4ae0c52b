package services

import (
	"context"
	"fmt"
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/controllers/idgen"
	"pos-kemasan/logger"
	"pos-kemasan/metrics"
	"pos-kemasan/models"
	"pos-kemasan/notifier"
	"pos-kemasan/repositories"
	"pos-kemasan/types"

	"github.com/shopspring/decimal"
)

type UsageItemInput struct {
	MaterialID   uint            `json:"material_id" validate:"required"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	Notes        string          `json:"notes"`
}

type LogUsageInput struct {
	OrderID uint             `json:"order_id" validate:"required"`
	Items   []UsageItemInput `json:"items" validate:"required,min=1,dive"`
}

type MaterialInput struct {
	Name              string          `json:"name" validate:"required"`
	Unit              string          `json:"unit" validate:"required"`
	CategoryID        *uint           `json:"category_id"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	InitialStock      decimal.Decimal `json:"initial_stock"`
}

type RestockInput struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

// UsageResult describes one committed usage batch.
type UsageResult struct {
	BatchID  types.SnowflakeID    `json:"batch_id"`
	Logs     []models.MaterialLog `json:"logs"`
	LowStock []models.Material    `json:"low_stock"`
}

type MaterialService struct {
	store    *repositories.Store
	notifier notifier.LowStockNotifier
	metrics  *metrics.Metrics
}

func NewMaterialService(store *repositories.Store, n notifier.LowStockNotifier, m *metrics.Metrics) *MaterialService {
	if n == nil {
		n = notifier.LogNotifier{}
	}
	return &MaterialService{store: store, notifier: n, metrics: m}
}

func (s *MaterialService) List(ctx context.Context) ([]models.Material, error) {
	return s.store.Materials.GetAll(ctx)
}

func (s *MaterialService) Logs(ctx context.Context, id uint) ([]models.MaterialLog, error) {
	if _, err := s.store.Materials.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Materials.Logs(ctx, id)
}

// LogUsage applies a batch of production usage against one order. Every
// decrement and every log row commit together or not at all. Stock may go
// negative; materials at or below their threshold afterwards are reported to
// the low stock notifier.
func (s *MaterialService) LogUsage(ctx context.Context, in LogUsageInput, actor Actor) (*UsageResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	for i, it := range in.Items {
		if !it.QuantityUsed.IsPositive() {
			field := fmt.Sprintf("items[%d].quantity_used", i)
			return nil, apperr.Validation(field, field+" harus lebih besar dari 0.")
		}
	}

	exists, err := s.store.Orders.Exists(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Pesanan tidak ditemukan.")
	}

	batch := types.SnowflakeID(idgen.GenerateID())
	orderID := in.OrderID
	logs := make([]models.MaterialLog, len(in.Items))
	ids := make([]uint, 0, len(in.Items))

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		for i, it := range in.Items {
			n, err := tx.Materials.AdjustStock(ctx, it.MaterialID, it.QuantityUsed.Neg())
			if err != nil {
				return err
			}
			if n == 0 {
				// Unknown material: the whole batch is rolled back and
				// surfaces as a storage failure.
				return fmt.Errorf("material %d does not exist", it.MaterialID)
			}

			notes := strings.TrimSpace(it.Notes)
			if notes == "" {
				notes = fmt.Sprintf("Usage for Order #%d", in.OrderID)
			}
			logs[i] = models.MaterialLog{
				BatchID:        batch,
				MaterialID:     it.MaterialID,
				OrderID:        &orderID,
				UserID:         actor.UserID,
				QuantityChange: it.QuantityUsed.Neg(),
				Notes:          notes,
			}
			ids = append(ids, it.MaterialID)
		}
		return tx.Materials.InsertLogs(ctx, logs)
	})
	if err != nil {
		return nil, apperr.Storage("log material usage", err)
	}

	log := logger.FromCtx(ctx)
	log.Info("material usage logged", "order_id", in.OrderID, "batch_id", batch.String(), "items", len(logs))

	materials, err := s.store.Materials.GetByIDs(ctx, ids)
	if err != nil {
		log.Warn("usage committed but materials could not be reloaded", "batch_id", batch.String(), "error", err)
		return &UsageResult{BatchID: batch, Logs: logs}, nil
	}
	names := make(map[uint]string, len(materials))
	for _, m := range materials {
		names[m.ID] = m.Name
	}
	for i := range logs {
		logs[i].MaterialName = names[logs[i].MaterialID]
		s.metrics.MaterialConsumed(logs[i].MaterialName, logs[i].QuantityChange.Neg().InexactFloat64())
	}

	low, err := s.store.Materials.LowStock(ctx, ids)
	if err != nil {
		log.Warn("low stock check failed", "batch_id", batch.String(), "error", err)
		low = nil
	}
	s.alertLowStock(ctx, low)

	return &UsageResult{BatchID: batch, Logs: logs, LowStock: low}, nil
}

func (s *MaterialService) alertLowStock(ctx context.Context, low []models.Material) {
	if len(low) == 0 {
		return
	}
	s.metrics.LowStock(len(low))
	s.notifier.NotifyLowStock(ctx, low)
}

// Create registers a material. A positive initial stock is booked as an
// opening log row in the same transaction.
func (s *MaterialService) Create(ctx context.Context, in MaterialInput, actor Actor) (*models.Material, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.LowStockThreshold.IsNegative() {
		return nil, apperr.Validation("low_stock_threshold", "low_stock_threshold tidak boleh negatif.")
	}
	if in.InitialStock.IsNegative() {
		return nil, apperr.Validation("initial_stock", "initial_stock tidak boleh negatif.")
	}

	material := &models.Material{
		Name:              in.Name,
		Unit:              in.Unit,
		CategoryID:        in.CategoryID,
		LowStockThreshold: in.LowStockThreshold,
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		return s.createMaterial(ctx, tx, material, in.InitialStock, actor)
	})
	if err != nil {
		return nil, apperr.Storage("create material", err)
	}
	s.recordOpeningStock(material)
	return s.store.Materials.GetByID(ctx, material.ID)
}

// recordOpeningStock counts opening stock once the material is committed.
func (s *MaterialService) recordOpeningStock(materials ...*models.Material) {
	for _, m := range materials {
		if m.Stock.IsPositive() {
			s.metrics.MaterialAdded(m.Name, m.Stock.InexactFloat64())
		}
	}
}

// createMaterial runs inside a transaction owned by the caller. Opening stock
// metrics are recorded by the caller after commit.
func (s *MaterialService) createMaterial(ctx context.Context, tx *repositories.Store, material *models.Material, opening decimal.Decimal, actor Actor) error {
	taken, err := tx.Materials.NameTaken(ctx, material.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("Nama bahan sudah ada.")
	}
	if material.CategoryID != nil {
		if _, err := tx.Categories.GetByID(ctx, *material.CategoryID); err != nil {
			return err
		}
	}
	if err := tx.Materials.Create(ctx, material); err != nil {
		return err
	}
	if !opening.IsPositive() {
		return nil
	}
	if _, err := tx.Materials.AdjustStock(ctx, material.ID, opening); err != nil {
		return err
	}
	material.Stock = opening
	return tx.Materials.InsertLogs(ctx, []models.MaterialLog{{
		BatchID:        types.SnowflakeID(idgen.GenerateID()),
		MaterialID:     material.ID,
		UserID:         actor.UserID,
		QuantityChange: opening,
		Notes:          "Stok awal",
	}})
}

// Update changes the descriptive fields. Stock only moves through logged
// usage and restocks.
func (s *MaterialService) Update(ctx context.Context, id uint, in MaterialInput) (*models.Material, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.LowStockThreshold.IsNegative() {
		return nil, apperr.Validation("low_stock_threshold", "low_stock_threshold tidak boleh negatif.")
	}

	material, err := s.store.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.Materials.NameTaken(ctx, in.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Nama bahan sudah ada.")
	}
	if in.CategoryID != nil {
		if _, err := s.store.Categories.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	material.Name = in.Name
	material.Unit = in.Unit
	material.CategoryID = in.CategoryID
	material.LowStockThreshold = in.LowStockThreshold
	if err := s.store.Materials.UpdateDetails(ctx, material); err != nil {
		return nil, err
	}
	return s.store.Materials.GetByID(ctx, id)
}

// Restock adds purchased stock with a positive log row.
func (s *MaterialService) Restock(ctx context.Context, id uint, in RestockInput, actor Actor) (*models.Material, error) {
	if !in.Quantity.IsPositive() {
		return nil, apperr.Validation("quantity", "quantity harus lebih besar dari 0.")
	}
	notes := strings.TrimSpace(in.Notes)
	if notes == "" {
		notes = "Restock"
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		n, err := tx.Materials.AdjustStock(ctx, id, in.Quantity)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("Bahan tidak ditemukan.")
		}
		return tx.Materials.InsertLogs(ctx, []models.MaterialLog{{
			BatchID:        types.SnowflakeID(idgen.GenerateID()),
			MaterialID:     id,
			UserID:         actor.UserID,
			QuantityChange: in.Quantity,
			Notes:          notes,
		}})
	})
	if err != nil {
		return nil, apperr.Storage("restock material", err)
	}

	material, err := s.store.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.MaterialAdded(material.Name, in.Quantity.InexactFloat64())
	logger.FromCtx(ctx).Info("material restocked", "material_id", id, "quantity", in.Quantity.String())
	return material, nil
}
