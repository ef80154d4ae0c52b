package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"pos-kemasan/apperr"
	"pos-kemasan/metrics"
	"pos-kemasan/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestLogUsageDecrementsStockAndWritesOneBatch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	operator := seedUser(t, store, models.RoleOperator)
	kertas := seedMaterial(t, store, "Kertas Art Paper", 500, 50)
	tinta := seedMaterial(t, store, "Tinta Cyan", 20, 5)

	order, err := NewOrderService(store, nil, nil).Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	notify := &recordingNotifier{}
	m := metrics.New()
	svc := NewMaterialService(store, notify, m)

	res, err := svc.LogUsage(ctx, LogUsageInput{
		OrderID: order.ID,
		Items: []UsageItemInput{
			{MaterialID: kertas.ID, QuantityUsed: decimal.NewFromInt(120)},
			{MaterialID: tinta.ID, QuantityUsed: decimal.NewFromInt(2), Notes: "cetak ulang"},
		},
	}, operator)
	require.NoError(t, err)
	require.Len(t, res.Logs, 2)
	assert.NotZero(t, res.BatchID)
	assert.Empty(t, res.LowStock)
	assert.Empty(t, notify.calls())

	assert.True(t, decimal.NewFromInt(380).Equal(stockOf(t, store, kertas.ID)))
	assert.True(t, decimal.NewFromInt(18).Equal(stockOf(t, store, tinta.ID)))

	logs, err := svc.Logs(ctx, kertas.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, res.BatchID, logs[0].BatchID)
	assert.True(t, decimal.NewFromInt(-120).Equal(logs[0].QuantityChange))
	assert.Equal(t, fmt.Sprintf("Usage for Order #%d", order.ID), logs[0].Notes)
	require.NotNil(t, logs[0].OrderID)
	assert.Equal(t, order.ID, *logs[0].OrderID)
	assert.Equal(t, "User operator", logs[0].UserName)

	tintaLogs, err := svc.Logs(ctx, tinta.ID)
	require.NoError(t, err)
	require.Len(t, tintaLogs, 1)
	assert.Equal(t, res.BatchID, tintaLogs[0].BatchID)
	assert.Equal(t, "cetak ulang", tintaLogs[0].Notes)

	assert.Equal(t, 120.0, testutil.ToFloat64(m.MaterialUsed.WithLabelValues("Kertas Art Paper")))
}

func TestLogUsageUnknownMaterialRollsBackEverything(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	operator := seedUser(t, store, models.RoleOperator)
	kertas := seedMaterial(t, store, "Kertas Art Paper", 500, 50)

	order, err := NewOrderService(store, nil, nil).Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	svc := NewMaterialService(store, nil, nil)
	_, err = svc.LogUsage(ctx, LogUsageInput{
		OrderID: order.ID,
		Items: []UsageItemInput{
			{MaterialID: kertas.ID, QuantityUsed: decimal.NewFromInt(100)},
			{MaterialID: 424242, QuantityUsed: decimal.NewFromInt(1)},
		},
	}, operator)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	assert.True(t, decimal.NewFromInt(500).Equal(stockOf(t, store, kertas.ID)))
	assert.Zero(t, countRows(t, store.DB, &models.MaterialLog{}))
}

func TestLogUsageValidatesBeforeTouchingStorage(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	operator := seedUser(t, store, models.RoleOperator)
	kertas := seedMaterial(t, store, "Kertas Art Paper", 500, 50)
	order, err := NewOrderService(store, nil, nil).Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	svc := NewMaterialService(store, nil, nil)

	_, err = svc.LogUsage(ctx, LogUsageInput{OrderID: order.ID}, operator)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "items", apperr.FieldOf(err))

	_, err = svc.LogUsage(ctx, LogUsageInput{
		OrderID: order.ID,
		Items:   []UsageItemInput{{MaterialID: kertas.ID, QuantityUsed: decimal.Zero}},
	}, operator)
	assert.Equal(t, "items[0].quantity_used", apperr.FieldOf(err))

	_, err = svc.LogUsage(ctx, LogUsageInput{
		OrderID: 9999,
		Items:   []UsageItemInput{{MaterialID: kertas.ID, QuantityUsed: decimal.NewFromInt(1)}},
	}, operator)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.True(t, decimal.NewFromInt(500).Equal(stockOf(t, store, kertas.ID)))
	assert.Zero(t, countRows(t, store.DB, &models.MaterialLog{}))
}

func TestLogUsageNotifiesLowStockAndAllowsNegative(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	operator := seedUser(t, store, models.RoleOperator)
	plastik := seedMaterial(t, store, "Plastik OPP", 10, 8)
	kertas := seedMaterial(t, store, "Kertas Kraft", 100, 10)
	order, err := NewOrderService(store, nil, nil).Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	notify := &recordingNotifier{}
	m := metrics.New()
	svc := NewMaterialService(store, notify, m)

	res, err := svc.LogUsage(ctx, LogUsageInput{
		OrderID: order.ID,
		Items: []UsageItemInput{
			{MaterialID: plastik.ID, QuantityUsed: decimal.NewFromInt(15)},
			{MaterialID: kertas.ID, QuantityUsed: decimal.NewFromInt(5)},
		},
	}, operator)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(-5).Equal(stockOf(t, store, plastik.ID)))
	require.Len(t, res.LowStock, 1)
	assert.Equal(t, "Plastik OPP", res.LowStock[0].Name)
	assert.True(t, res.LowStock[0].IsLowStock)

	calls := notify.calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 1)
	assert.Equal(t, plastik.ID, calls[0][0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LowStockAlerts))
}

func TestCreateMaterialBooksOpeningStock(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	category := &models.MaterialCategory{Name: "Kertas"}
	require.NoError(t, store.Categories.Create(ctx, category))

	svc := NewMaterialService(store, nil, nil)
	material, err := svc.Create(ctx, MaterialInput{
		Name:              "  Kertas Ivory 230  ",
		Unit:              "lembar",
		CategoryID:        &category.ID,
		LowStockThreshold: decimal.NewFromInt(100),
		InitialStock:      decimal.NewFromInt(1000),
	}, manajer)
	require.NoError(t, err)
	assert.Equal(t, "Kertas Ivory 230", material.Name)
	assert.True(t, decimal.NewFromInt(1000).Equal(material.Stock))
	assert.False(t, material.IsLowStock)
	require.NotNil(t, material.Category)
	assert.Equal(t, "Kertas", material.Category.Name)

	logs, err := svc.Logs(ctx, material.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, decimal.NewFromInt(1000).Equal(logs[0].QuantityChange))
	assert.Nil(t, logs[0].OrderID)

	_, err = svc.Create(ctx, MaterialInput{Name: "Kertas Ivory 230", Unit: "lembar"}, manajer)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	missing := uint(999)
	_, err = svc.Create(ctx, MaterialInput{Name: "Lem", Unit: "kg", CategoryID: &missing}, manajer)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Create(ctx, MaterialInput{Name: "Lem", Unit: "kg", InitialStock: decimal.NewFromInt(-1)}, manajer)
	assert.Equal(t, "initial_stock", apperr.FieldOf(err))
}

func TestUpdateMaterialNeverTouchesStock(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kertas := seedMaterial(t, store, "Kertas Art Paper", 500, 50)
	seedMaterial(t, store, "Tinta Cyan", 20, 5)
	svc := NewMaterialService(store, nil, nil)

	updated, err := svc.Update(ctx, kertas.ID, MaterialInput{
		Name:              "Kertas Art Paper 150",
		Unit:              "rim",
		LowStockThreshold: decimal.NewFromInt(600),
		InitialStock:      decimal.NewFromInt(99999),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kertas Art Paper 150", updated.Name)
	assert.Equal(t, "rim", updated.Unit)
	assert.True(t, decimal.NewFromInt(500).Equal(updated.Stock))
	assert.True(t, updated.IsLowStock)

	_, err = svc.Update(ctx, kertas.ID, MaterialInput{Name: "Tinta Cyan", Unit: "botol"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = svc.Update(ctx, 9999, MaterialInput{Name: "Apa Saja", Unit: "pcs"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	tinta := seedMaterial(t, store, "Tinta Magenta", 2, 5)
	svc := NewMaterialService(store, nil, nil)

	material, err := svc.Restock(ctx, tinta.ID, RestockInput{Quantity: decimal.NewFromInt(10)}, manajer)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(material.Stock))
	assert.False(t, material.IsLowStock)

	logs, err := svc.Logs(ctx, tinta.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Restock", logs[0].Notes)
	assert.True(t, decimal.NewFromInt(10).Equal(logs[0].QuantityChange))

	_, err = svc.Restock(ctx, tinta.ID, RestockInput{Quantity: decimal.NewFromInt(-3)}, manajer)
	assert.Equal(t, "quantity", apperr.FieldOf(err))

	_, err = svc.Restock(ctx, 9999, RestockInput{Quantity: decimal.NewFromInt(3)}, manajer)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListMaterialsSortedWithLowStockFlag(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seedMaterial(t, store, "Tinta Kuning", 3, 5)
	seedMaterial(t, store, "Kertas Duplex", 300, 50)
	svc := NewMaterialService(store, nil, nil)

	materials, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.Equal(t, "Kertas Duplex", materials[0].Name)
	assert.False(t, materials[0].IsLowStock)
	assert.Equal(t, "Tinta Kuning", materials[1].Name)
	assert.True(t, materials[1].IsLowStock)
}

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportMaterials(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	require.NoError(t, store.Categories.Create(ctx, &models.MaterialCategory{Name: "Tinta"}))
	seedMaterial(t, store, "Tinta Hitam", 10, 2)

	header := make([]interface{}, len(ImportColumns))
	for i, c := range ImportColumns {
		header[i] = c
	}
	file := workbook(t,
		header,
		[]interface{}{"Tinta Cyan", "botol", "Tinta", "2", "12"},
		[]interface{}{"Tinta Hitam", "botol", "Tinta", "2", "5"},
		[]interface{}{"Lem Kertas", "", "", "1", "1"},
		[]interface{}{"Plastik PE", "roll", "Plastik", "1", "1"},
		[]interface{}{"Karton Box", "pcs", "", "abc", "1"},
		[]interface{}{"Pita", "roll", "", "", ""},
		[]interface{}{"Tinta Cyan", "botol", "Tinta", "2", "12"},
	)

	svc := NewMaterialService(store, nil, nil)
	res, err := svc.Import(ctx, file, manajer)
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalRows)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 2, res.SkippedCount)
	assert.Equal(t, []string{"Tinta Hitam", "Tinta Cyan"}, res.SkippedItems)
	assert.Equal(t, 3, res.ErrorCount)
	require.Len(t, res.ErrorMessages, 3)
	assert.Contains(t, res.ErrorMessages[0], "Row 4")
	assert.Contains(t, res.ErrorMessages[1], "Plastik")
	assert.Contains(t, res.ErrorMessages[2], "LOW_STOCK_THRESHOLD")

	cyan, err := store.Materials.GetAll(ctx)
	require.NoError(t, err)
	names := make([]string, len(cyan))
	for i, m := range cyan {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"Pita", "Tinta Cyan", "Tinta Hitam"}, names)
	assert.True(t, decimal.NewFromInt(12).Equal(cyan[1].Stock))
	require.NotNil(t, cyan[1].Category)
	assert.Equal(t, "Tinta", cyan[1].Category.Name)
	assert.Zero(t, cyan[0].Stock.IntPart())
}

func TestImportRejectsUnreadableFile(t *testing.T) {
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	svc := NewMaterialService(store, nil, nil)

	_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not a workbook")), manajer)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	onlyHeader := workbook(t, []interface{}{"NAME", "UNIT"})
	_, err = svc.Import(context.Background(), onlyHeader, manajer)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func importHeader() []interface{} {
	header := make([]interface{}, len(ImportColumns))
	for i, c := range ImportColumns {
		header[i] = c
	}
	return header
}

func TestMaterialNamesCompareCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	seedMaterial(t, store, "Kertas Kraft", 10, 2)
	svc := NewMaterialService(store, nil, nil)

	_, err := svc.Create(ctx, MaterialInput{Name: "kertas kraft", Unit: "lembar"}, manajer)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	file := workbook(t,
		importHeader(),
		[]interface{}{"KERTAS KRAFT", "lembar", "", "1", "1"},
		[]interface{}{"Lem", "kg", "", "1,5", "2.5"},
		[]interface{}{"LEM", "kg", "", "", ""},
		[]interface{}{"Karton", "pcs", "", "", "1.000"},
	)
	res, err := svc.Import(ctx, file, manajer)
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, []string{"KERTAS KRAFT", "LEM"}, res.SkippedItems)
	require.Len(t, res.ErrorMessages, 1)
	assert.Contains(t, res.ErrorMessages[0], "INITIAL_STOCK '1.000'")
	assert.Contains(t, res.ErrorMessages[0], "thousands separators")

	all, err := store.Materials.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Lem", all[1].Name)
	assert.Equal(t, "1.5", all[1].LowStockThreshold.String())
	assert.Equal(t, "2.5", all[1].Stock.String())
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		cell    string
		want    string
		wantErr bool
	}{
		{cell: "", want: "0"},
		{cell: " 12 ", want: "12"},
		{cell: "1,5", want: "1.5"},
		{cell: "2.25", want: "2.25"},
		{cell: "0.125", want: "0.125"},
		{cell: "1000", want: "1000"},
		{cell: "1.000", wantErr: true},
		{cell: "12,500", wantErr: true},
		{cell: "1.000.000", wantErr: true},
		{cell: "-3", wantErr: true},
		{cell: "abc", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.cell, func(t *testing.T) {
			got, err := parseQuantity(tc.cell)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestImportRollbackRecordsNoOpeningStock(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	manajer := seedUser(t, store, models.RoleManajer)
	m := metrics.New()
	svc := NewMaterialService(store, nil, m)

	logWrites := 0
	require.NoError(t, store.DB.Callback().Create().Before("gorm:create").Register("test:fail_second_log", func(tx *gorm.DB) {
		if tx.Statement.Table == "material_logs" {
			logWrites++
			if logWrites == 2 {
				tx.AddError(errors.New("disk full"))
			}
		}
	}))

	file := workbook(t,
		importHeader(),
		[]interface{}{"Tinta Cyan", "botol", "", "2", "12"},
		[]interface{}{"Tinta Magenta", "botol", "", "2", "8"},
	)
	_, err := svc.Import(ctx, file, manajer)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	all, err := store.Materials.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Zero(t, testutil.CollectAndCount(m.MaterialRestocked))

	require.NoError(t, store.DB.Callback().Create().Remove("test:fail_second_log"))
	file = workbook(t,
		importHeader(),
		[]interface{}{"Tinta Cyan", "botol", "", "2", "12"},
	)
	_, err = svc.Import(ctx, file, manajer)
	require.NoError(t, err)
	assert.Equal(t, 12.0, testutil.ToFloat64(m.MaterialRestocked.WithLabelValues("Tinta Cyan")))
}
