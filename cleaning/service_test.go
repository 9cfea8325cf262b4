package cleaning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nugie07/armos-cleaning/models"
)

func TestCopyProductsInsertIfAbsentIsIdempotent(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()

	for _, sku := range []string{"SKU-001", "SKU-002", "SKU-003"} {
		require.NoError(t, sourceDB.Create(&models.Product{
			Sku: sku, Name: "Widget " + sku, BaseUom: "PCS", Price: dec("1500"),
		}).Error)
	}

	rep, err := svc.CopyProducts(ctx, InsertIfAbsent, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rep.Copied)
	assert.True(t, rep.Completed)

	// Re-running lands on the same natural keys without duplicating,
	// and the report shows the rows the conflict clause left alone.
	rep, err = svc.CopyProducts(ctx, InsertIfAbsent, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.Copied)
	assert.Equal(t, int64(3), rep.Skipped)

	var n int64
	require.NoError(t, targetDB.Model(&models.ProductMain{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}

func TestCopyProductsMergeRefreshesExisting(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()

	require.NoError(t, sourceDB.Create(&models.Product{Sku: "SKU-001", Name: "Old name"}).Error)
	_, err := svc.CopyProducts(ctx, InsertIfAbsent, Options{})
	require.NoError(t, err)

	require.NoError(t, sourceDB.Model(&models.Product{}).
		Where("sku = ?", "SKU-001").Update("name", "New name").Error)

	// InsertIfAbsent leaves the stale row alone.
	_, err = svc.CopyProducts(ctx, InsertIfAbsent, Options{})
	require.NoError(t, err)
	var p models.ProductMain
	require.NoError(t, targetDB.First(&p, "sku = ?", "SKU-001").Error)
	assert.Equal(t, "Old name", p.Name)

	// Merge refreshes it.
	_, err = svc.CopyProducts(ctx, Merge, Options{})
	require.NoError(t, err)
	require.NoError(t, targetDB.First(&p, "sku = ?", "SKU-001").Error)
	assert.Equal(t, "New name", p.Name)

	var n int64
	require.NoError(t, targetDB.Model(&models.ProductMain{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "merge must not duplicate")
}

func TestCopyOrdersReparentsDetails(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	seedSourceOrder(t, sourceDB, 41, "FKT-41", "B01SI2507-1601", day, "WH1", 2)
	seedSourceOrder(t, sourceDB, 42, "FKT-42", "B01SI2507-1602", day, "WH1", 3)

	filter := OrderFilter{StartDate: *datePtr(2025, 7, 1), EndDate: *datePtr(2025, 7, 31)}
	rep, err := svc.CopyOrders(ctx, filter, InsertIfAbsent, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rep.Orders.Copied)
	assert.Equal(t, int64(5), rep.Details.Copied)
	assert.Equal(t, int64(0), rep.Details.Skipped)

	// Lines hang off the warehouse's own header ids, not the TMS ones.
	var header models.OrderMain
	require.NoError(t, targetDB.First(&header, "faktur_id = ?", "FKT-42").Error)
	var lines []models.OrderDetailMain
	require.NoError(t, targetDB.Where("order_id = ?", header.ID).Find(&lines).Error)
	assert.Len(t, lines, 3)

	// Second run is a no-op for both phases.
	rep, err = svc.CopyOrders(ctx, filter, InsertIfAbsent, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.Orders.Copied)
	assert.Equal(t, int64(2), rep.Orders.Skipped)
	assert.Equal(t, int64(0), rep.Details.Copied)
	assert.Equal(t, int64(5), rep.Details.Skipped)
	var headerCount, lineCount int64
	require.NoError(t, targetDB.Model(&models.OrderMain{}).Count(&headerCount).Error)
	require.NoError(t, targetDB.Model(&models.OrderDetailMain{}).Count(&lineCount).Error)
	assert.Equal(t, int64(2), headerCount)
	assert.Equal(t, int64(5), lineCount)
}

func TestCopyOrdersHonorsWarehouseFilter(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	seedSourceOrder(t, sourceDB, 41, "FKT-41", "B01SI2507-1601", day, "WH1", 1)
	seedSourceOrder(t, sourceDB, 42, "FKT-42", "B01SI2507-1602", day, "WH2", 1)

	filter := OrderFilter{StartDate: *datePtr(2025, 7, 1), EndDate: *datePtr(2025, 7, 31), WarehouseID: "WH1"}
	_, err := svc.CopyOrders(ctx, filter, InsertIfAbsent, Options{})
	require.NoError(t, err)

	var headers []models.OrderMain
	require.NoError(t, targetDB.Find(&headers).Error)
	require.Len(t, headers, 1)
	assert.Equal(t, "FKT-41", headers[0].FakturID)
}

func TestCopyOrdersSkipsHeaderlessLines(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	seedSourceOrder(t, sourceDB, 41, "FKT-41", "B01SI2507-1601", day, "WH1", 2)
	// An order whose faktur_id is blank can never land in Target.
	seedSourceOrder(t, sourceDB, 42, "", "B01SI2507-1602", day, "WH1", 3)

	filter := OrderFilter{StartDate: *datePtr(2025, 7, 1), EndDate: *datePtr(2025, 7, 31)}
	rep, err := svc.CopyOrders(ctx, filter, InsertIfAbsent, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rep.Details.Skipped)
	assert.Equal(t, int64(2), rep.Details.Copied)

	var lineCount int64
	require.NoError(t, targetDB.Model(&models.OrderDetailMain{}).Count(&lineCount).Error)
	assert.Equal(t, int64(2), lineCount, "a line never precedes its header")
}

func seedRawOutbound(t *testing.T, db *gorm.DB, fakturID string, items int, uom string, numerator string) {
	t.Helper()
	doc := models.RawOutboundDocument{DocumentReference: fakturID, Status: "NEW"}
	require.NoError(t, db.Create(&doc).Error)
	for i := 1; i <= items; i++ {
		item := models.RawOutboundItem{
			OutboundDocumentID: doc.ID,
			ProductID:          "SKU-001",
			LineID:             fmt.Sprintf("%d", i),
			Qty:                dec("2"),
			Uom:                uom,
		}
		require.NoError(t, db.Create(&item).Error)
		if numerator != "" {
			require.NoError(t, db.Create(&models.RawOutboundConversion{
				OutboundItemID: item.ID,
				Numerator:      dec(numerator),
				Denominator:    dec("1"),
				FromUom:        uom,
				ToUom:          "PCS",
			}).Error)
		}
	}
}

func TestFillOrderDetailsBackfillsPendingOrders(t *testing.T) {
	svc, _, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	// One order already has lines, two are pending.
	withLines := models.OrderMain{FakturID: "FKT-40", DoNumber: "DO-40", FakturDate: day, WarehouseID: "WH1"}
	require.NoError(t, targetDB.Create(&withLines).Error)
	require.NoError(t, targetDB.Create(&models.OrderDetailMain{
		OrderID: withLines.ID, ProductID: "SKU-001", LineID: "1", QuantityFaktur: decPtr("5"),
	}).Error)

	for _, fid := range []string{"FKT-41", "FKT-42"} {
		require.NoError(t, targetDB.Create(&models.OrderMain{
			FakturID: fid, DoNumber: "DO-" + fid[4:], FakturDate: day, WarehouseID: "WH1",
		}).Error)
	}
	seedRawOutbound(t, targetDB, "FKT-41", 2, "CTN", "96")
	seedRawOutbound(t, targetDB, "FKT-42", 1, "PCS", "")

	rep, err := svc.FillOrderDetails(ctx, OrderFilter{
		StartDate: *datePtr(2025, 7, 1), EndDate: *datePtr(2025, 7, 31),
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rep.Total, "only the two pending orders are in scope")
	assert.Equal(t, int64(3), rep.Copied)
	assert.True(t, rep.Completed)

	var header models.OrderMain
	require.NoError(t, targetDB.First(&header, "faktur_id = ?", "FKT-41").Error)
	var lines []models.OrderDetailMain
	require.NoError(t, targetDB.Where("order_id = ?", header.ID).Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].QuantityFaktur.Equal(dec("192")), "2 CTN expanded by 96")
	require.NotNil(t, lines[0].TotalCtn)
	assert.True(t, lines[0].TotalCtn.Equal(dec("2")))

	// The order that already had lines keeps exactly its one line.
	var count int64
	require.NoError(t, targetDB.Model(&models.OrderDetailMain{}).
		Where("order_id = ?", withLines.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A second fill finds nothing pending.
	rep, err = svc.FillOrderDetails(ctx, OrderFilter{
		StartDate: *datePtr(2025, 7, 1), EndDate: *datePtr(2025, 7, 31),
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.Total)
}

func TestFillOrderDetailsWithoutFilterCoversAllPending(t *testing.T) {
	svc, _, targetDB := newTestService(t)
	ctx := context.Background()

	require.NoError(t, targetDB.Create(&models.OrderMain{
		FakturID: "FKT-50", DoNumber: "DO-50", FakturDate: datePtr(2025, 7, 16), WarehouseID: "WH1",
	}).Error)
	seedRawOutbound(t, targetDB, "FKT-50", 1, "PCS", "")

	rep, err := svc.FillOrderDetails(ctx, OrderFilter{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.Total, "an empty filter matches every pending order")
	assert.Equal(t, int64(1), rep.Copied)
	assert.True(t, rep.Completed)

	var count int64
	require.NoError(t, targetDB.Model(&models.OrderDetailMain{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestValidateProductsReportsMismatch(t *testing.T) {
	svc, sourceDB, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, sourceDB.Create(&models.Product{Sku: "SKU-001"}).Error)
	require.NoError(t, sourceDB.Create(&models.Product{Sku: "SKU-002"}).Error)

	res, err := svc.ValidateProducts(ctx)
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, int64(2), res.SourceCount)
	assert.Equal(t, int64(0), res.TargetCount)

	_, err = svc.CopyProducts(ctx, InsertIfAbsent, Options{})
	require.NoError(t, err)

	res, err = svc.ValidateProducts(ctx)
	require.NoError(t, err)
	assert.True(t, res.Match)
}
