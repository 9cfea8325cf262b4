package cleaning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nugie07/armos-cleaning/models"
)

func seedCleansedDoc(t *testing.T, db *gorm.DB, doNumber string, fakturDate *time.Time, warehouseID, clientID string, items int) {
	t.Helper()
	doc := models.OutboundDocument{
		OutboundReference: doNumber,
		FakturDate:        fakturDate,
		WarehouseID:       warehouseID,
		ClientID:          clientID,
	}
	require.NoError(t, db.Create(&doc).Error)
	for i := 1; i <= items; i++ {
		require.NoError(t, db.Create(&models.OutboundItem{
			DocumentID: doc.ID,
			ProductID:  "SKU-001",
			LineID:     string(rune('0' + i)),
			Qty:        dec("1"),
			Uom:        "PCS",
		}).Error)
	}
}

func TestCompareReportsOnlyMismatches(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	// Matching counts: silent.
	seedSourceOrder(t, sourceDB, 41, "FKT-41", "B01SI2507-1601", day, "WH1", 4)
	seedCleansedDoc(t, targetDB, "B01SI2507-1601", day, "WH1", "CL1", 4)

	// Target has five extra lines.
	seedSourceOrder(t, sourceDB, 42, "FKT-42", "B01SI2507-1602", day, "WH1", 3)
	seedCleansedDoc(t, targetDB, "B01SI2507-1602", day, "WH1", "CL1", 8)

	// Source-only order: counted against zero.
	seedSourceOrder(t, sourceDB, 43, "FKT-43", "B01SI2507-1603", day, "WH1", 2)

	got, err := svc.Compare(ctx, *datePtr(2025, 7, 1), *datePtr(2025, 7, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "B01SI2507-1602", got[0].DoNumber)
	assert.Equal(t, int64(3), got[0].SourceCount)
	assert.Equal(t, int64(8), got[0].TargetCount)
	assert.Equal(t, int64(5), got[0].Delta)
	assert.Equal(t, "WH1", got[0].WarehouseID)
	assert.Equal(t, "CL1", got[0].ClientID)

	assert.Equal(t, "B01SI2507-1603", got[1].DoNumber)
	assert.Equal(t, int64(2), got[1].SourceCount)
	assert.Equal(t, int64(0), got[1].TargetCount)
	assert.Equal(t, int64(-2), got[1].Delta)
}

func TestCompareIsDeterministic(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	for i, do := range []string{"DO-C", "DO-A", "DO-B"} {
		seedSourceOrder(t, sourceDB, 50+i, "FKT-5"+do[3:], do, day, "WH1", 2)
		seedCleansedDoc(t, targetDB, do, day, "WH1", "CL1", 3)
	}

	first, err := svc.Compare(ctx, *datePtr(2025, 7, 1), *datePtr(2025, 7, 31))
	require.NoError(t, err)
	second, err := svc.Compare(ctx, *datePtr(2025, 7, 1), *datePtr(2025, 7, 31))
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged data yields an identical report")
	require.Len(t, first, 3)
	assert.Equal(t, "DO-A", first[0].DoNumber)
	assert.Equal(t, "DO-B", first[1].DoNumber)
	assert.Equal(t, "DO-C", first[2].DoNumber)
}

func TestCompareEmptyRange(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	seedSourceOrder(t, sourceDB, 41, "FKT-41", "B01SI2507-1601", day, "WH1", 3)
	seedCleansedDoc(t, targetDB, "B01SI2507-1601", day, "WH1", "CL1", 5)

	// A window with no invoices is an empty report, not an error.
	got, err := svc.Compare(ctx, *datePtr(2025, 8, 1), *datePtr(2025, 8, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompareTargetOnlyOrder(t *testing.T) {
	svc, _, targetDB := newTestService(t)
	ctx := context.Background()
	day := datePtr(2025, 7, 16)

	seedCleansedDoc(t, targetDB, "B01SI2507-1609", day, "WH2", "CL2", 4)

	got, err := svc.Compare(ctx, *datePtr(2025, 7, 1), *datePtr(2025, 7, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].SourceCount)
	assert.Equal(t, int64(4), got[0].TargetCount)
	assert.Equal(t, int64(4), got[0].Delta)
}
