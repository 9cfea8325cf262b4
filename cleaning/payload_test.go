package cleaning

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nugie07/armos-cleaning/models"
)

func seedPayloadFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	doc := models.OutboundDocument{
		WarehouseID:       "WH1",
		ClientID:          "CL1",
		OutboundReference: "B01SI2507-1602",
		Divisi:            "RETAIL",
		FakturDate:        datePtr(2025, 7, 16),
		OriginName:        "Main DC",
		DestinationID:     "CUST-9",
		DestinationName:   "Toko Berkah",
		DestinationCity:   "Bandung",
		OrderType:         "REGULAR",
	}
	require.NoError(t, db.Create(&doc).Error)

	boxed := models.OutboundItem{
		DocumentID:         doc.ID,
		WarehouseID:        "WH1",
		LineID:             "1",
		ProductID:          "SKU-001",
		ProductDescription: "Instant Noodles",
		ProductType:        "DRY",
		Qty:                dec("2"),
		Uom:                "CTN",
		PackID:             "P1",
		ProductNetPrice:    decPtr("125000"),
		ImageURL:           `["https://img.example.com/sku-001.jpg"]`,
	}
	require.NoError(t, db.Create(&boxed).Error)
	require.NoError(t, db.Create(&models.OutboundConversion{
		ItemID:      boxed.ID,
		Uom:         "CTN",
		Numerator:   dec("96"),
		Denominator: dec("1"),
	}).Error)

	loose := models.OutboundItem{
		DocumentID: doc.ID,
		LineID:     "2",
		ProductID:  "SKU-002",
		Qty:        dec("30"),
		Uom:        "PCS",
	}
	require.NoError(t, db.Create(&loose).Error)
}

func TestBuildPayloadAssemblesDocument(t *testing.T) {
	svc, _, targetDB := newTestService(t)
	ctx := context.Background()
	seedPayloadFixture(t, targetDB)

	doc, err := svc.BuildPayload(ctx, "B01SI2507-1602")
	require.NoError(t, err)

	assert.Equal(t, "B01SI2507-1602", doc.OutboundReference)
	assert.Equal(t, "WH1", doc.WarehouseID)
	assert.Equal(t, "2025-07-16", doc.FakturDate)
	assert.Equal(t, "", doc.RequestDeliveryDate, "unset dates serialize empty")
	require.Len(t, doc.Items, 2)

	boxed := doc.Items[0]
	assert.Equal(t, "SKU-001", boxed.ProductID)
	assert.Equal(t, 2.0, boxed.Qty)
	assert.Equal(t, "CTN", boxed.Uom)
	assert.Equal(t, 125000.0, boxed.ProductNetPrice)
	require.Len(t, boxed.Conversion, 1)
	assert.Equal(t, "CTN", boxed.Conversion[0].Uom)
	assert.Equal(t, 96.0, boxed.Conversion[0].Numerator)
	assert.Equal(t, 1.0, boxed.Conversion[0].Denominator)
	assert.Equal(t, []string{"https://img.example.com/sku-001.jpg"}, boxed.ImageURL)

	loose := doc.Items[1]
	assert.Empty(t, loose.Conversion)
	assert.Equal(t, 0.0, loose.ProductNetPrice)
	assert.Equal(t, []string{""}, loose.ImageURL, "missing image keeps the placeholder")
}

func TestBuildPayloadUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.BuildPayload(context.Background(), "UNKNOWN-ID")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreatePayloadPersistsCountsAndReplaces(t *testing.T) {
	svc, sourceDB, targetDB := newTestService(t)
	ctx := context.Background()
	seedPayloadFixture(t, targetDB)

	// The same order has three lines on the TMS side.
	seedSourceOrder(t, sourceDB, 42, "FKT-42", "B01SI2507-1602", datePtr(2025, 7, 16), "WH1", 3)

	_, rec, err := svc.CreatePayload(ctx, "B01SI2507-1602")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.DbACount)
	assert.Equal(t, int64(2), rec.DbBCount)
	assert.Equal(t, int64(1), rec.DiscrepancyCount)
	assert.Equal(t, "created", rec.Status)
	assert.Equal(t, "WH1", rec.WarehouseID)

	var stored models.PayloadResult
	require.NoError(t, targetDB.First(&stored, "do_number = ?", "B01SI2507-1602").Error)
	var doc PayloadDocument
	require.NoError(t, json.Unmarshal([]byte(stored.PayloadData), &doc))
	assert.Len(t, doc.Items, 2)

	// Rebuilding replaces the stored row instead of stacking a second one.
	_, _, err = svc.CreatePayload(ctx, "B01SI2507-1602")
	require.NoError(t, err)
	var n int64
	require.NoError(t, targetDB.Model(&models.PayloadResult{}).
		Where("do_number = ?", "B01SI2507-1602").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestGetPayloadRoundTrip(t *testing.T) {
	svc, _, targetDB := newTestService(t)
	ctx := context.Background()
	seedPayloadFixture(t, targetDB)

	_, err := svc.GetPayload(ctx, "B01SI2507-1602")
	assert.ErrorIs(t, err, ErrPayloadNotFound)

	_, created, err := svc.CreatePayload(ctx, "B01SI2507-1602")
	require.NoError(t, err)

	got, err := svc.GetPayload(ctx, "B01SI2507-1602")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.JSONEq(t, created.PayloadData, got.PayloadData)

	list, err := svc.ListPayloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B01SI2507-1602", list[0].DoNumber)
}

func TestParseImageURLs(t *testing.T) {
	assert.Equal(t, []string{""}, parseImageURLs(""))
	assert.Equal(t, []string{""}, parseImageURLs("[]"))
	assert.Equal(t, []string{"a", "b"}, parseImageURLs(`["a","b"]`))
	assert.Equal(t, []string{"https://x/y.jpg"}, parseImageURLs("https://x/y.jpg"),
		"a bare URL is wrapped rather than dropped")
}
