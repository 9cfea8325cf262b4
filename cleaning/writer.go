package cleaning

import (
	"context"
	"time"

	"github.com/nugie07/armos-cleaning/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WriteMode selects how a page lands on rows whose natural key already
// exists in Target.
type WriteMode int

const (
	// InsertIfAbsent silently skips existing rows. Safe to re-run;
	// used for first-time transfer.
	InsertIfAbsent WriteMode = iota
	// Merge updates existing rows field-by-field from the incoming
	// record. Used for recurring synchronization.
	Merge
)

func (m WriteMode) String() string {
	if m == Merge {
		return "merge"
	}
	return "insert-if-absent"
}

func (m WriteMode) conflict(columns ...string) clause.OnConflict {
	cols := make([]clause.Column, len(columns))
	for i, c := range columns {
		cols[i] = clause.Column{Name: c}
	}
	if m == Merge {
		return clause.OnConflict{Columns: cols, UpdateAll: true}
	}
	return clause.OnConflict{Columns: cols, DoNothing: true}
}

// writePage applies one page of records inside a single transaction and
// reports how many rows actually landed; under InsertIfAbsent the
// difference from len(recs) is the rows the conflict clause skipped.
// The page either fully commits or fully rolls back; a failure surfaces
// as a *WriteError carrying the page range.
func writePage[T any](ctx context.Context, db *gorm.DB, table string, conflict clause.OnConflict, pageStart int, recs []T) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	var affected int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(conflict).Create(&recs)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, &WriteError{Table: table, PageStart: pageStart, PageEnd: pageStart + len(recs) - 1, Err: err}
	}
	return affected, nil
}

func (t *TargetStore) WriteProducts(ctx context.Context, recs []models.ProductMain, mode WriteMode, pageStart int) (int64, error) {
	return writePage(ctx, t.db, "mst_product_main", mode.conflict("sku"), pageStart, recs)
}

func (t *TargetStore) WriteOrders(ctx context.Context, recs []models.OrderMain, mode WriteMode, pageStart int) (int64, error) {
	return writePage(ctx, t.db, "order_main", mode.conflict("faktur_id"), pageStart, recs)
}

// WriteOrderDetails re-parents a page of Source detail rows onto Target
// order rows (faktur_id lookup) and applies it. Details whose header has
// not been transferred yet are skipped and counted; a line never
// precedes its header in Target.
func (t *TargetStore) WriteOrderDetails(ctx context.Context, details []models.OrderDetail, fakturByOrderID map[int]string, mode WriteMode, pageStart int) (skipped int, err error) {
	if len(details) == 0 {
		return 0, nil
	}

	fakturIDs := make([]string, 0, len(fakturByOrderID))
	seen := make(map[string]bool, len(fakturByOrderID))
	for _, fid := range fakturByOrderID {
		if fid != "" && !seen[fid] {
			seen[fid] = true
			fakturIDs = append(fakturIDs, fid)
		}
	}

	type idRow struct {
		ID       int
		FakturID string
	}
	var idRows []idRow
	qerr := t.db.WithContext(ctx).Model(&models.OrderMain{}).
		Select("id, faktur_id").
		Where("faktur_id IN ?", fakturIDs).
		Find(&idRows).Error
	if qerr != nil {
		return 0, &UnavailableError{Store: "target", Err: qerr}
	}
	targetIDByFaktur := make(map[string]int, len(idRows))
	for _, r := range idRows {
		targetIDByFaktur[r.FakturID] = r.ID
	}

	rows := make([]models.OrderDetailMain, 0, len(details))
	for _, d := range details {
		targetID, ok := targetIDByFaktur[fakturByOrderID[d.OrderID]]
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, detailToMain(d, targetID))
	}

	conflict := mode.conflict("order_id", "product_id", "line_id")
	affected, werr := writePage(ctx, t.db, "order_detail_main", conflict, pageStart, rows)
	if werr != nil {
		return skipped, werr
	}
	skipped += len(rows) - int(affected)
	return skipped, nil
}

// SavePayload persists a payload result, replacing any prior row for the
// same do_number.
func (t *TargetStore) SavePayload(ctx context.Context, rec *models.PayloadResult) error {
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "do_number"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		return &UnavailableError{Store: "target", Err: err}
	}
	return nil
}

func productToMain(p models.Product, syncedAt time.Time) models.ProductMain {
	return models.ProductMain{
		Sku:           p.Sku,
		Height:        p.Height,
		Width:         p.Width,
		Length:        p.Length,
		Name:          p.Name,
		Price:         p.Price,
		TypeProductID: p.TypeProductID,
		Qty:           p.Qty,
		Volume:        p.Volume,
		Weight:        p.Weight,
		BaseUom:       p.BaseUom,
		PackID:        p.PackID,
		WarehouseID:   p.WarehouseID,
		SyncedAt:      syncedAt,
	}
}

func orderToMain(o models.Order) models.OrderMain {
	return models.OrderMain{
		FakturID:            o.FakturID,
		FakturDate:          o.FakturDate,
		DeliveryDate:        o.DeliveryDate,
		DoNumber:            o.DoNumber,
		Status:              o.Status,
		SkipCount:           o.SkipCount,
		CreatedDate:         o.CreatedDate,
		CreatedBy:           o.CreatedBy,
		UpdatedDate:         o.UpdatedDate,
		UpdatedBy:           o.UpdatedBy,
		Notes:               o.Notes,
		CustomerID:          o.CustomerID,
		WarehouseID:         o.WarehouseID,
		DeliveryTypeID:      o.DeliveryTypeID,
		OrderIntegrationID:  o.OrderIntegrationID,
		OriginName:          o.OriginName,
		OriginAddress1:      o.OriginAddress1,
		OriginAddress2:      o.OriginAddress2,
		OriginCity:          o.OriginCity,
		OriginZipcode:       o.OriginZipcode,
		OriginPhone:         o.OriginPhone,
		OriginEmail:         o.OriginEmail,
		DestinationName:     o.DestinationName,
		DestinationAddress1: o.DestinationAddress1,
		DestinationAddress2: o.DestinationAddress2,
		DestinationCity:     o.DestinationCity,
		DestinationZipCode:  o.DestinationZipCode,
		DestinationPhone:    o.DestinationPhone,
		DestinationEmail:    o.DestinationEmail,
		ClientID:            o.ClientID,
		CancelReason:        o.CancelReason,
		RdoIntegrationID:    o.RdoIntegrationID,
		AddressChange:       o.AddressChange,
		Divisi:              o.Divisi,
		PreStatus:           o.PreStatus,
	}
}

func detailToMain(d models.OrderDetail, targetOrderID int) models.OrderDetailMain {
	return models.OrderDetailMain{
		QuantityFaktur:     d.QuantityFaktur,
		NetPrice:           d.NetPrice,
		QuantityWms:        d.QuantityWms,
		QuantityDelivery:   d.QuantityDelivery,
		QuantityLoading:    d.QuantityLoading,
		QuantityUnloading:  d.QuantityUnloading,
		Status:             d.Status,
		CancelReason:       d.CancelReason,
		Notes:              d.Notes,
		OrderID:            targetOrderID,
		ProductID:          d.ProductID,
		UnitID:             d.UnitID,
		PackID:             d.PackID,
		LineID:             d.LineID,
		UnloadingLatitude:  d.UnloadingLatitude,
		UnloadingLongitude: d.UnloadingLongitude,
		OriginUom:          d.OriginUom,
		OriginQty:          d.OriginQty,
		TotalCtn:           d.TotalCtn,
		TotalPcs:           d.TotalPcs,
	}
}
