package cleaning

import (
	"context"
	"time"

	"github.com/nugie07/armos-cleaning/models"
	"gorm.io/gorm"
)

// SourceStore reads the main TMS database (Database A). All listings are
// ordered by a stable key so page boundaries are deterministic across
// re-runs.
type SourceStore struct {
	db *gorm.DB
}

func NewSourceStore(db *gorm.DB) *SourceStore {
	return &SourceStore{db: db}
}

// OrderFilter scopes order reads by invoice date range and, optionally,
// warehouse. Both dates are inclusive. Zero-valued fields leave their
// clause out, so an empty filter matches everything.
type OrderFilter struct {
	StartDate   time.Time
	EndDate     time.Time
	WarehouseID string
}

func (f OrderFilter) apply(q *gorm.DB, dateColumn, warehouseColumn string) *gorm.DB {
	if !f.StartDate.IsZero() {
		q = q.Where(dateColumn+" >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where(dateColumn+" <= ?", f.EndDate)
	}
	if f.WarehouseID != "" {
		q = q.Where(warehouseColumn+" = ?", f.WarehouseID)
	}
	return q
}

func (s *SourceStore) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "source", Err: err}
	}
	return n, nil
}

func (s *SourceStore) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var recs []models.Product
	err := s.db.WithContext(ctx).
		Order("sku").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "source", Err: err}
	}
	return recs, nil
}

func (s *SourceStore) CountOrders(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Order{})
	err := f.apply(q, "faktur_date", "warehouse_id").Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "source", Err: err}
	}
	return n, nil
}

func (s *SourceStore) ListOrders(ctx context.Context, f OrderFilter, limit, offset int) ([]models.Order, error) {
	var recs []models.Order
	q := s.db.WithContext(ctx).Model(&models.Order{})
	err := f.apply(q, "faktur_date", "warehouse_id").
		Order("faktur_date, order_id").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "source", Err: err}
	}
	return recs, nil
}

func (s *SourceStore) CountOrderDetails(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.OrderDetail{}).
		Joins(`JOIN "order" o ON o.order_id = order_detail.order_id`)
	err := f.apply(q, "o.faktur_date", "o.warehouse_id").Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "source", Err: err}
	}
	return n, nil
}

func (s *SourceStore) ListOrderDetails(ctx context.Context, f OrderFilter, limit, offset int) ([]models.OrderDetail, error) {
	var recs []models.OrderDetail
	q := s.db.WithContext(ctx).Model(&models.OrderDetail{}).
		Joins(`JOIN "order" o ON o.order_id = order_detail.order_id`)
	err := f.apply(q, "o.faktur_date", "o.warehouse_id").
		Order("order_detail.order_detail_id").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "source", Err: err}
	}
	return recs, nil
}

// FakturIDsByOrderIDs resolves the faktur_id natural key for a set of
// Source order ids, so a detail page can be re-parented onto the Target
// order rows.
func (s *SourceStore) FakturIDsByOrderIDs(ctx context.Context, orderIDs []int) (map[int]string, error) {
	if len(orderIDs) == 0 {
		return map[int]string{}, nil
	}
	type row struct {
		OrderID  int
		FakturID string
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("order_id, faktur_id").
		Where("order_id IN ?", orderIDs).
		Find(&rows).Error
	if err != nil {
		return nil, &UnavailableError{Store: "source", Err: err}
	}
	out := make(map[int]string, len(rows))
	for _, r := range rows {
		out[r.OrderID] = r.FakturID
	}
	return out, nil
}

// OrderLineCounts groups Source order-line counts by do_number for
// orders invoiced in the date range.
func (s *SourceStore) OrderLineCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	type row struct {
		DoNumber string
		Count    int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Raw(`
		SELECT o.do_number AS do_number, COUNT(d.order_detail_id) AS count
		FROM "order" o
		JOIN order_detail d ON o.order_id = d.order_id
		WHERE o.faktur_date >= ? AND o.faktur_date <= ?
		GROUP BY o.do_number`, start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, &UnavailableError{Store: "source", Err: err}
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.DoNumber] = r.Count
	}
	return out, nil
}

// OrderLineCountFor counts Source order lines for one do_number.
func (s *SourceStore) OrderLineCountFor(ctx context.Context, doNumber string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.OrderDetail{}).
		Joins(`JOIN "order" o ON o.order_id = order_detail.order_id`).
		Where("o.do_number = ?", doNumber).
		Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "source", Err: err}
	}
	return n, nil
}
