package cleaning

import (
	"context"
	"errors"
	"time"

	"github.com/nugie07/armos-cleaning/models"
	"gorm.io/gorm"
)

// TargetStore owns all access to the warehouse cleaning database
// (Database B): transferred mirrors, the cleansed outbound projection,
// the raw outbound feed and persisted payload results.
type TargetStore struct {
	db *gorm.DB
}

func NewTargetStore(db *gorm.DB) *TargetStore {
	return &TargetStore{db: db}
}

func (t *TargetStore) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.ProductMain{}).Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "target", Err: err}
	}
	return n, nil
}

func (t *TargetStore) CountOrders(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	q := t.db.WithContext(ctx).Model(&models.OrderMain{})
	err := f.apply(q, "faktur_date", "warehouse_id").Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "target", Err: err}
	}
	return n, nil
}

func (t *TargetStore) CountOrderDetails(ctx context.Context, f OrderFilter) (int64, error) {
	var n int64
	q := t.db.WithContext(ctx).Model(&models.OrderDetailMain{}).
		Joins("JOIN order_main om ON om.id = order_detail_main.order_id")
	err := f.apply(q, "om.faktur_date", "om.warehouse_id").Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "target", Err: err}
	}
	return n, nil
}

// TargetLineCount is one grouped row of the cleansed projection, with
// the header attributes the comparator reports alongside the count.
type TargetLineCount struct {
	DoNumber    string
	Count       int64
	WarehouseID string
	ClientID    string
}

// OrderLineCounts groups cleansed outbound item counts by
// outbound_reference for documents invoiced in the date range.
func (t *TargetStore) OrderLineCounts(ctx context.Context, start, end time.Time) (map[string]TargetLineCount, error) {
	var rows []TargetLineCount
	err := t.db.WithContext(ctx).Raw(`
		SELECT d.outbound_reference AS do_number,
		       COUNT(i.id)          AS count,
		       MAX(d.warehouse_id)  AS warehouse_id,
		       MAX(d.client_id)     AS client_id
		FROM cleansed_outbound_documents d
		JOIN cleansed_outbound_items i ON i.document_id = d.id
		WHERE d.faktur_date >= ? AND d.faktur_date <= ?
		GROUP BY d.outbound_reference`, start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	out := make(map[string]TargetLineCount, len(rows))
	for _, r := range rows {
		out[r.DoNumber] = r
	}
	return out, nil
}

// OrderLineCountFor counts cleansed outbound items for one do_number.
func (t *TargetStore) OrderLineCountFor(ctx context.Context, doNumber string) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(&models.OutboundItem{}).
		Joins("JOIN cleansed_outbound_documents d ON d.id = cleansed_outbound_items.document_id").
		Where("d.outbound_reference = ?", doNumber).
		Count(&n).Error
	if err != nil {
		return 0, &UnavailableError{Store: "target", Err: err}
	}
	return n, nil
}

// OutboundDocumentByReference fetches the cleansed header for a
// do_number, or ErrOrderNotFound.
func (t *TargetStore) OutboundDocumentByReference(ctx context.Context, doNumber string) (*models.OutboundDocument, error) {
	var doc models.OutboundDocument
	err := t.db.WithContext(ctx).
		Where("outbound_reference = ?", doNumber).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return &doc, nil
}

func (t *TargetStore) OutboundItemsByDocument(ctx context.Context, documentID int) ([]models.OutboundItem, error) {
	var items []models.OutboundItem
	err := t.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return items, nil
}

func (t *TargetStore) OutboundConversionsByItem(ctx context.Context, itemID int) ([]models.OutboundConversion, error) {
	var convs []models.OutboundConversion
	err := t.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id").
		Find(&convs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return convs, nil
}

// PendingOrder is an order_main row still missing its detail lines.
type PendingOrder struct {
	ID         int
	DoNumber   string
	FakturID   string
	FakturDate *time.Time
	CustomerID string
}

// ListOrdersWithoutDetails returns every order in the scope that has no
// order_detail_main rows yet, ordered by invoice date then do_number.
// The full set is materialized up front: inserting details shrinks the
// set, so offset pagination over it would skip rows.
func (t *TargetStore) ListOrdersWithoutDetails(ctx context.Context, f OrderFilter) ([]PendingOrder, error) {
	var rows []PendingOrder
	q := t.db.WithContext(ctx).Model(&models.OrderMain{}).
		Select("order_main.id AS id, order_main.do_number, order_main.faktur_id, order_main.faktur_date, order_main.customer_id").
		Joins("LEFT JOIN order_detail_main odm ON order_main.id = odm.order_id").
		Where("odm.order_id IS NULL")
	err := f.apply(q, "order_main.faktur_date", "order_main.warehouse_id").
		Order("order_main.faktur_date, order_main.do_number").
		Find(&rows).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return rows, nil
}

// RawOutboundLine is one raw outbound item joined with its document and
// first conversion, keyed back to order_main via document_reference
// (= faktur_id).
type RawOutboundLine struct {
	Document   models.RawOutboundDocument
	Item       models.RawOutboundItem
	Conversion *models.RawOutboundConversion
}

// RawOutboundByFakturIDs loads the raw outbound lines for a set of
// faktur_ids, one RawOutboundLine per item.
func (t *TargetStore) RawOutboundByFakturIDs(ctx context.Context, fakturIDs []string) ([]RawOutboundLine, error) {
	if len(fakturIDs) == 0 {
		return nil, nil
	}

	var docs []models.RawOutboundDocument
	err := t.db.WithContext(ctx).
		Where("document_reference IN ?", fakturIDs).
		Find(&docs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	if len(docs) == 0 {
		return nil, nil
	}

	docIDs := make([]int, len(docs))
	docByID := make(map[int]models.RawOutboundDocument, len(docs))
	for i, d := range docs {
		docIDs[i] = d.ID
		docByID[d.ID] = d
	}

	var items []models.RawOutboundItem
	err = t.db.WithContext(ctx).
		Where("outbound_document_id IN ?", docIDs).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	if len(items) == 0 {
		return nil, nil
	}

	itemIDs := make([]int, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	var convs []models.RawOutboundConversion
	err = t.db.WithContext(ctx).
		Where("outbound_item_id IN ?", itemIDs).
		Order("id").
		Find(&convs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	convByItem := make(map[int]models.RawOutboundConversion, len(convs))
	for _, c := range convs {
		// First conversion per item wins, matching the fill rules.
		if _, ok := convByItem[c.OutboundItemID]; !ok {
			convByItem[c.OutboundItemID] = c
		}
	}

	lines := make([]RawOutboundLine, 0, len(items))
	for _, it := range items {
		line := RawOutboundLine{Document: docByID[it.OutboundDocumentID], Item: it}
		if c, ok := convByItem[it.ID]; ok {
			conv := c
			line.Conversion = &conv
		}
		lines = append(lines, line)
	}
	return lines, nil
}
