package cleaning

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nugie07/armos-cleaning/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PayloadDocument is the external document schema. Field names and
// shapes are a wire contract with the downstream cleaning consumer and
// must not drift.
type PayloadDocument struct {
	WarehouseID         string        `json:"warehouse_id"`
	ClientID            string        `json:"client_id"`
	OutboundReference   string        `json:"outbound_reference"`
	Divisi              string        `json:"divisi"`
	FakturDate          string        `json:"faktur_date"`
	RequestDeliveryDate string        `json:"request_delivery_date"`
	OriginName          string        `json:"origin_name"`
	OriginAddress1      string        `json:"origin_address_1"`
	OriginAddress2      string        `json:"origin_address_2"`
	OriginCity          string        `json:"origin_city"`
	OriginPhone         string        `json:"origin_phone"`
	OriginEmail         string        `json:"origin_email"`
	DestinationID       string        `json:"destination_id"`
	DestinationName     string        `json:"destination_name"`
	DestinationAddress1 string        `json:"destination_address_1"`
	DestinationAddress2 string        `json:"destination_address_2"`
	DestinationCity     string        `json:"destination_city"`
	DestinationZipCode  string        `json:"destination_zip_code"`
	DestinationPhone    string        `json:"destination_phone"`
	DestinationEmail    string        `json:"destination_email"`
	OrderType           string        `json:"order_type"`
	Items               []PayloadItem `json:"items"`
}

type PayloadItem struct {
	WarehouseID        string              `json:"warehouse_id"`
	LineID             string              `json:"line_id"`
	ProductID          string              `json:"product_id"`
	ProductDescription string              `json:"product_description"`
	GroupID            string              `json:"group_id"`
	GroupDescription   string              `json:"group_description"`
	ProductType        string              `json:"product_type"`
	Qty                float64             `json:"qty"`
	Uom                string              `json:"uom"`
	PackID             string              `json:"pack_id"`
	ProductNetPrice    float64             `json:"product_net_price"`
	Conversion         []PayloadConversion `json:"conversion"`
	ImageURL           []string            `json:"image_url"`
}

type PayloadConversion struct {
	Uom         string  `json:"uom"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

// BuildPayload assembles the document for one do_number entirely from
// the Target's cleansed projection. Returns ErrOrderNotFound when no
// cleansed header exists.
func (s *Service) BuildPayload(ctx context.Context, doNumber string) (*PayloadDocument, error) {
	doc, err := s.target.OutboundDocumentByReference(ctx, doNumber)
	if err != nil {
		return nil, err
	}

	items, err := s.target.OutboundItemsByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	payloadItems := make([]PayloadItem, 0, len(items))
	for _, item := range items {
		convs, err := s.target.OutboundConversionsByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		conversions := make([]PayloadConversion, 0, len(convs))
		for _, c := range convs {
			conversions = append(conversions, PayloadConversion{
				Uom:         c.Uom,
				Numerator:   c.Numerator.InexactFloat64(),
				Denominator: c.Denominator.InexactFloat64(),
			})
		}

		netPrice := 0.0
		if item.ProductNetPrice != nil {
			netPrice = item.ProductNetPrice.InexactFloat64()
		}
		payloadItems = append(payloadItems, PayloadItem{
			WarehouseID:        item.WarehouseID,
			LineID:             item.LineID,
			ProductID:          item.ProductID,
			ProductDescription: item.ProductDescription,
			GroupID:            item.GroupID,
			GroupDescription:   item.GroupDescription,
			ProductType:        item.ProductType,
			Qty:                item.Qty.InexactFloat64(),
			Uom:                item.Uom,
			PackID:             item.PackID,
			ProductNetPrice:    netPrice,
			Conversion:         conversions,
			ImageURL:           parseImageURLs(item.ImageURL),
		})
	}

	return &PayloadDocument{
		WarehouseID:         doc.WarehouseID,
		ClientID:            doc.ClientID,
		OutboundReference:   doc.OutboundReference,
		Divisi:              doc.Divisi,
		FakturDate:          formatDate(doc.FakturDate),
		RequestDeliveryDate: formatDate(doc.RequestDeliveryDate),
		OriginName:          doc.OriginName,
		OriginAddress1:      doc.OriginAddress1,
		OriginAddress2:      doc.OriginAddress2,
		OriginCity:          doc.OriginCity,
		OriginPhone:         doc.OriginPhone,
		OriginEmail:         doc.OriginEmail,
		DestinationID:       doc.DestinationID,
		DestinationName:     doc.DestinationName,
		DestinationAddress1: doc.DestinationAddress1,
		DestinationAddress2: doc.DestinationAddress2,
		DestinationCity:     doc.DestinationCity,
		DestinationZipCode:  doc.DestinationZipCode,
		DestinationPhone:    doc.DestinationPhone,
		DestinationEmail:    doc.DestinationEmail,
		OrderType:           doc.OrderType,
		Items:               payloadItems,
	}, nil
}

// CreatePayload builds the document, records the line counts from both
// stores as metadata, and persists it as the active payload for the
// do_number, replacing any prior one.
func (s *Service) CreatePayload(ctx context.Context, doNumber string) (*PayloadDocument, *models.PayloadResult, error) {
	payload, err := s.BuildPayload(ctx, doNumber)
	if err != nil {
		return nil, nil, err
	}

	sourceCount, err := s.source.OrderLineCountFor(ctx, doNumber)
	if err != nil {
		return nil, nil, err
	}
	targetCount, err := s.target.OrderLineCountFor(ctx, doNumber)
	if err != nil {
		return nil, nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	delta := targetCount - sourceCount
	if delta < 0 {
		delta = -delta
	}
	rec := &models.PayloadResult{
		DoNumber:         doNumber,
		WarehouseID:      payload.WarehouseID,
		ClientID:         payload.ClientID,
		PayloadData:      string(data),
		Status:           "created",
		CreatedDate:      time.Now().UTC(),
		DbACount:         sourceCount,
		DbBCount:         targetCount,
		DiscrepancyCount: delta,
	}
	if err := s.target.SavePayload(ctx, rec); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"do_number":  doNumber,
		"db_a_count": sourceCount,
		"db_b_count": targetCount,
	}).Info("payload created")
	return payload, rec, nil
}

// ListPayloads returns persisted payload rows, newest first.
func (s *Service) ListPayloads(ctx context.Context, limit, offset int) ([]models.PayloadResult, error) {
	if limit <= 0 {
		limit = 100
	}
	var recs []models.PayloadResult
	err := s.target.db.WithContext(ctx).
		Order("created_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return recs, nil
}

// GetPayload fetches the active payload row for a do_number, or
// ErrPayloadNotFound.
func (s *Service) GetPayload(ctx context.Context, doNumber string) (*models.PayloadResult, error) {
	var rec models.PayloadResult
	err := s.target.db.WithContext(ctx).
		Where("do_number = ?", doNumber).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPayloadNotFound
	}
	if err != nil {
		return nil, &UnavailableError{Store: "target", Err: err}
	}
	return &rec, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseImageURLs decodes the stored JSON array; a bare URL string is
// wrapped, and a missing image becomes the [""] placeholder the
// downstream consumer expects.
func parseImageURLs(raw string) []string {
	if raw == "" {
		return []string{""}
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return []string{raw}
	}
	if len(urls) == 0 {
		return []string{""}
	}
	return urls
}
