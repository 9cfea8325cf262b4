package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target (Database B) records. Transferred mirrors carry the Source
// natural keys so re-runs land on the same rows.

// OrderMain mirrors a Source Order; faktur_id is the natural key.
type OrderMain struct {
	ID                  int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FakturID            string     `gorm:"column:faktur_id;size:255;uniqueIndex" json:"faktur_id"`
	FakturDate          *time.Time `gorm:"column:faktur_date;index" json:"faktur_date"`
	DeliveryDate        *time.Time `gorm:"column:delivery_date" json:"delivery_date"`
	DoNumber            string     `gorm:"column:do_number;size:255;index" json:"do_number"`
	Status              string     `gorm:"column:status;size:50" json:"status"`
	SkipCount           int        `gorm:"column:skip_count" json:"skip_count"`
	CreatedDate         *time.Time `gorm:"column:created_date" json:"created_date"`
	CreatedBy           string     `gorm:"column:created_by;size:100" json:"created_by"`
	UpdatedDate         *time.Time `gorm:"column:updated_date" json:"updated_date"`
	UpdatedBy           string     `gorm:"column:updated_by;size:100" json:"updated_by"`
	Notes               string     `gorm:"column:notes;type:text" json:"notes"`
	CustomerID          string     `gorm:"column:customer_id;size:100" json:"customer_id"`
	WarehouseID         string     `gorm:"column:warehouse_id;size:100;index" json:"warehouse_id"`
	DeliveryTypeID      string     `gorm:"column:delivery_type_id;size:100" json:"delivery_type_id"`
	OrderIntegrationID  string     `gorm:"column:order_integration_id;size:255" json:"order_integration_id"`
	OriginName          string     `gorm:"column:origin_name;size:255" json:"origin_name"`
	OriginAddress1      string     `gorm:"column:origin_address_1;size:255" json:"origin_address_1"`
	OriginAddress2      string     `gorm:"column:origin_address_2;size:255" json:"origin_address_2"`
	OriginCity          string     `gorm:"column:origin_city;size:100" json:"origin_city"`
	OriginZipcode       string     `gorm:"column:origin_zipcode;size:20" json:"origin_zipcode"`
	OriginPhone         string     `gorm:"column:origin_phone;size:50" json:"origin_phone"`
	OriginEmail         string     `gorm:"column:origin_email;size:100" json:"origin_email"`
	DestinationName     string     `gorm:"column:destination_name;size:255" json:"destination_name"`
	DestinationAddress1 string     `gorm:"column:destination_address_1;size:255" json:"destination_address_1"`
	DestinationAddress2 string     `gorm:"column:destination_address_2;size:255" json:"destination_address_2"`
	DestinationCity     string     `gorm:"column:destination_city;size:100" json:"destination_city"`
	DestinationZipCode  string     `gorm:"column:destination_zip_code;size:20" json:"destination_zip_code"`
	DestinationPhone    string     `gorm:"column:destination_phone;size:50" json:"destination_phone"`
	DestinationEmail    string     `gorm:"column:destination_email;size:100" json:"destination_email"`
	ClientID            string     `gorm:"column:client_id;size:100" json:"client_id"`
	CancelReason        string     `gorm:"column:cancel_reason;type:text" json:"cancel_reason"`
	RdoIntegrationID    string     `gorm:"column:rdo_integration_id;size:255" json:"rdo_integration_id"`
	AddressChange       string     `gorm:"column:address_change;size:10" json:"address_change"`
	Divisi              string     `gorm:"column:divisi;size:100" json:"divisi"`
	PreStatus           string     `gorm:"column:pre_status;size:50" json:"pre_status"`
}

func (OrderMain) TableName() string { return "order_main" }

// OrderDetailMain mirrors a Source OrderDetail. order_id references
// OrderMain.ID, not the Source order_id; the natural key is
// (order_id, product_id, line_id).
type OrderDetailMain struct {
	ID                 int              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuantityFaktur     *decimal.Decimal `gorm:"column:quantity_faktur;type:decimal(20,4)" json:"quantity_faktur"`
	NetPrice           *decimal.Decimal `gorm:"column:net_price;type:decimal(20,4)" json:"net_price"`
	QuantityWms        *decimal.Decimal `gorm:"column:quantity_wms;type:decimal(20,4)" json:"quantity_wms"`
	QuantityDelivery   *decimal.Decimal `gorm:"column:quantity_delivery;type:decimal(20,4)" json:"quantity_delivery"`
	QuantityLoading    *decimal.Decimal `gorm:"column:quantity_loading;type:decimal(20,4)" json:"quantity_loading"`
	QuantityUnloading  *decimal.Decimal `gorm:"column:quantity_unloading;type:decimal(20,4)" json:"quantity_unloading"`
	Status             string           `gorm:"column:status;size:50" json:"status"`
	CancelReason       string           `gorm:"column:cancel_reason;type:text" json:"cancel_reason"`
	Notes              string           `gorm:"column:notes;type:text" json:"notes"`
	OrderID            int              `gorm:"column:order_id;uniqueIndex:idx_order_detail_main_key" json:"order_id"`
	ProductID          string           `gorm:"column:product_id;size:100;uniqueIndex:idx_order_detail_main_key" json:"product_id"`
	UnitID             string           `gorm:"column:unit_id;size:100" json:"unit_id"`
	PackID             string           `gorm:"column:pack_id;size:100" json:"pack_id"`
	LineID             string           `gorm:"column:line_id;size:50;uniqueIndex:idx_order_detail_main_key" json:"line_id"`
	UnloadingLatitude  *float64         `gorm:"column:unloading_latitude" json:"unloading_latitude"`
	UnloadingLongitude *float64         `gorm:"column:unloading_longitude" json:"unloading_longitude"`
	OriginUom          string           `gorm:"column:origin_uom;size:50" json:"origin_uom"`
	OriginQty          *decimal.Decimal `gorm:"column:origin_qty;type:decimal(20,4)" json:"origin_qty"`
	TotalCtn           *decimal.Decimal `gorm:"column:total_ctn;type:decimal(20,4)" json:"total_ctn"`
	TotalPcs           *decimal.Decimal `gorm:"column:total_pcs;type:decimal(20,4)" json:"total_pcs"`
}

func (OrderDetailMain) TableName() string { return "order_detail_main" }

// ProductMain mirrors a Source Product; sku is globally unique in Target.
type ProductMain struct {
	Sku           string          `gorm:"column:sku;primaryKey;size:100" json:"sku"`
	Height        decimal.Decimal `gorm:"column:height;type:decimal(20,4);default:0" json:"height"`
	Width         decimal.Decimal `gorm:"column:width;type:decimal(20,4);default:0" json:"width"`
	Length        decimal.Decimal `gorm:"column:length;type:decimal(20,4);default:0" json:"length"`
	Name          string          `gorm:"column:name;size:255" json:"name"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(20,4);default:0" json:"price"`
	TypeProductID string          `gorm:"column:type_product_id;size:100" json:"type_product_id"`
	Qty           decimal.Decimal `gorm:"column:qty;type:decimal(20,4);default:0" json:"qty"`
	Volume        decimal.Decimal `gorm:"column:volume;type:decimal(20,4);default:0" json:"volume"`
	Weight        decimal.Decimal `gorm:"column:weight;type:decimal(20,4);default:0" json:"weight"`
	BaseUom       string          `gorm:"column:base_uom;size:50" json:"base_uom"`
	PackID        string          `gorm:"column:pack_id;size:100" json:"pack_id"`
	WarehouseID   string          `gorm:"column:warehouse_id;size:100" json:"warehouse_id"`
	SyncedAt      time.Time       `gorm:"column:synced_at" json:"synced_at"`
}

func (ProductMain) TableName() string { return "mst_product_main" }

// OutboundDocument is the cleansed order projection kept in Target;
// outbound_reference corresponds to do_number.
type OutboundDocument struct {
	ID                  int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WarehouseID         string     `gorm:"column:warehouse_id;size:100" json:"warehouse_id"`
	ClientID            string     `gorm:"column:client_id;size:100" json:"client_id"`
	OutboundReference   string     `gorm:"column:outbound_reference;size:255;index" json:"outbound_reference"`
	Divisi              string     `gorm:"column:divisi;size:100" json:"divisi"`
	FakturDate          *time.Time `gorm:"column:faktur_date;index" json:"faktur_date"`
	RequestDeliveryDate *time.Time `gorm:"column:request_delivery_date" json:"request_delivery_date"`
	OriginName          string     `gorm:"column:origin_name;size:255" json:"origin_name"`
	OriginAddress1      string     `gorm:"column:origin_address_1;size:255" json:"origin_address_1"`
	OriginAddress2      string     `gorm:"column:origin_address_2;size:255" json:"origin_address_2"`
	OriginCity          string     `gorm:"column:origin_city;size:100" json:"origin_city"`
	OriginPhone         string     `gorm:"column:origin_phone;size:50" json:"origin_phone"`
	OriginEmail         string     `gorm:"column:origin_email;size:100" json:"origin_email"`
	DestinationID       string     `gorm:"column:destination_id;size:100" json:"destination_id"`
	DestinationName     string     `gorm:"column:destination_name;size:255" json:"destination_name"`
	DestinationAddress1 string     `gorm:"column:destination_address_1;size:255" json:"destination_address_1"`
	DestinationAddress2 string     `gorm:"column:destination_address_2;size:255" json:"destination_address_2"`
	DestinationCity     string     `gorm:"column:destination_city;size:100" json:"destination_city"`
	DestinationZipCode  string     `gorm:"column:destination_zip_code;size:20" json:"destination_zip_code"`
	DestinationPhone    string     `gorm:"column:destination_phone;size:50" json:"destination_phone"`
	DestinationEmail    string     `gorm:"column:destination_email;size:100" json:"destination_email"`
	OrderType           string     `gorm:"column:order_type;size:50" json:"order_type"`
	CreatedDate         time.Time  `gorm:"column:created_date;autoCreateTime" json:"created_date"`
}

func (OutboundDocument) TableName() string { return "cleansed_outbound_documents" }

// OutboundItem is one cleansed line item; image_url holds a JSON array as text.
type OutboundItem struct {
	ID                 int              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentID         int              `gorm:"column:document_id;index" json:"document_id"`
	WarehouseID        string           `gorm:"column:warehouse_id;size:100" json:"warehouse_id"`
	LineID             string           `gorm:"column:line_id;size:50" json:"line_id"`
	ProductID          string           `gorm:"column:product_id;size:100" json:"product_id"`
	ProductDescription string           `gorm:"column:product_description;size:255" json:"product_description"`
	GroupID            string           `gorm:"column:group_id;size:100" json:"group_id"`
	GroupDescription   string           `gorm:"column:group_description;size:255" json:"group_description"`
	ProductType        string           `gorm:"column:product_type;size:100" json:"product_type"`
	Qty                decimal.Decimal  `gorm:"column:qty;type:decimal(20,4);default:0" json:"qty"`
	Uom                string           `gorm:"column:uom;size:50" json:"uom"`
	PackID             string           `gorm:"column:pack_id;size:100" json:"pack_id"`
	ProductNetPrice    *decimal.Decimal `gorm:"column:product_net_price;type:decimal(20,4)" json:"product_net_price"`
	ImageURL           string           `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedDate        time.Time        `gorm:"column:created_date;autoCreateTime" json:"created_date"`
}

func (OutboundItem) TableName() string { return "cleansed_outbound_items" }

// OutboundConversion is one unit-of-measure conversion for an item.
type OutboundConversion struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID      int             `gorm:"column:item_id;index" json:"item_id"`
	Uom         string          `gorm:"column:uom;size:50" json:"uom"`
	Numerator   decimal.Decimal `gorm:"column:numerator;type:decimal(20,4);default:0" json:"numerator"`
	Denominator decimal.Decimal `gorm:"column:denominator;type:decimal(20,4);default:1" json:"denominator"`
	CreatedDate time.Time       `gorm:"column:created_date;autoCreateTime" json:"created_date"`
}

func (OutboundConversion) TableName() string { return "cleansed_outbound_conversions" }

// RawOutboundDocument is the raw outbound feed header keyed by faktur_id.
type RawOutboundDocument struct {
	ID                int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentReference string    `gorm:"column:document_reference;size:255;index" json:"document_reference"`
	OriginID          string    `gorm:"column:origin_id;size:100" json:"origin_id"`
	DestinationID     string    `gorm:"column:destination_id;size:100" json:"destination_id"`
	Status            string    `gorm:"column:status;size:50" json:"status"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RawOutboundDocument) TableName() string { return "outbound_documents" }

type RawOutboundItem struct {
	ID                 int              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OutboundDocumentID int              `gorm:"column:outbound_document_id;index" json:"outbound_document_id"`
	ProductID          string           `gorm:"column:product_id;size:100" json:"product_id"`
	PackID             string           `gorm:"column:pack_id;size:100" json:"pack_id"`
	LineID             string           `gorm:"column:line_id;size:50" json:"line_id"`
	Qty                decimal.Decimal  `gorm:"column:qty;type:decimal(20,4);default:0" json:"qty"`
	Uom                string           `gorm:"column:uom;size:50" json:"uom"`
	ProductNetPrice    *decimal.Decimal `gorm:"column:product_net_price;type:decimal(20,4)" json:"product_net_price"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RawOutboundItem) TableName() string { return "outbound_items" }

type RawOutboundConversion struct {
	ID             int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OutboundItemID int             `gorm:"column:outbound_item_id;index" json:"outbound_item_id"`
	Numerator      decimal.Decimal `gorm:"column:numerator;type:decimal(20,4);default:0" json:"numerator"`
	Denominator    decimal.Decimal `gorm:"column:denominator;type:decimal(20,4);default:1" json:"denominator"`
	FromUom        string          `gorm:"column:from_uom;size:50" json:"from_uom"`
	ToUom          string          `gorm:"column:to_uom;size:50" json:"to_uom"`
}

func (RawOutboundConversion) TableName() string { return "outbound_conversions" }

// PayloadResult is one persisted payload document. do_number is unique:
// rebuilding a payload replaces the previous row.
type PayloadResult struct {
	ID               int        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DoNumber         string     `gorm:"column:do_number;size:255;uniqueIndex" json:"do_number"`
	WarehouseID      string     `gorm:"column:warehouse_id;size:100" json:"warehouse_id"`
	ClientID         string     `gorm:"column:client_id;size:100" json:"client_id"`
	PayloadData      string     `gorm:"column:payload_data;type:jsonb" json:"payload_data"`
	Status           string     `gorm:"column:status;size:50;default:created" json:"status"`
	CreatedDate      time.Time  `gorm:"column:created_date;autoCreateTime" json:"created_date"`
	ProcessedDate    *time.Time `gorm:"column:processed_date" json:"processed_date"`
	Notes            string     `gorm:"column:notes;type:text" json:"notes"`
	DbACount         int64      `gorm:"column:db_a_count" json:"db_a_count"`
	DbBCount         int64      `gorm:"column:db_b_count" json:"db_b_count"`
	DiscrepancyCount int64      `gorm:"column:discrepancy_count" json:"discrepancy_count"`
}

func (PayloadResult) TableName() string { return "cleaning_payload_results" }
