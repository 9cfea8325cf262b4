package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source (Database A) records. The engine never writes these tables.

// Order is one delivery order header in the main TMS database.
type Order struct {
	OrderID             int        `gorm:"column:order_id;primaryKey" json:"order_id"`
	FakturID            string     `gorm:"column:faktur_id;size:255" json:"faktur_id"`
	FakturDate          *time.Time `gorm:"column:faktur_date" json:"faktur_date"`
	DeliveryDate        *time.Time `gorm:"column:delivery_date" json:"delivery_date"`
	DoNumber            string     `gorm:"column:do_number;size:255" json:"do_number"`
	Status              string     `gorm:"column:status;size:50" json:"status"`
	SkipCount           int        `gorm:"column:skip_count" json:"skip_count"`
	CreatedDate         *time.Time `gorm:"column:created_date" json:"created_date"`
	CreatedBy           string     `gorm:"column:created_by;size:100" json:"created_by"`
	UpdatedDate         *time.Time `gorm:"column:updated_date" json:"updated_date"`
	UpdatedBy           string     `gorm:"column:updated_by;size:100" json:"updated_by"`
	Notes               string     `gorm:"column:notes;type:text" json:"notes"`
	CustomerID          string     `gorm:"column:customer_id;size:100" json:"customer_id"`
	WarehouseID         string     `gorm:"column:warehouse_id;size:100" json:"warehouse_id"`
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

func (Order) TableName() string { return "order" }

// OrderDetail is one line item of an Order. A detail row never exists
// without its parent header.
type OrderDetail struct {
	OrderDetailID      int              `gorm:"column:order_detail_id;primaryKey" json:"order_detail_id"`
	QuantityFaktur     *decimal.Decimal `gorm:"column:quantity_faktur;type:decimal(20,4)" json:"quantity_faktur"`
	NetPrice           *decimal.Decimal `gorm:"column:net_price;type:decimal(20,4)" json:"net_price"`
	QuantityWms        *decimal.Decimal `gorm:"column:quantity_wms;type:decimal(20,4)" json:"quantity_wms"`
	QuantityDelivery   *decimal.Decimal `gorm:"column:quantity_delivery;type:decimal(20,4)" json:"quantity_delivery"`
	QuantityLoading    *decimal.Decimal `gorm:"column:quantity_loading;type:decimal(20,4)" json:"quantity_loading"`
	QuantityUnloading  *decimal.Decimal `gorm:"column:quantity_unloading;type:decimal(20,4)" json:"quantity_unloading"`
	Status             string           `gorm:"column:status;size:50" json:"status"`
	CancelReason       string           `gorm:"column:cancel_reason;type:text" json:"cancel_reason"`
	Notes              string           `gorm:"column:notes;type:text" json:"notes"`
	OrderID            int              `gorm:"column:order_id;index" json:"order_id"`
	ProductID          string           `gorm:"column:product_id;size:100" json:"product_id"`
	UnitID             string           `gorm:"column:unit_id;size:100" json:"unit_id"`
	PackID             string           `gorm:"column:pack_id;size:100" json:"pack_id"`
	LineID             string           `gorm:"column:line_id;size:50" json:"line_id"`
	UnloadingLatitude  *float64         `gorm:"column:unloading_latitude" json:"unloading_latitude"`
	UnloadingLongitude *float64         `gorm:"column:unloading_longitude" json:"unloading_longitude"`
	OriginUom          string           `gorm:"column:origin_uom;size:50" json:"origin_uom"`
	OriginQty          *decimal.Decimal `gorm:"column:origin_qty;type:decimal(20,4)" json:"origin_qty"`
	TotalCtn           *decimal.Decimal `gorm:"column:total_ctn;type:decimal(20,4)" json:"total_ctn"`
	TotalPcs           *decimal.Decimal `gorm:"column:total_pcs;type:decimal(20,4)" json:"total_pcs"`
}

func (OrderDetail) TableName() string { return "order_detail" }

// Product is one SKU in the master catalog.
type Product struct {
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
}

func (Product) TableName() string { return "mst_product" }
