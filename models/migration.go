package models

import (
	"gorm.io/gorm"
)

// MigrateTarget provisions the Target (Database B) schema. The Source
// database is owned by another team and is never migrated from here.
func MigrateTarget(db *gorm.DB) error {
	return db.AutoMigrate(
		&OrderMain{}, &OrderDetailMain{}, &ProductMain{},
		&OutboundDocument{}, &OutboundItem{}, &OutboundConversion{},
		&RawOutboundDocument{}, &RawOutboundItem{}, &RawOutboundConversion{},
		&PayloadResult{},
	)
}
