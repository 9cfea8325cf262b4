package cleaning

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nugie07/armos-cleaning/models"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// A second connection to a memory database would see an empty
	// schema, so pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *gorm.DB) {
	t.Helper()

	sourceDB := openTestDB(t, "source")
	require.NoError(t, sourceDB.AutoMigrate(&models.Order{}, &models.OrderDetail{}, &models.Product{}))

	targetDB := openTestDB(t, "target")
	require.NoError(t, models.MigrateTarget(targetDB))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := NewService(sourceDB, targetDB, logger, Options{
		BatchSize: 2,
		Retry:     Policy{MaxAttempts: 1, BaseDelay: time.Millisecond},
	})
	return svc, sourceDB, targetDB
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedSourceOrder(t *testing.T, db *gorm.DB, orderID int, fakturID, doNumber string, fakturDate *time.Time, warehouseID string, lines int) {
	t.Helper()
	require.NoError(t, db.Create(&models.Order{
		OrderID:     orderID,
		FakturID:    fakturID,
		DoNumber:    doNumber,
		FakturDate:  fakturDate,
		WarehouseID: warehouseID,
		Status:      "open",
	}).Error)
	for i := 1; i <= lines; i++ {
		require.NoError(t, db.Create(&models.OrderDetail{
			OrderDetailID:  orderID*1000 + i,
			OrderID:        orderID,
			ProductID:      fmt.Sprintf("SKU-%03d", i),
			LineID:         fmt.Sprintf("%d", i),
			QuantityFaktur: decPtr("10"),
		}).Error)
	}
}
