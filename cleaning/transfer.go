package cleaning

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nugie07/armos-cleaning/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransferReport summarizes one table's run. Copied counts rows that
// actually landed; rows left alone by the conflict clause, or dropped
// before the write, count as Skipped. LastOffset is the cursor:
// the next offset to process, valid even when the run halts early, so a
// failed run can resume with Options.StartOffset.
type TransferReport struct {
	RunID      string `json:"run_id"`
	Table      string `json:"table"`
	Mode       string `json:"mode"`
	Total      int64  `json:"total"`
	Copied     int64  `json:"copied"`
	Skipped    int64  `json:"skipped"`
	Pages      int    `json:"pages"`
	LastOffset int    `json:"last_offset"`
	Completed  bool   `json:"completed"`
}

// OrderCopyReport covers the two phases of an order transfer: headers
// first, then their detail lines.
type OrderCopyReport struct {
	Orders  *TransferReport `json:"orders"`
	Details *TransferReport `json:"details"`
}

type runConfig struct {
	runID  string
	table  string
	mode   string
	total  int64
	opts   Options
	logger *logrus.Logger
}

// runPages drives one table's transfer: pages are read and applied
// strictly in ascending key order, each read and each write guarded by
// the retry policy, with a cancellable pause between pages. On any
// terminal error the report's cursor points at the first unapplied row.
func runPages[T any](
	ctx context.Context,
	rc runConfig,
	read func(ctx context.Context, limit, offset int) ([]T, error),
	write func(ctx context.Context, recs []T, offset int) (skipped int, err error),
) (*TransferReport, error) {
	rep := &TransferReport{
		RunID:      rc.runID,
		Table:      rc.table,
		Mode:       rc.mode,
		Total:      rc.total,
		LastOffset: rc.opts.StartOffset,
	}

	offset := rc.opts.StartOffset
	for int64(offset) < rc.total {
		var recs []T
		err := Do(ctx, rc.logger, rc.opts.Retry, "read "+rc.table, func(ctx context.Context) error {
			var rerr error
			recs, rerr = read(ctx, rc.opts.BatchSize, offset)
			return rerr
		})
		if err != nil {
			return rep, err
		}
		if len(recs) == 0 {
			break
		}

		var skipped int
		err = Do(ctx, rc.logger, rc.opts.Retry, "write "+rc.table, func(ctx context.Context) error {
			var werr error
			skipped, werr = write(ctx, recs, offset)
			return werr
		})
		if err != nil {
			return rep, err
		}

		offset += len(recs)
		rep.Pages++
		rep.Copied += int64(len(recs) - skipped)
		rep.Skipped += int64(skipped)
		rep.LastOffset = offset

		rc.logger.WithFields(logrus.Fields{
			"run_id": rc.runID,
			"table":  rc.table,
			"mode":   rc.mode,
			"page":   rep.Pages,
			"copied": rep.Copied,
			"total":  rc.total,
		}).Infof("processed %d %s records (%d/%d)", len(recs), rc.table, offset, rc.total)

		if int64(offset) < rc.total && rc.opts.BatchDelay > 0 {
			rc.logger.WithFields(logrus.Fields{"run_id": rc.runID, "table": rc.table}).
				Infof("waiting %s before next batch", rc.opts.BatchDelay)
			if err := sleepCtx(ctx, rc.opts.BatchDelay); err != nil {
				return rep, err
			}
		}
	}

	rep.Completed = true
	return rep, nil
}

// CopyProducts transfers the product catalog from Source into
// mst_product_main. Every transferred row gets the same synced_at stamp
// for the run.
func (s *Service) CopyProducts(ctx context.Context, mode WriteMode, opts Options) (*TransferReport, error) {
	opts = opts.merged(s.defaults)
	runID := uuid.NewString()

	total, err := s.source.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"run_id": runID, "mode": mode.String()}).
		Infof("found %d product records to copy", total)
	if total == 0 {
		s.logger.Warn("no product records found in source database")
	}

	syncedAt := time.Now().UTC()
	rc := runConfig{runID: runID, table: "mst_product_main", mode: mode.String(), total: total, opts: opts, logger: s.logger}
	return runPages(ctx, rc,
		func(ctx context.Context, limit, offset int) ([]models.Product, error) {
			return s.source.ListProducts(ctx, limit, offset)
		},
		func(ctx context.Context, recs []models.Product, offset int) (int, error) {
			rows := make([]models.ProductMain, len(recs))
			for i, p := range recs {
				rows[i] = productToMain(p, syncedAt)
			}
			affected, err := s.target.WriteProducts(ctx, rows, mode, offset)
			if err != nil {
				return 0, err
			}
			return len(rows) - int(affected), nil
		},
	)
}

// CopyOrders transfers order headers for the filter scope, then their
// detail lines. Detail rows are re-parented onto the Target header ids,
// so the header phase must finish before the detail phase starts.
func (s *Service) CopyOrders(ctx context.Context, f OrderFilter, mode WriteMode, opts Options) (*OrderCopyReport, error) {
	opts = opts.merged(s.defaults)
	runID := uuid.NewString()
	report := &OrderCopyReport{}

	total, err := s.source.CountOrders(ctx, f)
	if err != nil {
		return report, err
	}
	s.logger.WithFields(logrus.Fields{"run_id": runID, "mode": mode.String()}).
		Infof("found %d order records to copy", total)

	rc := runConfig{runID: runID, table: "order_main", mode: mode.String(), total: total, opts: opts, logger: s.logger}
	report.Orders, err = runPages(ctx, rc,
		func(ctx context.Context, limit, offset int) ([]models.Order, error) {
			return s.source.ListOrders(ctx, f, limit, offset)
		},
		func(ctx context.Context, recs []models.Order, offset int) (int, error) {
			rows := make([]models.OrderMain, len(recs))
			for i, o := range recs {
				rows[i] = orderToMain(o)
			}
			affected, err := s.target.WriteOrders(ctx, rows, mode, offset)
			if err != nil {
				return 0, err
			}
			return len(rows) - int(affected), nil
		},
	)
	if err != nil {
		return report, err
	}

	detailTotal, err := s.source.CountOrderDetails(ctx, f)
	if err != nil {
		return report, err
	}
	s.logger.WithFields(logrus.Fields{"run_id": runID, "mode": mode.String()}).
		Infof("found %d order_detail records to copy", detailTotal)

	// The detail phase starts its own cursor.
	detailOpts := opts
	detailOpts.StartOffset = 0
	rc = runConfig{runID: runID, table: "order_detail_main", mode: mode.String(), total: detailTotal, opts: detailOpts, logger: s.logger}
	report.Details, err = runPages(ctx, rc,
		func(ctx context.Context, limit, offset int) ([]models.OrderDetail, error) {
			return s.source.ListOrderDetails(ctx, f, limit, offset)
		},
		func(ctx context.Context, recs []models.OrderDetail, offset int) (int, error) {
			orderIDs := make([]int, 0, len(recs))
			seen := make(map[int]bool, len(recs))
			for _, d := range recs {
				if !seen[d.OrderID] {
					seen[d.OrderID] = true
					orderIDs = append(orderIDs, d.OrderID)
				}
			}
			fakturByOrder, err := s.source.FakturIDsByOrderIDs(ctx, orderIDs)
			if err != nil {
				return 0, err
			}
			return s.target.WriteOrderDetails(ctx, recs, fakturByOrder, mode, offset)
		},
	)
	return report, err
}

// FillOrderDetails backfills order_detail_main for orders already in
// Target that have no detail lines, from the raw outbound feed. This is
// a Target-only operation.
func (s *Service) FillOrderDetails(ctx context.Context, f OrderFilter, opts Options) (*TransferReport, error) {
	opts = opts.merged(s.defaults)
	runID := uuid.NewString()

	rep := &TransferReport{RunID: runID, Table: "order_detail_main", Mode: "fill"}

	var pending []PendingOrder
	err := Do(ctx, s.logger, opts.Retry, "read order_main backlog", func(ctx context.Context) error {
		var rerr error
		pending, rerr = s.target.ListOrdersWithoutDetails(ctx, f)
		return rerr
	})
	if err != nil {
		return rep, err
	}
	rep.Total = int64(len(pending))
	s.logger.WithFields(logrus.Fields{"run_id": runID}).
		Infof("found %d orders without order_detail_main records", len(pending))
	if len(pending) == 0 {
		rep.Completed = true
		return rep, nil
	}

	for start := opts.StartOffset; start < len(pending); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]

		fakturIDs := make([]string, 0, len(chunk))
		orderIDByFaktur := make(map[string]int, len(chunk))
		for _, p := range chunk {
			fakturIDs = append(fakturIDs, p.FakturID)
			orderIDByFaktur[p.FakturID] = p.ID
		}

		var lines []RawOutboundLine
		err := Do(ctx, s.logger, opts.Retry, "read outbound data", func(ctx context.Context) error {
			var rerr error
			lines, rerr = s.target.RawOutboundByFakturIDs(ctx, fakturIDs)
			return rerr
		})
		if err != nil {
			return rep, err
		}

		rows := make([]models.OrderDetailMain, 0, len(lines))
		skipped := 0
		for _, line := range lines {
			orderID, ok := orderIDByFaktur[line.Document.DocumentReference]
			if !ok {
				skipped++
				continue
			}
			rows = append(rows, buildDetailFromOutbound(orderID, line))
		}

		var affected int64
		err = Do(ctx, s.logger, opts.Retry, "write order_detail_main", func(ctx context.Context) error {
			conflict := InsertIfAbsent.conflict("order_id", "product_id", "line_id")
			var werr error
			affected, werr = writePage(ctx, s.target.db, "order_detail_main", conflict, start, rows)
			return werr
		})
		if err != nil {
			return rep, err
		}

		rep.Pages++
		rep.Copied += affected
		rep.Skipped += int64(skipped + len(rows) - int(affected))
		rep.LastOffset = end
		s.logger.WithFields(logrus.Fields{
			"run_id": runID,
			"page":   rep.Pages,
			"copied": rep.Copied,
		}).Infof("filled details for orders %d-%d of %d", start, end-1, len(pending))

		if end < len(pending) && opts.BatchDelay > 0 {
			if err := sleepCtx(ctx, opts.BatchDelay); err != nil {
				return rep, err
			}
		}
	}

	rep.Completed = true
	return rep, nil
}

// buildDetailFromOutbound applies the fill quantity rules: a non-PCS
// quantity is expanded through the conversion numerator, and a CTN line
// additionally records the carton count.
func buildDetailFromOutbound(orderID int, line RawOutboundLine) models.OrderDetailMain {
	qty := line.Item.Qty
	quantityFaktur := qty
	totalPcs := qty
	var totalCtn *decimal.Decimal

	uom := strings.ToUpper(line.Item.Uom)
	if uom != "PCS" && line.Conversion != nil {
		expanded := qty.Mul(line.Conversion.Numerator)
		quantityFaktur = expanded
		totalPcs = expanded
	}
	if uom == "CTN" {
		ctn := qty
		totalCtn = &ctn
	}

	originQty := qty
	return models.OrderDetailMain{
		QuantityFaktur: &quantityFaktur,
		NetPrice:       line.Item.ProductNetPrice,
		OrderID:        orderID,
		ProductID:      line.Item.ProductID,
		PackID:         line.Item.PackID,
		LineID:         line.Item.LineID,
		OriginUom:      line.Item.Uom,
		OriginQty:      &originQty,
		TotalCtn:       totalCtn,
		TotalPcs:       &totalPcs,
	}
}
