package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugie07/armos-cleaning/cleaning"
	"github.com/nugie07/armos-cleaning/models"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "armos-cleaning"})
	}
}

// CompareHandler runs the line-count comparison for a date range and
// returns only the do_numbers whose counts differ.
func CompareHandler(svc *cleaning.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required in YYYY-MM-DD format"})
			return
		}

		start, _ := time.Parse("2006-01-02", req.StartDate)
		end, _ := time.Parse("2006-01-02", req.EndDate)
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
			return
		}

		discrepancies, err := svc.Compare(c.Request.Context(), start, end)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, CompareResponse{
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Total:         len(discrepancies),
			Discrepancies: discrepancies,
		})
	}
}

// CreatePayloadHandler builds and persists the payload for one
// do_number, replacing any previously stored one.
func CreatePayloadHandler(svc *cleaning.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		doNumber := strings.TrimSpace(c.Param("do_number"))
		if doNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "do_number is required"})
			return
		}

		payload, rec, err := svc.CreatePayload(c.Request.Context(), doNumber)
		if err != nil {
			if errors.Is(err, cleaning.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no cleansed order found for " + doNumber})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := mapResult(rec)
		resp.Payload = payload
		c.JSON(http.StatusOK, resp)
	}
}

// ListPayloadsHandler pages over stored payload results, newest first.
func ListPayloadsHandler(svc *cleaning.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 100
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		offset := 0
		if v := strings.TrimSpace(c.Query("offset")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
				return
			}
			offset = n
		}

		recs, err := svc.ListPayloads(c.Request.Context(), limit, offset)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		items := make([]PayloadResponse, 0, len(recs))
		for i := range recs {
			items = append(items, mapResult(&recs[i]))
		}
		c.JSON(http.StatusOK, PayloadListResponse{Total: len(items), Items: items})
	}
}

// GetPayloadHandler returns one stored payload, document included.
func GetPayloadHandler(svc *cleaning.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		doNumber := strings.TrimSpace(c.Param("do_number"))
		if doNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "do_number is required"})
			return
		}

		rec, err := svc.GetPayload(c.Request.Context(), doNumber)
		if err != nil {
			if errors.Is(err, cleaning.ErrPayloadNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no payload found for " + doNumber})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := mapResult(rec)
		var doc cleaning.PayloadDocument
		if err := json.Unmarshal([]byte(rec.PayloadData), &doc); err == nil {
			resp.Payload = &doc
		}
		c.JSON(http.StatusOK, resp)
	}
}

func mapResult(rec *models.PayloadResult) PayloadResponse {
	return PayloadResponse{
		DoNumber:         rec.DoNumber,
		WarehouseID:      rec.WarehouseID,
		ClientID:         rec.ClientID,
		Status:           rec.Status,
		DbACount:         rec.DbACount,
		DbBCount:         rec.DbBCount,
		DiscrepancyCount: rec.DiscrepancyCount,
		CreatedDate:      rec.CreatedDate.UTC().Format(time.RFC3339),
	}
}
