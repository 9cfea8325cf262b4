package api

import "github.com/nugie07/armos-cleaning/cleaning"

type CompareRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type CompareResponse struct {
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	Total         int                   `json:"total"`
	Discrepancies []cleaning.Discrepancy `json:"discrepancies"`
}

type PayloadResponse struct {
	DoNumber         string                    `json:"do_number"`
	WarehouseID      string                    `json:"warehouse_id"`
	ClientID         string                    `json:"client_id"`
	Status           string                    `json:"status"`
	DbACount         int64                     `json:"db_a_count"`
	DbBCount         int64                     `json:"db_b_count"`
	DiscrepancyCount int64                     `json:"discrepancy_count"`
	CreatedDate      string                    `json:"created_date"`
	Payload          *cleaning.PayloadDocument `json:"payload,omitempty"`
}

type PayloadListResponse struct {
	Total int               `json:"total"`
	Items []PayloadResponse `json:"items"`
}
