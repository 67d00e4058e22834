// Package api exposes the read side of the data layer over HTTP.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/duo-network/datastore/internal/datastore"
)

type Handler struct {
	ds *datastore.DataStore
}

func NewHandler(ds *datastore.DataStore) *Handler {
	return &Handler{ds: ds}
}

// GetPrices serves GET /prices?source=&period=&start=&end=&pair=.
// start and end are epoch milliseconds; end defaults to now.
func (h *Handler) GetPrices(c *gin.Context) {
	source := c.Query("source")
	period, err := strconv.Atoi(c.DefaultQuery("period", "60"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
		return
	}
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}
	end, err := strconv.ParseInt(c.DefaultQuery("end", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end"})
		return
	}
	prices, err := h.ds.GetPrices(c.Request.Context(), source, period, start, end, c.Query("pair"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prices)
}

// GetTrades serves GET /trades?source=&bucket=&pair= where bucket is a
// minute bucket formatted YYYY-MM-DD-HH-mm.
func (h *Handler) GetTrades(c *gin.Context) {
	source := c.Query("source")
	bucket := c.Query("bucket")
	if source == "" || bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and bucket are required"})
		return
	}
	trades, err := h.ds.GetTrades(c.Request.Context(), source, bucket, c.Query("pair"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trades)
}

// GetStatus serves GET /status.
func (h *Handler) GetStatus(c *gin.Context) {
	statuses, err := h.ds.ScanStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// GetConversions serves GET /conversions?contract=&address=&dates=d1,d2.
func (h *Handler) GetConversions(c *gin.Context) {
	contract := c.Query("contract")
	address := c.Query("address")
	dates := splitDates(c.Query("dates"))
	if contract == "" || address == "" || len(dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract, address and dates are required"})
		return
	}
	conversions, err := h.ds.Conversions(c.Request.Context(), contract, address, dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conversions)
}

// GetStakes serves GET /stakes?contract=&dates=d1,d2.
func (h *Handler) GetStakes(c *gin.Context) {
	contract := c.Query("contract")
	dates := splitDates(c.Query("dates"))
	if contract == "" || len(dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract and dates are required"})
		return
	}
	stakes, err := h.ds.Stakes(c.Request.Context(), contract, dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stakes)
}

func splitDates(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	dates := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			dates = append(dates, trimmed)
		}
	}
	return dates
}
