// internal/interfaces/http/handlers/report.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/order"
	"github.com/your-org/spicerack-backend/internal/domain/report"
	"github.com/your-org/spicerack-backend/internal/pkg/pdf"
)

// ReportHandler handles admin reporting endpoints
type ReportHandler struct {
	reportService *report.Service
	orderService  *order.Service
	pdfService    *pdf.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db, cfg),
		orderService:  order.NewService(db, cfg, logger),
		pdfService:    pdf.NewService(cfg),
		config:        cfg,
	}
}

// GetDashboard returns headline kitchen stats
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetSalesByDay returns a revenue time series. Defaults to the last
// 30 days when no range is given.
func (h *ReportHandler) GetSalesByDay(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	series, err := h.reportService.GetSalesByDay(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": series})
}

// GetTopItems returns the best-selling menu items
func (h *ReportHandler) GetTopItems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.reportService.GetTopItems(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetOrderReceipt renders an order receipt as a PDF download
func (h *ReportHandler) GetOrderReceipt(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
