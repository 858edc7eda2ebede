package admin

import (
	"strconv"

	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetYearlyRevenue 获取按月汇总的年度营收
func (h *Handler) GetYearlyRevenue(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	series, err := h.RevenueService.YearlySeries(c.Request.Context(), year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, series)
}

// GetDailyRevenue 获取按日汇总的月度营收
func (h *Handler) GetDailyRevenue(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	series, err := h.RevenueService.DailySeries(c.Request.Context(), month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, series)
}

// GetTopSellers 获取月度畅销图书排行
func (h *Handler) GetTopSellers(c *gin.Context) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	sellers, err := h.RevenueService.TopSellers(c.Request.Context(), month, year, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sellers)
}
