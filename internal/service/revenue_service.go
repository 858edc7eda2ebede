package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/cache"
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/repository"
)

const defaultRevenueCacheTTL = 45 * time.Second

// RevenuePoint 营收序列中的一期
type RevenuePoint struct {
	Period       int    `json:"period"`
	TotalRevenue string `json:"total_revenue"`
	TotalSold    int64  `json:"total_sold"`
}

// TopSellerPoint 畅销榜中的一项
type TopSellerPoint struct {
	BookID       uint   `json:"book_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	TotalSold    int64  `json:"total_sold"`
	TotalRevenue string `json:"total_revenue"`
}

// RevenueService 营收统计服务。
// 聚合原始行来自仓库层，这里只负责参数校验与补零成稠密序列。
type RevenueService struct {
	repo     repository.RevenueRepository
	cacheTTL time.Duration
}

// NewRevenueService 创建营收统计服务
func NewRevenueService(repo repository.RevenueRepository, cacheTTLSeconds int) *RevenueService {
	ttl := defaultRevenueCacheTTL
	if cacheTTLSeconds > 0 {
		ttl = time.Duration(cacheTTLSeconds) * time.Second
	}
	return &RevenueService{repo: repo, cacheTTL: ttl}
}

// YearlySeries 按月统计指定年份营收。
// 无论当年有几个月有销售，输出固定 12 期，缺失月份补零。
func (s *RevenueService) YearlySeries(ctx context.Context, year int) ([]RevenuePoint, error) {
	if year <= 0 {
		return nil, ErrRevenueParamsMissing
	}

	cacheKey := fmt.Sprintf("%s:%d", constants.CacheKeyRevenueYearly, year)
	var cached []RevenuePoint
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("revenue_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return cached, nil
	}

	rows, err := s.repo.GetMonthlyTotals(year)
	if err != nil {
		return nil, err
	}
	series := fillSeries(rows, 12)

	if err := cache.SetJSON(ctx, cacheKey, series, s.cacheTTL); err != nil {
		logger.Warnw("revenue_cache_write_failed", "key", cacheKey, "error", err)
	}
	return series, nil
}

// DailySeries 按日统计指定年月营收。
// 输出覆盖当月每一天（闰年 2 月为 29 期），缺失天补零。
func (s *RevenueService) DailySeries(ctx context.Context, month, year int) ([]RevenuePoint, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, ErrRevenueParamsMissing
	}

	cacheKey := fmt.Sprintf("%s:%d:%02d", constants.CacheKeyRevenueDaily, year, month)
	var cached []RevenuePoint
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("revenue_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return cached, nil
	}

	rows, err := s.repo.GetDailyTotals(year, month)
	if err != nil {
		return nil, err
	}
	series := fillSeries(rows, models.DaysInMonth(year, time.Month(month)))

	if err := cache.SetJSON(ctx, cacheKey, series, s.cacheTTL); err != nil {
		logger.Warnw("revenue_cache_write_failed", "key", cacheKey, "error", err)
	}
	return series, nil
}

// TopSellers 获取指定年月销量前 N 的图书
func (s *RevenueService) TopSellers(ctx context.Context, month, year, limit int) ([]TopSellerPoint, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, ErrRevenueParamsMissing
	}
	if limit < 0 || limit > constants.RevenueTopSellersMaxLimit {
		return nil, ErrRevenueLimitInvalid
	}
	if limit == 0 {
		limit = constants.RevenueTopSellersDefaultLimit
	}

	cacheKey := fmt.Sprintf("%s:%d:%02d:%d", constants.CacheKeyRevenueTop, year, month, limit)
	var cached []TopSellerPoint
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("revenue_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return cached, nil
	}

	rows, err := s.repo.GetTopSoldBooks(year, month, limit)
	if err != nil {
		return nil, err
	}
	points := make([]TopSellerPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TopSellerPoint{
			BookID:       row.BookID,
			Title:        row.Title,
			Author:       row.Author,
			TotalSold:    row.TotalSold,
			TotalRevenue: formatMoneyValue(row.TotalRevenue),
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, points, s.cacheTTL); err != nil {
		logger.Warnw("revenue_cache_write_failed", "key", cacheKey, "error", err)
	}
	return points, nil
}

// fillSeries 把稀疏聚合行铺成 1..periods 的稠密序列，缺期补零。
func fillSeries(rows []repository.RevenuePeriodRow, periods int) []RevenuePoint {
	byPeriod := make(map[int]repository.RevenuePeriodRow, len(rows))
	for _, row := range rows {
		if row.Period >= 1 && row.Period <= periods {
			byPeriod[row.Period] = row
		}
	}

	series := make([]RevenuePoint, 0, periods)
	for period := 1; period <= periods; period++ {
		point := RevenuePoint{
			Period:       period,
			TotalRevenue: formatMoneyValue(0),
		}
		if row, ok := byPeriod[period]; ok {
			point.TotalRevenue = formatMoneyValue(row.TotalRevenue)
			point.TotalSold = row.TotalSold
		}
		series = append(series, point)
	}
	return series
}

func formatMoneyValue(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
