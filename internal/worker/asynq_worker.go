package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/police23/IS402-CloudComputing-sub001/internal/cache"
	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"
	"github.com/police23/IS402-CloudComputing-sub001/internal/logger"
	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
	"github.com/police23/IS402-CloudComputing-sub001/internal/provider"
	"github.com/police23/IS402-CloudComputing-sub001/internal/queue"

	"github.com/hibiken/asynq"
)

const lowStockCacheTTL = 30 * time.Minute

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskBookLowStockScan, c.handleBookLowStockScan)
	mux.HandleFunc(queue.TaskPromotionExpirySweep, c.handlePromotionExpirySweep)
}

// lowStockEntry 低库存快照条目
type lowStockEntry struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	Stock  int    `json:"stock"`
}

func (c *Consumer) handleBookLowStockScan(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_scan_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookLowStockScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_scan_unmarshal_failed", "error", err)
		return err
	}
	return c.ScanLowStock(ctx, payload.InvoiceID, payload.Reason)
}

// ScanLowStock 扫描库存低于进货阈值的图书并刷新快照缓存
func (c *Consumer) ScanLowStock(ctx context.Context, invoiceID uint, reason string) error {
	rules, err := c.RulesService.Get()
	if err != nil {
		logger.Warnw("worker_low_stock_scan_load_rules_failed", "error", err)
		return err
	}
	books, err := c.BookRepo.ListBelowStock(rules.MinStockBeforeImport)
	if err != nil {
		logger.Warnw("worker_low_stock_scan_query_failed", "error", err)
		return err
	}

	entries := make([]lowStockEntry, 0, len(books))
	for _, book := range books {
		entries = append(entries, lowStockEntry{
			BookID: book.ID,
			Title:  book.Title,
			Stock:  book.Stock,
		})
	}
	if err := cache.SetJSON(ctx, constants.CacheKeyLowStockBooks, entries, lowStockCacheTTL); err != nil {
		logger.Warnw("worker_low_stock_scan_cache_failed", "error", err)
	}

	if len(entries) > 0 {
		logger.Warnw("worker_low_stock_detected",
			"count", len(entries),
			"threshold", rules.MinStockBeforeImport,
			"invoice_id", invoiceID,
			"reason", reason,
		)
	}
	return nil
}

func (c *Consumer) handlePromotionExpirySweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_promotion_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PromotionExpirySweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_promotion_sweep_unmarshal_failed", "error", err)
		return err
	}

	day := models.Today()
	if payload.Before != "" {
		parsed, err := models.ParseDate(payload.Before)
		if err != nil {
			logger.Warnw("worker_promotion_sweep_bad_date", "before", payload.Before, "error", err)
			return nil
		}
		day = parsed
	}
	return c.SweepExpiredPromotions(day)
}

// SweepExpiredPromotions 汇报已结束的促销，供店长跟进清理
func (c *Consumer) SweepExpiredPromotions(day models.Date) error {
	promotions, err := c.PromotionRepo.ListExpiredBefore(day, 0)
	if err != nil {
		logger.Warnw("worker_promotion_sweep_query_failed", "error", err)
		return err
	}
	for _, promotion := range promotions {
		logger.Infow("worker_promotion_expired",
			"promotion_id", promotion.ID,
			"code", promotion.Code,
			"end_date", promotion.EndDate.String(),
			"used_quantity", promotion.UsedQuantity,
			"quantity", promotion.Quantity,
		)
	}
	return nil
}
