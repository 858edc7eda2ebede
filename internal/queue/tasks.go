package queue

import (
	"encoding/json"

	"github.com/police23/IS402-CloudComputing-sub001/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskBookLowStockScan 低库存扫描任务
	TaskBookLowStockScan = constants.TaskBookLowStockScan
	// TaskPromotionExpirySweep 过期促销清理任务
	TaskPromotionExpirySweep = constants.TaskPromotionExpirySweep
)

// BookLowStockScanPayload 低库存扫描任务载荷
type BookLowStockScanPayload struct {
	InvoiceID uint   `json:"invoice_id"`
	Reason    string `json:"reason"`
}

// PromotionExpirySweepPayload 过期促销清理任务载荷
type PromotionExpirySweepPayload struct {
	Before string `json:"before"`
}

// NewBookLowStockScanTask 创建低库存扫描任务
func NewBookLowStockScanTask(payload BookLowStockScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookLowStockScan, body), nil
}

// NewPromotionExpirySweepTask 创建过期促销清理任务
func NewPromotionExpirySweepTask(payload PromotionExpirySweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPromotionExpirySweep, body), nil
}
