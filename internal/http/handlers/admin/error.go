package admin

import (
	"errors"

	handlershared "github.com/police23/IS402-CloudComputing-sub001/internal/http/handlers/shared"
	"github.com/police23/IS402-CloudComputing-sub001/internal/http/response"
	"github.com/police23/IS402-CloudComputing-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// respondServiceError 把服务层业务错误映射为统一响应。
// 业务错误文案即最终用户文案，直接透传；未识别的错误按系统错误处理。
func respondServiceError(c *gin.Context, err error) {
	var minPriceErr *service.PromotionMinPriceError
	if errors.As(err, &minPriceErr) {
		respondErrorWithMsg(c, response.CodeBadRequest, minPriceErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrPromotionNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrImportNotFound),
		errors.Is(err, service.ErrInvoiceNotFound),
		errors.Is(err, service.ErrAdminNotFound):
		respondErrorWithMsg(c, response.CodeNotFound, err.Error(), nil)

	case errors.Is(err, service.ErrPromotionCodeTaken),
		errors.Is(err, service.ErrCategoryNameTaken),
		errors.Is(err, service.ErrSupplierNameTaken),
		errors.Is(err, service.ErrUsernameTaken):
		respondErrorWithMsg(c, response.CodeConflict, err.Error(), nil)

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrOldPasswordWrong):
		respondErrorWithMsg(c, response.CodeUnauthorized, err.Error(), nil)

	case errors.Is(err, service.ErrPromotionExpired),
		errors.Is(err, service.ErrPromotionExhausted),
		errors.Is(err, service.ErrPromotionTypeInvalid),
		errors.Is(err, service.ErrPromotionValueInvalid),
		errors.Is(err, service.ErrPromotionDateInvalid),
		errors.Is(err, service.ErrPromotionDurationExceeded),
		errors.Is(err, service.ErrPromotionNameRequired),
		errors.Is(err, service.ErrPromotionQuantityTooLow),
		errors.Is(err, service.ErrPromotionNotApplicable),
		errors.Is(err, service.ErrRevenueParamsMissing),
		errors.Is(err, service.ErrRevenueLimitInvalid),
		errors.Is(err, service.ErrRulesInvalid),
		errors.Is(err, service.ErrBookTitleRequired),
		errors.Is(err, service.ErrBookPriceInvalid),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrImportEmpty),
		errors.Is(err, service.ErrImportQuantityTooLow),
		errors.Is(err, service.ErrImportStockTooHigh),
		errors.Is(err, service.ErrImportCostInvalid),
		errors.Is(err, service.ErrInvoiceEmpty),
		errors.Is(err, service.ErrInvoiceQuantityInvalid),
		errors.Is(err, service.ErrInvoiceStockInsufficient),
		errors.Is(err, service.ErrRoleInvalid),
		errors.Is(err, service.ErrPasswordTooWeak):
		respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)

	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
