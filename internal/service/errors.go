package service

import (
	"errors"
	"fmt"

	"github.com/police23/IS402-CloudComputing-sub001/internal/models"
)

// 促销相关错误（文案面向前端，使用业务语言）
var (
	ErrPromotionNotFound         = errors.New("mã khuyến mãi không hợp lệ")
	ErrPromotionExpired          = errors.New("mã khuyến mãi đã hết hạn")
	ErrPromotionExhausted        = errors.New("mã khuyến mãi đã hết lượt sử dụng")
	ErrPromotionTypeInvalid      = errors.New("loại khuyến mãi không hợp lệ")
	ErrPromotionValueInvalid     = errors.New("giá trị khuyến mãi không hợp lệ")
	ErrPromotionDateInvalid      = errors.New("khoảng thời gian khuyến mãi không hợp lệ")
	ErrPromotionDurationExceeded = errors.New("thời gian khuyến mãi vượt quá giới hạn")
	ErrPromotionCodeTaken        = errors.New("mã khuyến mãi đã tồn tại")
	ErrPromotionQuantityTooLow   = errors.New("số lượng khuyến mãi thấp hơn số lượt đã sử dụng")
	ErrPromotionNameRequired     = errors.New("tên khuyến mãi không được để trống")
	ErrPromotionNotApplicable    = errors.New("khuyến mãi không áp dụng cho sản phẩm trong đơn")
)

// PromotionMinPriceError 订单未达到促销使用门槛。
// 携带差额，前端可提示还差多少金额。
type PromotionMinPriceError struct {
	MinPrice  models.Money
	Shortfall models.Money
}

func (e *PromotionMinPriceError) Error() string {
	return fmt.Sprintf("đơn hàng chưa đạt giá trị tối thiểu %s (còn thiếu %s)",
		e.MinPrice.String(), e.Shortfall.String())
}

// 营收统计相关错误
var (
	ErrRevenueParamsMissing = errors.New("thiếu tham số thống kê")
	ErrRevenueLimitInvalid  = errors.New("số lượng thống kê không hợp lệ")
)

// 业务规则相关错误
var (
	ErrRulesInvalid = errors.New("giá trị quy định không hợp lệ")
)

// 图书/分类/供应商相关错误
var (
	ErrBookNotFound      = errors.New("không tìm thấy sách")
	ErrBookTitleRequired = errors.New("tên sách không được để trống")
	ErrBookPriceInvalid  = errors.New("giá sách không hợp lệ")
	ErrCategoryNotFound  = errors.New("không tìm thấy thể loại")
	ErrCategoryNameTaken = errors.New("tên thể loại đã tồn tại")
	ErrCategoryInUse     = errors.New("thể loại đang được sử dụng, không thể xóa")
	ErrSupplierNotFound  = errors.New("không tìm thấy nhà cung cấp")
	ErrSupplierNameTaken = errors.New("tên nhà cung cấp đã tồn tại")
)

// 进货相关错误
var (
	ErrImportNotFound       = errors.New("không tìm thấy phiếu nhập")
	ErrImportEmpty          = errors.New("phiếu nhập phải có ít nhất một dòng")
	ErrImportQuantityTooLow = errors.New("số lượng nhập thấp hơn quy định tối thiểu")
	ErrImportStockTooHigh   = errors.New("tồn kho hiện tại vượt mức cho phép nhập thêm")
	ErrImportCostInvalid    = errors.New("đơn giá nhập không hợp lệ")
)

// 销售发票相关错误
var (
	ErrInvoiceNotFound          = errors.New("không tìm thấy hóa đơn")
	ErrInvoiceEmpty             = errors.New("hóa đơn phải có ít nhất một dòng")
	ErrInvoiceQuantityInvalid   = errors.New("số lượng bán không hợp lệ")
	ErrInvoiceStockInsufficient = errors.New("tồn kho không đủ để bán")
)

// 账号与认证相关错误
var (
	ErrAdminNotFound      = errors.New("không tìm thấy tài khoản")
	ErrUsernameTaken      = errors.New("tên đăng nhập đã tồn tại")
	ErrInvalidCredentials = errors.New("tên đăng nhập hoặc mật khẩu không đúng")
	ErrAccountDisabled    = errors.New("tài khoản đã bị vô hiệu hóa")
	ErrRoleInvalid        = errors.New("vai trò không hợp lệ")
	ErrPasswordTooWeak    = errors.New("mật khẩu chưa đạt yêu cầu bảo mật")
	ErrOldPasswordWrong   = errors.New("mật khẩu cũ không đúng")
)
