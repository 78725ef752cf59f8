package helper

import (
	"errors"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPromotionNotFound = errors.New("promotion not found or no longer valid")
	ErrMinimumPurchase   = errors.New("subtotal below promotion minimum purchase")
)

// PromotionDiscount tính tiền giảm cho một subtotal, đã chặn trần maxDiscount
// và không bao giờ vượt quá subtotal
func PromotionDiscount(promo model.Promotion, subtotal float64) float64 {
	var discount float64
	switch promo.Type {
	case "percentage":
		discount = subtotal * promo.Value / 100
	case "fixed":
		discount = promo.Value
	case "bogo":
		// mua 1 tặng 1: nửa đơn hàng
		discount = subtotal / 2
	default:
		return 0
	}
	if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
		discount = *promo.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// PromotionUsable kiểm tra promo còn hiệu lực tại thời điểm now với subtotal đã cho
func PromotionUsable(promo model.Promotion, subtotal float64, now time.Time) error {
	if !promo.IsActive || now.Before(promo.ValidFrom) || now.After(promo.ValidUntil) {
		return ErrPromotionNotFound
	}
	if promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit {
		return ErrPromotionNotFound
	}
	if subtotal < promo.MinPurchase {
		return ErrMinimumPurchase
	}
	return nil
}

// FindValidPromotion khóa row promotion trong transaction rồi kiểm tra điều kiện
func FindValidPromotion(tx *gorm.DB, code string, subtotal float64) (*model.Promotion, error) {
	var promo model.Promotion
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	if err := PromotionUsable(promo, subtotal, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &promo, nil
}

// ConsumePromotion tăng usedCount có bảo vệ usageLimit ngay trong câu UPDATE.
// RowsAffected == 0 nghĩa là promo vừa chạm trần ở request khác.
func ConsumePromotion(tx *gorm.DB, promoID uint) (bool, error) {
	result := tx.Model(&model.Promotion{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", promoID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RefundPromotion giảm usedCount khi hủy vé, không cho âm
func RefundPromotion(tx *gorm.DB, promoID uint) error {
	return tx.Model(&model.Promotion{}).
		Where("id = ? AND used_count > 0", promoID).
		Update("used_count", gorm.Expr("used_count - 1")).Error
}
