package helper

import (
	"fmt"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"gorm.io/gorm"
)

// PriceContext gom các thuộc tính của suất chiếu dùng để so khớp rule giá
type PriceContext struct {
	RoomTypeId uint
	Format     string
	AudioType  string
	StartTime  time.Time
	Now        time.Time
}

// SeatPriceDetail giá cuối cùng của từng ghế sau khi áp rule
type SeatPriceDetail struct {
	Seat     string  `json:"seat"`
	SeatType string  `json:"seatType"`
	Price    float64 `json:"price"`
	RuleName string  `json:"ruleName,omitempty"`
}

func withinTimeWindow(clock time.Time, start, end *string) bool {
	if start == nil && end == nil {
		return true
	}
	hm := clock.Format("15:04")
	if start != nil && hm < *start {
		return false
	}
	if end != nil && hm > *end {
		return false
	}
	return true
}

// RuleMatches kiểm tra rule có áp dụng cho suất chiếu hay không.
// RoomType bắt buộc khớp, các điều kiện còn lại chỉ xét khi rule có khai báo.
func RuleMatches(rule model.PricingRule, ctx PriceContext) bool {
	if !rule.IsActive || rule.RoomTypeId != ctx.RoomTypeId {
		return false
	}
	if rule.Format != nil && *rule.Format != ctx.Format {
		return false
	}
	if rule.AudioType != nil && *rule.AudioType != ctx.AudioType {
		return false
	}
	if rule.DayOfWeek != nil && *rule.DayOfWeek != int(ctx.StartTime.Weekday()) {
		return false
	}
	if !withinTimeWindow(ctx.StartTime, rule.StartTime, rule.EndTime) {
		return false
	}
	if rule.ValidFrom != nil && ctx.Now.Before(*rule.ValidFrom) {
		return false
	}
	if rule.ValidUntil != nil && ctx.Now.After(*rule.ValidUntil) {
		return false
	}
	return true
}

// RuleSpecificity đếm số điều kiện tùy chọn mà rule khai báo.
// Rule càng cụ thể càng được ưu tiên.
func RuleSpecificity(rule model.PricingRule) int {
	score := 0
	if rule.SeatTypeId != nil {
		score++
	}
	if rule.AudioType != nil {
		score++
	}
	if rule.Format != nil {
		score++
	}
	if rule.DayOfWeek != nil {
		score++
	}
	if rule.StartTime != nil || rule.EndTime != nil {
		score++
	}
	return score
}

// BestRule chọn rule khớp có specificity cao nhất, hòa thì lấy rule cũ hơn (ID nhỏ hơn)
func BestRule(rules []model.PricingRule, ctx PriceContext, seatTypeId uint) *model.PricingRule {
	var best *model.PricingRule
	bestScore := -1
	for i := range rules {
		rule := rules[i]
		if rule.SeatTypeId != nil && *rule.SeatTypeId != seatTypeId {
			continue
		}
		if !RuleMatches(rule, ctx) {
			continue
		}
		score := RuleSpecificity(rule)
		if score > bestScore || (score == bestScore && best != nil && rule.ID < best.ID) {
			best = &rules[i]
			bestScore = score
		}
	}
	return best
}

// SeatPrice tính giá 1 ghế: ưu tiên fixedPrice của rule, sau đó giá niêm yết
// trong sơ đồ ghế, cuối cùng basePrice của loại phòng nhân multiplier
func SeatPrice(spec model.SeatSpec, basePrice float64, seatMultiplier float64, rule *model.PricingRule) float64 {
	if rule != nil && rule.FixedPrice != nil {
		return *rule.FixedPrice
	}
	nominal := basePrice
	if spec.Price != nil {
		nominal = *spec.Price
	}
	price := nominal * seatMultiplier
	if rule != nil && rule.Multiplier != nil {
		price *= *rule.Multiplier
	}
	return price
}

// ResolvePricing tính giá từng ghế của một suất chiếu. Suất chiếu phải được
// preload Room.RoomType. Nếu dữ liệu giá lỗi thì fallback basePrice cho cả đơn.
func ResolvePricing(tx *gorm.DB, showtime *model.Showtime, seats []string) ([]SeatPriceDetail, float64, error) {
	basePrice := showtime.Room.RoomType.BasePrice
	ctx := PriceContext{
		RoomTypeId: showtime.Room.RoomTypeId,
		Format:     showtime.Format,
		AudioType:  showtime.AudioType,
		StartTime:  showtime.StartTime,
		Now:        time.Now().UTC(),
	}

	var seatTypes []model.SeatType
	if err := tx.Find(&seatTypes).Error; err != nil {
		return nil, 0, err
	}
	multipliers := make(map[string]float64, len(seatTypes))
	typeIds := make(map[string]uint, len(seatTypes))
	for _, st := range seatTypes {
		multipliers[st.Name] = st.PriceMultiplier
		typeIds[st.Name] = st.ID
	}

	var rules []model.PricingRule
	if err := tx.Where("room_type_id = ? AND is_active = ?", ctx.RoomTypeId, true).
		Find(&rules).Error; err != nil {
		return nil, 0, err
	}

	details := make([]SeatPriceDetail, 0, len(seats))
	subtotal := 0.0
	for _, seat := range seats {
		spec, ok := showtime.Room.SeatMap[seat]
		if !ok {
			return nil, 0, fmt.Errorf("seat %s not in room map", seat)
		}
		multiplier, ok := multipliers[spec.Type]
		if !ok || multiplier <= 0 {
			multiplier = 1
		}
		rule := BestRule(rules, ctx, typeIds[spec.Type])
		price := SeatPrice(spec, basePrice, multiplier, rule)

		detail := SeatPriceDetail{Seat: seat, SeatType: spec.Type, Price: price}
		if rule != nil {
			detail.RuleName = rule.Name
		}
		details = append(details, detail)
		subtotal += price
	}
	return details, subtotal, nil
}
