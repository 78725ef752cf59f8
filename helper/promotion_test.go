package helper

import (
	"testing"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/stretchr/testify/assert"
)

func activePromo(promoType string, value float64) model.Promotion {
	return model.Promotion{
		Code:       "TEST",
		Type:       promoType,
		Value:      value,
		ValidFrom:  time.Now().UTC().Add(-time.Hour),
		ValidUntil: time.Now().UTC().Add(time.Hour),
		IsActive:   true,
	}
}

func TestPromotionDiscount(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		assert.InDelta(t, 10.0, PromotionDiscount(activePromo("percentage", 10), 100), 0.0001)
	})

	t.Run("percentage capped by max discount", func(t *testing.T) {
		promo := activePromo("percentage", 50)
		promo.MaxDiscount = utils.Ptr(20.0)
		assert.Equal(t, 20.0, PromotionDiscount(promo, 100))
	})

	t.Run("fixed never exceeds subtotal", func(t *testing.T) {
		assert.Equal(t, 30.0, PromotionDiscount(activePromo("fixed", 80), 30))
	})

	t.Run("bogo is half the order", func(t *testing.T) {
		assert.Equal(t, 45.0, PromotionDiscount(activePromo("bogo", 0), 90))
	})

	t.Run("unknown type gives nothing", func(t *testing.T) {
		assert.Equal(t, 0.0, PromotionDiscount(activePromo("mystery", 10), 100))
	})
}

func TestPromotionUsable(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid promo passes", func(t *testing.T) {
		assert.NoError(t, PromotionUsable(activePromo("percentage", 10), 100, now))
	})

	t.Run("inactive", func(t *testing.T) {
		promo := activePromo("percentage", 10)
		promo.IsActive = false
		assert.ErrorIs(t, PromotionUsable(promo, 100, now), ErrPromotionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		promo := activePromo("percentage", 10)
		promo.ValidUntil = now.Add(-time.Minute)
		assert.ErrorIs(t, PromotionUsable(promo, 100, now), ErrPromotionNotFound)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		promo := activePromo("percentage", 10)
		promo.UsageLimit = 5
		promo.UsedCount = 5
		assert.ErrorIs(t, PromotionUsable(promo, 100, now), ErrPromotionNotFound)
	})

	t.Run("zero limit means unlimited", func(t *testing.T) {
		promo := activePromo("percentage", 10)
		promo.UsedCount = 100000
		assert.NoError(t, PromotionUsable(promo, 100, now))
	})

	t.Run("below minimum purchase", func(t *testing.T) {
		promo := activePromo("percentage", 10)
		promo.MinPurchase = 50
		assert.ErrorIs(t, PromotionUsable(promo, 49.99, now), ErrMinimumPurchase)
	})
}
