package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricelens/models"
)

func TestReconcileSaleWithCrossedOriginal(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindSale: {
			{Value: "€476,00", Kind: KindSale, Confidence: 80},
		},
		KindOriginal: {
			{Value: "€595,00", Kind: KindOriginal, CrossedOut: true, Confidence: 60},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	assert.Equal(t, "€476,00", profile.BestPrice)
	assert.Equal(t, "€476,00", profile.SalePrice)
	assert.Equal(t, "€595,00", profile.OriginalPrice)
	assert.Equal(t, models.PriceTypeSale, profile.PriceType)
	assert.InDelta(t, 20.0, profile.DiscountPercentage, 0.001)
}

func TestReconcileCrossedOriginalPreferredOverConfidentPlainOne(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindSale: {
			{Value: "£40.00", Kind: KindSale, Confidence: 70},
		},
		KindOriginal: {
			{Value: "£45.00", Kind: KindOriginal, Confidence: 90},
			{Value: "£50.00", Kind: KindOriginal, CrossedOut: true, Confidence: 55},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	assert.Equal(t, "£50.00", profile.OriginalPrice)
	assert.InDelta(t, 20.0, profile.DiscountPercentage, 0.001)
}

func TestReconcileCurrentOnly(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindCurrent: {
			{Value: "£89.00", Kind: KindCurrent, Confidence: 50},
			{Value: "£12.00", Kind: KindCurrent, Confidence: 30},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	assert.Equal(t, "£89.00", profile.BestPrice)
	assert.Equal(t, "£89.00", profile.CurrentPrice)
	assert.Equal(t, models.PriceTypeRegular, profile.PriceType)
}

func TestReconcileCurrentWithOriginalBecomesDiscounted(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindOriginal: {
			{Value: "£100.00", Kind: KindOriginal, CrossedOut: true, Confidence: 60},
		},
		KindCurrent: {
			{Value: "£75.00", Kind: KindCurrent, Confidence: 55},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	assert.Equal(t, "£75.00", profile.BestPrice)
	assert.Equal(t, models.PriceTypeDiscounted, profile.PriceType)
	assert.InDelta(t, 25.0, profile.DiscountPercentage, 0.001)
}

func TestReconcileLoneCrossedPriceIsUncertain(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindOriginal: {
			{Value: "£49.99", Kind: KindOriginal, CrossedOut: true, Confidence: 60},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	require.True(t, profile.HasPrice())
	assert.Equal(t, "£49.99", profile.BestPrice)
	assert.Equal(t, models.PriceTypeUncertain, profile.PriceType)
}

func TestReconcileNoCandidates(t *testing.T) {
	profile := (&PriceReconciler{}).Reconcile(map[PriceKind][]*PriceCandidate{})

	assert.False(t, profile.HasPrice())
	assert.Equal(t, models.PriceTypeUnknown, profile.PriceType)
}

func TestReconcileNoDiscountWhenOriginalNotHigher(t *testing.T) {
	candidates := map[PriceKind][]*PriceCandidate{
		KindSale: {
			{Value: "£50.00", Kind: KindSale, Confidence: 70},
		},
		KindOriginal: {
			{Value: "£50.00", Kind: KindOriginal, CrossedOut: true, Confidence: 60},
		},
	}

	profile := (&PriceReconciler{}).Reconcile(candidates)

	assert.Zero(t, profile.DiscountPercentage)
	assert.Equal(t, models.PriceTypeSale, profile.PriceType)
}
