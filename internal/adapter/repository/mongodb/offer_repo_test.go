package mongodb

import (
	"testing"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildOfferFilter_Empty(t *testing.T) {
	filter := buildOfferFilter(domain.OfferQuery{})
	assert.Equal(t, bson.M{}, filter)
}

func TestBuildOfferFilter_TitleIsCaseInsensitiveLiteral(t *testing.T) {
	filter := buildOfferFilter(domain.OfferQuery{Title: "shoes (new)"})

	regex, ok := filter["product_name"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "i", regex.Options)
	assert.Equal(t, `shoes \(new\)`, regex.Pattern)
}

func TestBuildOfferFilter_PriceBoundsCombine(t *testing.T) {
	filter := buildOfferFilter(domain.OfferQuery{
		PriceMin: floatPtr(20),
		PriceMax: floatPtr(80),
	})

	assert.Equal(t, bson.M{"$gte": 20.0, "$lte": 80.0}, filter["product_price"])
}

func TestBuildOfferFilter_SingleBound(t *testing.T) {
	filter := buildOfferFilter(domain.OfferQuery{PriceMax: floatPtr(80)})
	assert.Equal(t, bson.M{"$lte": 80.0}, filter["product_price"])

	filter = buildOfferFilter(domain.OfferQuery{PriceMin: floatPtr(20)})
	assert.Equal(t, bson.M{"$gte": 20.0}, filter["product_price"])
}

func TestBuildOfferSort(t *testing.T) {
	assert.Nil(t, buildOfferSort(domain.OfferQuery{}))
	assert.Equal(t, bson.D{{Key: "product_price", Value: 1}}, buildOfferSort(domain.OfferQuery{Sort: domain.SortPriceAsc}))
	assert.Equal(t, bson.D{{Key: "product_price", Value: -1}}, buildOfferSort(domain.OfferQuery{Sort: domain.SortPriceDesc}))
}
