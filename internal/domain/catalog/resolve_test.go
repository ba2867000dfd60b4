package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func lamp() *Product {
	return &Product{
		ID:         "p1",
		Name:       "Desk lamp",
		PriceCents: 85000,
		ImageURL:   str("https://cdn/lamp.jpg"),
		Variants: []Variant{
			{ID: "v1", ProductID: "p1", Name: "Black", PriceCents: 1000},
			{ID: "v2", ProductID: "p1", Name: "Brass", PriceCents: 2000, ImageURL: str("https://cdn/brass.jpg")},
		},
	}
}

func TestResolveSelectedVariantWins(t *testing.T) {
	cand, err := Resolve(lamp(), "v2")
	require.NoError(t, err)

	assert.Equal(t, "v2", cand.ItemID)
	assert.Equal(t, int64(2000), cand.UnitPriceCents)
	assert.Equal(t, "Desk lamp (Brass)", cand.Name)
	// Variant image overrides the product image when present.
	assert.Equal(t, "https://cdn/brass.jpg", *cand.ImageURL)
}

func TestResolveDefaultsToFirstVariant(t *testing.T) {
	cand, err := Resolve(lamp(), "")
	require.NoError(t, err)

	assert.Equal(t, "v1", cand.ItemID)
	assert.Equal(t, int64(1000), cand.UnitPriceCents)
	assert.Equal(t, "Desk lamp (Black)", cand.Name)
	// First variant has no image of its own, so the product image is used.
	assert.Equal(t, "https://cdn/lamp.jpg", *cand.ImageURL)
}

func TestResolveVariantlessProduct(t *testing.T) {
	p := &Product{ID: "p2", Name: "Chandelier", PriceCents: 250000, ImageURL: str("https://cdn/ch.jpg")}

	cand, err := Resolve(p, "")
	require.NoError(t, err)

	assert.Equal(t, "p2", cand.ItemID)
	assert.Equal(t, "Chandelier", cand.Name)
	assert.Equal(t, int64(250000), cand.UnitPriceCents)
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve(lamp(), "v999")
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestResolveIsPure(t *testing.T) {
	p := lamp()
	_, err := Resolve(p, "v2")
	require.NoError(t, err)
	assert.Equal(t, lamp(), p)
}
