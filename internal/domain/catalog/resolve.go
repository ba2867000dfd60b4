package catalog

import (
	"fmt"

	"svitlo/internal/domain/cart"
)

// Resolve turns a product plus the currently selected variant into the
// cart candidate. For a variant-bearing product the purchasable entity is
// the selected variant: its id, its price, its image if it has one. An empty
// selection defaults to the first variant in the product's list. Selecting a
// variant is pure; nothing touches the cart until AddItem is called with the
// returned candidate.
func Resolve(p *Product, selectedVariantID string) (cart.Candidate, error) {
	if len(p.Variants) == 0 {
		return cart.Candidate{
			ItemID:         p.ID,
			Name:           p.Name,
			UnitPriceCents: p.PriceCents,
			ImageURL:       p.ImageURL,
		}, nil
	}

	v := &p.Variants[0]
	if selectedVariantID != "" {
		v = nil
		for i := range p.Variants {
			if p.Variants[i].ID == selectedVariantID {
				v = &p.Variants[i]
				break
			}
		}
		if v == nil {
			return cart.Candidate{}, fmt.Errorf("%w: %s", ErrVariantNotFound, selectedVariantID)
		}
	}

	img := v.ImageURL
	if img == nil {
		img = p.ImageURL
	}

	return cart.Candidate{
		ItemID:         v.ID,
		Name:           fmt.Sprintf("%s (%s)", p.Name, v.Name),
		UnitPriceCents: v.PriceCents,
		ImageURL:       img,
	}, nil
}
