package providers

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/smartcity/context-hub/internal/city"
)

// ShopOffersProvider serves synthetic shop offers; real offer feeds are
// proprietary. Offers are seeded by the location key like the traffic data.
type ShopOffersProvider struct{}

func NewShopOffersProvider() *ShopOffersProvider {
	return &ShopOffersProvider{}
}

func (p *ShopOffersProvider) Topic() city.Topic {
	return city.TopicShopOffers
}

var offerCategories = []string{"Groceries", "Electronics", "Fashion", "Restaurants", "Entertainment"}

func (p *ShopOffersProvider) Fetch(ctx context.Context, loc city.Location) (city.ProviderResult, error) {
	rng := rand.New(rand.NewSource(locationSeed(loc) + 1))

	offers := make([]map[string]any, 0, len(offerCategories))
	for _, category := range offerCategories {
		discount := 10 + rng.Intn(41)
		offers = append(offers, map[string]any{
			"category":    category,
			"store":       fmt.Sprintf("%s Store %d", category, 1+rng.Intn(5)),
			"offer":       fmt.Sprintf("%d%% OFF", discount),
			"discount":    discount,
			"location":    fmt.Sprintf("%s City Center", loc.City),
			"valid_until": time.Now().UTC().AddDate(0, 0, 1+rng.Intn(7)).Format("2006-01-02"),
		})
	}

	// Top three by discount, formatted for the answer text.
	best := bestDeals(offers, 3)

	return city.ProviderResult{
		Topic:    city.TopicShopOffers,
		Location: loc,
		Payload: map[string]any{
			"total_offers": len(offers),
			"offers":       offers,
			"best_deals":   best,
			"categories":   offerCategories,
		},
		Source:    city.SourceMock,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func bestDeals(offers []map[string]any, n int) []string {
	sorted := append([]map[string]any(nil), offers...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i]["discount"].(int) > sorted[j]["discount"].(int)
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	deals := make([]string, 0, n)
	for _, offer := range sorted[:n] {
		deals = append(deals, fmt.Sprintf("%s - %s", offer["store"], offer["offer"]))
	}
	return deals
}
