package app

import "github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"

// Catalog is the storefront's static product data. Goods are delivered
// manually after payment, so there is no stock to track.
var Catalog = []models.Product{
	{
		ID:          "youtube",
		Name:        "YouTube",
		Description: "Ad-free videos, background play, and YouTube Music.",
		Icon:        "MonitorPlay",
		Categories: []models.Category{
			{
				ID:          "jaspay-1mo",
				Name:        "Jaspay YouTube 1 Month",
				Description: "Upgrade your existing account via Jaspay.",
				PriceUSD:    3.99,
				Features:    []string{"1 Month Access", "Ad-free videos", "Background play", "Use your own email"},
				Popular:     true,
			},
			{
				ID:          "premium-account-1mo",
				Name:        "YouTube Premium Account 1 Month",
				Description: "A fresh account with YouTube Premium pre-activated.",
				PriceUSD:    4.99,
				Features:    []string{"1 Month Access", "Pre-activated account", "Instant delivery", "Full premium features"},
			},
			{
				ID:          "gmail-fresh",
				Name:        "Gmail Fresh",
				Description: "A brand new, secure Gmail account.",
				PriceUSD:    1.99,
				Features:    []string{"Freshly created", "Never used", "Secure login", "Full access"},
			},
		},
	},
	{
		ID:          "canva",
		Name:        "Canva",
		Description: "Premium templates, magic resize, and background remover.",
		Icon:        "Palette",
		Categories: []models.Category{
			{
				ID:          "invite-1mo",
				Name:        "Canva Pro Invite 1 Month",
				Description: "Join a Canva Pro team with your own account.",
				PriceUSD:    1.49,
				Features:    []string{"1 Month Access", "Premium templates", "Background remover", "Use your own email"},
				Popular:     true,
			},
			{
				ID:          "edu-lifetime",
				Name:        "Canva Edu Lifetime",
				Description: "Education workspace membership, no renewal needed.",
				PriceUSD:    4.99,
				Features:    []string{"Lifetime access", "Edu workspace", "Premium features", "One-time payment"},
			},
		},
	},
	{
		ID:          "spotify",
		Name:        "Spotify",
		Description: "Ad-free music, offline listening, unlimited skips.",
		Icon:        "Music",
		Categories: []models.Category{
			{
				ID:          "individual-1mo",
				Name:        "Spotify Premium 1 Month",
				Description: "Individual plan upgrade on your own account.",
				PriceUSD:    2.99,
				Features:    []string{"1 Month Access", "Ad-free music", "Offline mode", "Use your own email"},
			},
		},
	},
}

// FindCategory resolves a product/category pair from the catalog.
func FindCategory(productID, categoryID string) (models.Product, models.Category, bool) {
	for _, p := range Catalog {
		if p.ID != productID {
			continue
		}
		for _, cat := range p.Categories {
			if cat.ID == categoryID {
				return p, cat, true
			}
		}
	}
	return models.Product{}, models.Category{}, false
}
