package models

// Category is a purchasable variant of a product (e.g. a 1-month upgrade).
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceUSD    float64  `json:"price_usd"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

// Product groups the categories sold for one service.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Categories  []Category `json:"categories"`
}
