package product

// Product represents a catalog item and maps to the `products` table.
// Price/stock/availability are read by the cart and order flows; only admin
// operations mutate them.
type Product struct {
	ID          int     `json:"productId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"isAvailable"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Summary is the reduced product shape embedded wherever a cart or order
// line refers to a product.
type Summary struct {
	ID          int     `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// Summary returns the embedded shape used in cart/order responses.
func (p Product) Summary() Summary {
	return Summary{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		IsAvailable: p.IsAvailable,
	}
}

// AllowedCategories contains the supported product categories.
var AllowedCategories = []string{
	"ELECTRONICS",
	"KIDS",
	"WOMENS",
	"MENS",
	"HOME_AND_FURNITURE",
	"BEAUTY",
	"SPORTS_AND_OUTDOORS",
	"GROCERY",
	"LUXURY",
	"PET_SUPPLIES",
}

// ValidCategory reports whether category is one of the allowed values.
func ValidCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}
