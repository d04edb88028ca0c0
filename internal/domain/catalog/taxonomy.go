package catalog

// TaxonomyCategory is a top-level category and its subcategories
type TaxonomyCategory struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// Taxonomy is the reference list offered to operators when registering SKUs.
// It is informational: SKU creation accepts values outside it.
type Taxonomy struct {
	Categories []TaxonomyCategory `json:"categories"`
	Brands     []string           `json:"brands"`
}

// DefaultTaxonomy returns a fresh copy of the built-in taxonomy
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []TaxonomyCategory{
			{Name: "Electronics", Subcategories: []string{"Televisions", "Audio", "Cameras", "Accessories"}},
			{Name: "Computers", Subcategories: []string{"Laptops", "Desktops", "Tablets", "Accessories"}},
			{Name: "Furniture", Subcategories: []string{"Chairs", "Tables", "Sofas", "Beds", "Storage"}},
			{Name: "Clothing", Subcategories: []string{"Shirts", "Pants", "Dresses", "Footwear", "Accessories"}},
			{Name: "Kitchen", Subcategories: []string{"Appliances", "Cookware", "Utensils", "Dinnerware"}},
		},
		Brands: []string{"Samsung", "Apple", "IKEA", "Nike", "KitchenAid", "Sony", "Dell", "H&M", "Bosch", "LG"},
	}
}

// Subcategories returns the subcategories of the named category, or nil
func (t Taxonomy) Subcategories(category string) []string {
	for _, c := range t.Categories {
		if c.Name == category {
			out := make([]string, len(c.Subcategories))
			copy(out, c.Subcategories)
			return out
		}
	}
	return nil
}

// CategoryNames returns the category names in display order
func (t Taxonomy) CategoryNames() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Name)
	}
	return names
}
