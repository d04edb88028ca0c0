package catalog

// Criteria is a set of optional equality predicates over SKU fields.
// Empty strings and a nil IsActive match everything; set predicates are ANDed.
type Criteria struct {
	Category  string `json:"category,omitempty"`
	BrandName string `json:"brandName,omitempty"`
	BranchID  string `json:"branchId,omitempty"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// IsEmpty reports whether no predicate is set
func (c Criteria) IsEmpty() bool {
	return c.Category == "" && c.BrandName == "" && c.BranchID == "" && c.IsActive == nil
}

// Matches reports whether the SKU satisfies every set predicate
func (c Criteria) Matches(s *SKU) bool {
	if c.Category != "" && s.Category != c.Category {
		return false
	}
	if c.BrandName != "" && s.BrandName != c.BrandName {
		return false
	}
	if c.BranchID != "" && s.BranchID != c.BranchID {
		return false
	}
	if c.IsActive != nil && s.IsActive != *c.IsActive {
		return false
	}
	return true
}

// ActiveOnly restricts matches to active SKUs
func ActiveOnly() Criteria {
	active := true
	return Criteria{IsActive: &active}
}

// InactiveOnly restricts matches to deactivated SKUs
func InactiveOnly() Criteria {
	active := false
	return Criteria{IsActive: &active}
}
