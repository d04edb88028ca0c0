package catalog

import (
	"strings"
	"time"

	"github.com/erp/skucatalog/internal/domain/shared"
)

const (
	maxCodeLength     = 50
	maxItemNameLength = 200
	maxTaxonomyLength = 100
)

// SKU represents a stock-keeping unit in the catalog.
// Code never changes once assigned; once DeactivatedAt is set the SKU stays
// inactive for good.
type SKU struct {
	shared.BaseEntity
	Code          string     `json:"code"`
	ItemName      string     `json:"itemName"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	BrandName     string     `json:"brandName"`
	BranchID      string     `json:"branchId"`
	IsActive      bool       `json:"isActive"`
	DeactivatedAt *time.Time `json:"deactivatedAt"`
}

// SKUInput carries the fields needed to create a SKU.
// When Code is blank or AutoGenerateCode is set, a code is generated.
type SKUInput struct {
	Code             string
	AutoGenerateCode bool
	ItemName         string
	Category         string
	Subcategory      string
	BrandName        string
	BranchID         string
}

// SKUPatch is a partial update of the descriptive fields; nil fields keep
// their prior value. Code, IsActive, DeactivatedAt and CreatedAt cannot be
// changed through a patch.
type SKUPatch struct {
	ItemName    *string
	Category    *string
	Subcategory *string
	BrandName   *string
	BranchID    *string
}

// IsEmpty reports whether the patch changes nothing
func (p SKUPatch) IsEmpty() bool {
	return p.ItemName == nil && p.Category == nil && p.Subcategory == nil &&
		p.BrandName == nil && p.BranchID == nil
}

// Clone returns a deep copy that shares no pointers with s
func (s *SKU) Clone() SKU {
	c := *s
	if s.DeactivatedAt != nil {
		at := *s.DeactivatedAt
		c.DeactivatedAt = &at
	}
	return c
}

// Deactivate marks the SKU inactive.
// It returns false, changing nothing, when the SKU is already inactive.
func (s *SKU) Deactivate(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	s.IsActive = false
	at := now
	s.DeactivatedAt = &at
	s.Touch(now)
	return true
}

// normalized returns the input with whitespace trimmed.
// A supplied code keeps its case; uniqueness is checked case-insensitively.
func (in SKUInput) normalized() SKUInput {
	return SKUInput{
		Code:             strings.TrimSpace(in.Code),
		AutoGenerateCode: in.AutoGenerateCode,
		ItemName:         strings.TrimSpace(in.ItemName),
		Category:         strings.TrimSpace(in.Category),
		Subcategory:      strings.TrimSpace(in.Subcategory),
		BrandName:        strings.TrimSpace(in.BrandName),
		BranchID:         strings.TrimSpace(in.BranchID),
	}
}

// wantsGeneratedCode reports whether the code must be generated
func (in SKUInput) wantsGeneratedCode() bool {
	return in.AutoGenerateCode || in.Code == ""
}

// validateDescriptive checks the required descriptive fields
func (in SKUInput) validateDescriptive() error {
	if err := validateItemName(in.ItemName); err != nil {
		return err
	}
	if err := validateTaxonomyField("Category", in.Category); err != nil {
		return err
	}
	if err := validateTaxonomyField("Subcategory", in.Subcategory); err != nil {
		return err
	}
	if err := validateTaxonomyField("Brand name", in.BrandName); err != nil {
		return err
	}
	if in.BranchID == "" {
		return shared.NewValidationError("Branch id cannot be empty")
	}
	return nil
}

// validate checks an already-built SKU (used on import)
func (s *SKU) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return shared.NewValidationError("SKU id cannot be empty")
	}
	if err := validateCode(s.Code); err != nil {
		return err
	}
	in := SKUInput{
		ItemName:    s.ItemName,
		Category:    s.Category,
		Subcategory: s.Subcategory,
		BrandName:   s.BrandName,
		BranchID:    s.BranchID,
	}
	if err := in.validateDescriptive(); err != nil {
		return err
	}
	if s.IsActive && s.DeactivatedAt != nil {
		return shared.NewValidationError("Active SKU %q cannot carry a deactivation time", s.ID)
	}
	if !s.IsActive && s.DeactivatedAt == nil {
		return shared.NewValidationError("Inactive SKU %q must carry a deactivation time", s.ID)
	}
	return nil
}

// validateCode checks a supplied or imported SKU code.
// Any characters are accepted, since generated codes carry brand names such as "H&M".
func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return shared.NewValidationError("SKU code cannot be empty")
	}
	if len(code) > maxCodeLength {
		return shared.NewValidationError("SKU code cannot exceed %d characters", maxCodeLength)
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewValidationError("Item name cannot be empty")
	}
	if len(name) > maxItemNameLength {
		return shared.NewValidationError("Item name cannot exceed %d characters", maxItemNameLength)
	}
	return nil
}

func validateTaxonomyField(label, value string) error {
	if value == "" {
		return shared.NewValidationError("%s cannot be empty", label)
	}
	if len(value) > maxTaxonomyLength {
		return shared.NewValidationError("%s cannot exceed %d characters", label, maxTaxonomyLength)
	}
	return nil
}
