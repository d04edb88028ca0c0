package catalog

import (
	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/inventory"
)

// ContactDetailsRequest holds optional branch contact fields
type ContactDetailsRequest struct {
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	Name           string                `json:"name" validate:"required,max=200"`
	Location       string                `json:"location" validate:"required,max=200"`
	ContactDetails ContactDetailsRequest `json:"contactDetails"`
}

// UpdateContactDetailsRequest replaces only the contact fields that are present
type UpdateContactDetailsRequest struct {
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Email   *string `json:"email" validate:"omitempty,email,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// UpdateBranchRequest represents a partial branch update
type UpdateBranchRequest struct {
	Name           *string                      `json:"name" validate:"omitempty,max=200"`
	Location       *string                      `json:"location" validate:"omitempty,max=200"`
	ContactDetails *UpdateContactDetailsRequest `json:"contactDetails"`
}

// CreateSKURequest represents a request to register a SKU.
// A blank Code or AutoGenerateCode=true asks the catalog to generate one.
type CreateSKURequest struct {
	Code             string `json:"code" validate:"omitempty,max=50"`
	AutoGenerateCode bool   `json:"autoGenerateCode"`
	ItemName         string `json:"itemName" validate:"required,max=200"`
	Category         string `json:"category" validate:"required,max=100"`
	Subcategory      string `json:"subcategory" validate:"required,max=100"`
	BrandName        string `json:"brandName" validate:"required,max=100"`
	BranchID         string `json:"branchId" validate:"required"`
}

// UpdateSKURequest represents a partial update of a SKU's descriptive fields
type UpdateSKURequest struct {
	ItemName    *string `json:"itemName" validate:"omitempty,max=200"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Subcategory *string `json:"subcategory" validate:"omitempty,max=100"`
	BrandName   *string `json:"brandName" validate:"omitempty,max=100"`
	BranchID    *string `json:"branchId"`
}

func (r CreateBranchRequest) toInput() inventory.BranchInput {
	return inventory.BranchInput{
		Name:     r.Name,
		Location: r.Location,
		ContactDetails: inventory.ContactDetails{
			Phone:   r.ContactDetails.Phone,
			Email:   r.ContactDetails.Email,
			Address: r.ContactDetails.Address,
		},
	}
}

func (r UpdateBranchRequest) toPatch() inventory.BranchPatch {
	patch := inventory.BranchPatch{Name: r.Name, Location: r.Location}
	if cd := r.ContactDetails; cd != nil {
		patch.ContactDetails = &inventory.ContactDetailsPatch{
			Phone:   cd.Phone,
			Email:   cd.Email,
			Address: cd.Address,
		}
	}
	return patch
}

func (r CreateSKURequest) toInput() catalog.SKUInput {
	return catalog.SKUInput{
		Code:             r.Code,
		AutoGenerateCode: r.AutoGenerateCode,
		ItemName:         r.ItemName,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		BrandName:        r.BrandName,
		BranchID:         r.BranchID,
	}
}

func (r UpdateSKURequest) toPatch() catalog.SKUPatch {
	return catalog.SKUPatch{
		ItemName:    r.ItemName,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		BrandName:   r.BrandName,
		BranchID:    r.BranchID,
	}
}

// CatalogStats summarizes the catalog for a dashboard
type CatalogStats struct {
	TotalBranches int `json:"totalBranches"`
	TotalSKUs     int `json:"totalSkus"`
	ActiveSKUs    int `json:"activeSkus"`
	InactiveSKUs  int `json:"inactiveSkus"`
}

// DanglingReference names a SKU whose branch no longer exists
type DanglingReference struct {
	SKUID    string `json:"skuId"`
	Code     string `json:"code"`
	BranchID string `json:"branchId"`
}

// ViewState describes what the visible result set is derived from
type ViewState struct {
	Term     string           `json:"term"`
	Criteria catalog.Criteria `json:"criteria"`
	InSync   bool             `json:"inSync"`
}
