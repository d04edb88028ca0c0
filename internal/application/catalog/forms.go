package catalog

import (
	"strings"

	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/spf13/cast"
)

// Form field keys accepted by ParseBranchForm and ParseSKUForm
const (
	FieldName             = "name"
	FieldLocation         = "location"
	FieldPhone            = "phone"
	FieldEmail            = "email"
	FieldAddress          = "address"
	FieldCode             = "code"
	FieldAutoGenerateCode = "autoGenerateCode"
	FieldItemName         = "itemName"
	FieldCategory         = "category"
	FieldSubcategory      = "subcategory"
	FieldBrandName        = "brandName"
	FieldBranchID         = "branchId"
)

// ParseBranchForm converts plain presentation fields into a CreateBranchRequest.
// Unknown keys are ignored.
func ParseBranchForm(fields map[string]string) CreateBranchRequest {
	return CreateBranchRequest{
		Name:     fields[FieldName],
		Location: fields[FieldLocation],
		ContactDetails: ContactDetailsRequest{
			Phone:   fields[FieldPhone],
			Email:   fields[FieldEmail],
			Address: fields[FieldAddress],
		},
	}
}

// ParseSKUForm converts plain presentation fields into a CreateSKURequest.
// autoGenerateCode accepts the usual boolean spellings ("true", "1", "false"...);
// a missing or blank value means false.
func ParseSKUForm(fields map[string]string) (CreateSKURequest, error) {
	req := CreateSKURequest{
		Code:        fields[FieldCode],
		ItemName:    fields[FieldItemName],
		Category:    fields[FieldCategory],
		Subcategory: fields[FieldSubcategory],
		BrandName:   fields[FieldBrandName],
		BranchID:    fields[FieldBranchID],
	}

	if raw := strings.TrimSpace(fields[FieldAutoGenerateCode]); raw != "" {
		auto, err := cast.ToBoolE(raw)
		if err != nil {
			return CreateSKURequest{}, shared.NewValidationError("%s must be a boolean, got %q", FieldAutoGenerateCode, raw)
		}
		req.AutoGenerateCode = auto
	}
	return req, nil
}
