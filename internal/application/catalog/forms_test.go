package catalog

import (
	"testing"

	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranchForm(t *testing.T) {
	req := ParseBranchForm(map[string]string{
		FieldName:     "Main",
		FieldLocation: "NY",
		FieldEmail:    "main@example.com",
		"unknown":     "ignored",
	})

	assert.Equal(t, CreateBranchRequest{
		Name:           "Main",
		Location:       "NY",
		ContactDetails: ContactDetailsRequest{Email: "main@example.com"},
	}, req)
}

func TestParseSKUForm(t *testing.T) {
	base := map[string]string{
		FieldItemName:    "Widget",
		FieldCategory:    "Tools",
		FieldSubcategory: "Hand",
		FieldBrandName:   "Acme",
		FieldBranchID:    "branch-001",
	}
	with := func(key, value string) map[string]string {
		fields := make(map[string]string, len(base)+1)
		for k, v := range base {
			fields[k] = v
		}
		fields[key] = value
		return fields
	}

	tests := []struct {
		name     string
		fields   map[string]string
		wantAuto bool
		wantErr  bool
	}{
		{name: "missing flag", fields: base},
		{name: "blank flag", fields: with(FieldAutoGenerateCode, "  ")},
		{name: "true", fields: with(FieldAutoGenerateCode, "true"), wantAuto: true},
		{name: "one", fields: with(FieldAutoGenerateCode, "1"), wantAuto: true},
		{name: "false", fields: with(FieldAutoGenerateCode, "false")},
		{name: "garbage", fields: with(FieldAutoGenerateCode, "sometimes"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseSKUForm(tt.fields)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuto, req.AutoGenerateCode)
			assert.Equal(t, "Widget", req.ItemName)
			assert.Equal(t, "branch-001", req.BranchID)
		})
	}
}
