package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/inventory"
	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/erp/skucatalog/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SeedData is a batch of fully-formed records imported verbatim by Facade.Seed
type SeedData struct {
	Branches []inventory.Branch `json:"branches"`
	SKUs     []catalog.SKU      `json:"skus"`
}

// DemoSeed returns the demo dataset: three branches and five SKUs, one of them
// deactivated. Every call returns fresh values.
func DemoSeed() SeedData {
	return SeedData{
		Branches: []inventory.Branch{
			demoBranch("branch-001", "Main Warehouse", "New York",
				inventory.ContactDetails{Phone: "212-555-1234", Email: "main@example.com", Address: "123 Main St, New York, NY 10001"},
				"2025-01-15T08:30:00Z"),
			demoBranch("branch-002", "West Coast Distribution", "Los Angeles",
				inventory.ContactDetails{Phone: "310-555-6789", Email: "westcoast@example.com", Address: "456 Ocean Ave, Los Angeles, CA 90001"},
				"2025-01-20T10:15:00Z"),
			demoBranch("branch-003", "Midwest Fulfillment", "Chicago",
				inventory.ContactDetails{Phone: "312-555-4321", Email: "midwest@example.com", Address: "789 Lake St, Chicago, IL 60007"},
				"2025-02-05T14:45:00Z"),
		},
		SKUs: []catalog.SKU{
			demoSKU("sku-001", "EL-TV-55-SAM", "55-inch Smart TV", "Electronics", "Televisions", "Samsung", "branch-001",
				"2025-02-10T14:25:00Z", ""),
			demoSKU("sku-002", "AP-LP-13-APP", "13-inch Laptop", "Computers", "Laptops", "Apple", "branch-001",
				"2025-02-12T09:30:00Z", ""),
			demoSKU("sku-003", "HM-CH-WD-IKE", "Wooden Dining Chair", "Furniture", "Chairs", "IKEA", "branch-002",
				"2025-02-15T11:45:00Z", ""),
			demoSKU("sku-004", "CL-SH-42-NIK", "Running Shoes Size 42", "Clothing", "Footwear", "Nike", "branch-003",
				"2025-02-20T16:20:00Z", "2025-03-15T10:10:00Z"),
			demoSKU("sku-005", "KT-BL-SS-KTC", "Stainless Steel Blender", "Kitchen", "Appliances", "KitchenAid", "branch-001",
				"2025-02-25T13:15:00Z", ""),
		},
	}
}

// Seed imports fully-formed records verbatim (ids, codes, state, timestamps).
// The batch is applied atomically: it is first replayed against a scratch copy
// of the catalog, and nothing is written unless every record is accepted.
// SKUs may reference branches that do not exist.
func (f *Facade) Seed(ctx context.Context, data SeedData) error {
	_, span := telemetry.StartSpan(ctx, OpSeed,
		"branch_count", len(data.Branches),
		"sku_count", len(data.SKUs),
	)
	defer span.End()

	if f.closed {
		return f.fail(span, OpSeed, "Failed to seed catalog", errClosed)
	}
	if err := f.rehearseSeed(data); err != nil {
		return f.fail(span, OpSeed, "Failed to seed catalog", err)
	}

	for _, b := range data.Branches {
		if err := f.branches.Import(b); err != nil {
			// Unreachable after a successful rehearsal.
			return f.fail(span, OpSeed, "Failed to seed catalog", err)
		}
	}
	for _, s := range data.SKUs {
		if err := f.skus.Import(s); err != nil {
			return f.fail(span, OpSeed, "Failed to seed catalog", err)
		}
	}

	f.view.changed(f.skus)
	f.succeed(OpSeed, fmt.Sprintf("Seeded %d branch(es) and %d SKU(s)", len(data.Branches), len(data.SKUs)),
		zap.Int("branches", len(data.Branches)), zap.Int("skus", len(data.SKUs)))
	return nil
}

// rehearseSeed replays current state plus the batch into throwaway stores
func (f *Facade) rehearseSeed(data SeedData) error {
	ids := shared.NewRandomIDGenerator()
	branches := inventory.NewBranchDirectory(ids, f.now)
	skus := catalog.NewSKUCatalog(branches, ids, nil, f.now)

	for _, b := range f.branches.List() {
		if err := branches.Import(b); err != nil {
			return err
		}
	}
	for _, s := range f.skus.List() {
		if err := skus.Import(s); err != nil {
			return err
		}
	}

	for i, b := range data.Branches {
		if err := branches.Import(b); err != nil {
			return fmt.Errorf("branch #%d: %w", i+1, err)
		}
		if f.idIssued(b.ID) {
			return fmt.Errorf("branch #%d: %w", i+1,
				shared.NewValidationError("Branch id %q was already issued and cannot be reused", b.ID))
		}
	}
	for i, s := range data.SKUs {
		if err := skus.Import(s); err != nil {
			return fmt.Errorf("SKU #%d: %w", i+1, err)
		}
		if f.idIssued(s.ID) {
			return fmt.Errorf("SKU #%d: %w", i+1,
				shared.NewValidationError("SKU id %q was already issued and cannot be reused", s.ID))
		}
	}
	return nil
}

// idIssued reports whether the live generator has handed out or reserved id.
// Live records were already rejected by the scratch stores, so a hit here
// means the id belonged to a deleted record.
func (f *Facade) idIssued(id string) bool {
	r, ok := f.ids.(shared.IDReserver)
	return ok && r.Issued(id)
}

func demoBranch(id, name, location string, contact inventory.ContactDetails, created string) inventory.Branch {
	return inventory.Branch{
		BaseEntity:     shared.NewBaseEntity(id, mustTime(created)),
		Name:           name,
		Location:       location,
		ContactDetails: contact,
	}
}

// demoSKU builds a seed SKU; a non-empty deactivated timestamp makes it inactive
// and doubles as its last update.
func demoSKU(id, code, itemName, category, subcategory, brand, branchID, created, deactivated string) catalog.SKU {
	s := catalog.SKU{
		BaseEntity:  shared.NewBaseEntity(id, mustTime(created)),
		Code:        code,
		ItemName:    itemName,
		Category:    category,
		Subcategory: subcategory,
		BrandName:   brand,
		BranchID:    branchID,
		IsActive:    true,
	}
	if deactivated != "" {
		s.Deactivate(mustTime(deactivated))
	}
	return s
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
