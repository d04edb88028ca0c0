package catalog

import (
	"strings"

	"github.com/erp/skucatalog/internal/domain/shared"
	"golang.org/x/text/cases"
)

// BranchLookup answers whether a branch id currently exists
type BranchLookup interface {
	Exists(id string) bool
}

// SKUCatalog owns the set of SKUs in insertion order.
// Codes are unique across active and inactive SKUs, compared case-insensitively.
// It is not safe for concurrent use.
type SKUCatalog struct {
	order    []string
	byID     map[string]*SKU
	codes    map[string]string // folded code -> sku id
	branches BranchLookup
	ids      shared.IDGenerator
	codegen  *CodeGenerator
	now      shared.Clock
}

// NewSKUCatalog creates an empty catalog
func NewSKUCatalog(branches BranchLookup, ids shared.IDGenerator, codegen *CodeGenerator, clock shared.Clock) *SKUCatalog {
	if codegen == nil {
		codegen = NewCodeGenerator(nil, DefaultCodeAttempts)
	}
	if clock == nil {
		clock = shared.SystemClock
	}
	return &SKUCatalog{
		byID:     make(map[string]*SKU),
		codes:    make(map[string]string),
		branches: branches,
		ids:      ids,
		codegen:  codegen,
		now:      clock,
	}
}

// Create validates the input, resolves the code and appends an active SKU
func (c *SKUCatalog) Create(input SKUInput) (SKU, error) {
	in := input.normalized()
	if err := in.validateDescriptive(); err != nil {
		return SKU{}, err
	}
	if !c.branches.Exists(in.BranchID) {
		return SKU{}, shared.NewValidationError("Branch %q does not exist", in.BranchID)
	}

	code, err := c.resolveCode(in)
	if err != nil {
		return SKU{}, err
	}

	now := c.now()
	sku := &SKU{
		BaseEntity:  shared.NewBaseEntity(c.ids.Next(shared.PrefixSKU), now),
		Code:        code,
		ItemName:    in.ItemName,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		BrandName:   in.BrandName,
		BranchID:    in.BranchID,
		IsActive:    true,
	}
	c.insert(sku)
	return sku.Clone(), nil
}

func (c *SKUCatalog) resolveCode(in SKUInput) (string, error) {
	if in.wantsGeneratedCode() {
		return c.codegen.Generate(in.Category, in.Subcategory, in.BrandName, c.CodeExists)
	}
	if err := validateCode(in.Code); err != nil {
		return "", err
	}
	if c.CodeExists(in.Code) {
		return "", shared.NewDomainError(shared.CodeDuplicateCode, "SKU code '"+in.Code+"' already exists")
	}
	return in.Code, nil
}

// Import inserts a fully-formed SKU, preserving id, code, state and timestamps.
// The branch reference is not checked so historical records may dangle.
func (c *SKUCatalog) Import(s SKU) error {
	if err := s.validate(); err != nil {
		return err
	}
	if _, exists := c.byID[s.ID]; exists {
		return shared.NewValidationError("SKU id %q already exists", s.ID)
	}
	if c.CodeExists(s.Code) {
		return shared.NewDomainError(shared.CodeDuplicateCode, "SKU code '"+s.Code+"' already exists")
	}
	if r, ok := c.ids.(shared.IDReserver); ok {
		if r.Issued(s.ID) {
			return shared.NewValidationError("SKU id %q was already issued and cannot be reused", s.ID)
		}
		r.Reserve(s.ID)
	}
	copied := s.Clone()
	c.insert(&copied)
	return nil
}

// CodeExists reports whether any tracked SKU uses the code (case-insensitive)
func (c *SKUCatalog) CodeExists(code string) bool {
	_, ok := c.codes[foldCode(code)]
	return ok
}

// GetByID returns a snapshot of the SKU with the given id
func (c *SKUCatalog) GetByID(id string) (SKU, error) {
	s, ok := c.byID[id]
	if !ok {
		return SKU{}, shared.NewNotFoundError("SKU", id)
	}
	return s.Clone(), nil
}

// List returns a snapshot of every SKU in insertion order
func (c *SKUCatalog) List() []SKU {
	return c.collect(func(*SKU) bool { return true })
}

// Update merges the descriptive fields of the patch and refreshes UpdatedAt.
// Inactive SKUs may still be corrected. Nothing is written if any field fails.
func (c *SKUCatalog) Update(id string, patch SKUPatch) (SKU, error) {
	s, ok := c.byID[id]
	if !ok {
		return SKU{}, shared.NewNotFoundError("SKU", id)
	}

	next := SKUInput{
		ItemName:    s.ItemName,
		Category:    s.Category,
		Subcategory: s.Subcategory,
		BrandName:   s.BrandName,
		BranchID:    s.BranchID,
	}
	if patch.ItemName != nil {
		next.ItemName = *patch.ItemName
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		next.Subcategory = *patch.Subcategory
	}
	if patch.BrandName != nil {
		next.BrandName = *patch.BrandName
	}
	if patch.BranchID != nil {
		next.BranchID = *patch.BranchID
	}
	next = next.normalized()

	if err := next.validateDescriptive(); err != nil {
		return SKU{}, err
	}
	if patch.BranchID != nil && next.BranchID != s.BranchID && !c.branches.Exists(next.BranchID) {
		return SKU{}, shared.NewValidationError("Branch %q does not exist", next.BranchID)
	}

	s.ItemName = next.ItemName
	s.Category = next.Category
	s.Subcategory = next.Subcategory
	s.BrandName = next.BrandName
	s.BranchID = next.BranchID
	s.Touch(c.now())
	return s.Clone(), nil
}

// Deactivate marks the SKU inactive.
// The bool result is false when the SKU was already inactive; the SKU is then
// returned unchanged and no error is raised.
func (c *SKUCatalog) Deactivate(id string) (SKU, bool, error) {
	s, ok := c.byID[id]
	if !ok {
		return SKU{}, false, shared.NewNotFoundError("SKU", id)
	}
	changed := s.Deactivate(c.now())
	return s.Clone(), changed, nil
}

// Search returns SKUs whose code or item name contains the term,
// ignoring case. A blank term returns the whole catalog in order.
func (c *SKUCatalog) Search(term string) []SKU {
	return c.Query(term, Criteria{})
}

// Filter returns SKUs matching every set predicate of the criteria
func (c *SKUCatalog) Filter(criteria Criteria) []SKU {
	return c.Query("", criteria)
}

// Query returns the intersection of Search(term) and Filter(criteria)
func (c *SKUCatalog) Query(term string, criteria Criteria) []SKU {
	match := termMatcher(term)
	return c.collect(func(s *SKU) bool {
		return criteria.Matches(s) && match(s)
	})
}

// Dangling returns SKUs whose branch no longer exists
func (c *SKUCatalog) Dangling() []SKU {
	return c.collect(func(s *SKU) bool { return !c.branches.Exists(s.BranchID) })
}

// ReferencingBranch returns SKUs that point at the given branch
func (c *SKUCatalog) ReferencingBranch(branchID string) []SKU {
	return c.Filter(Criteria{BranchID: branchID})
}

// Count returns the number of SKUs
func (c *SKUCatalog) Count() int {
	return len(c.order)
}

// CountActive returns the number of active SKUs
func (c *SKUCatalog) CountActive() int {
	n := 0
	for _, id := range c.order {
		if c.byID[id].IsActive {
			n++
		}
	}
	return n
}

// Reset drops every SKU
func (c *SKUCatalog) Reset() {
	c.order = nil
	c.byID = make(map[string]*SKU)
	c.codes = make(map[string]string)
}

func (c *SKUCatalog) insert(s *SKU) {
	c.byID[s.ID] = s
	c.codes[foldCode(s.Code)] = s.ID
	c.order = append(c.order, s.ID)
}

func (c *SKUCatalog) collect(keep func(*SKU) bool) []SKU {
	result := make([]SKU, 0)
	for _, id := range c.order {
		s := c.byID[id]
		if keep(s) {
			result = append(result, s.Clone())
		}
	}
	return result
}

// termMatcher builds a case-insensitive substring predicate over code and item name.
// Only a blank term matches everything; otherwise the term is used as given,
// surrounding spaces included.
func termMatcher(term string) func(*SKU) bool {
	if strings.TrimSpace(term) == "" {
		return func(*SKU) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return func(s *SKU) bool {
		return strings.Contains(fold.String(s.Code), needle) ||
			strings.Contains(fold.String(s.ItemName), needle)
	}
}

func foldCode(code string) string {
	return cases.Fold().String(strings.TrimSpace(code))
}
