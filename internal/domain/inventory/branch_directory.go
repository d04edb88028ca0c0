package inventory

import (
	"github.com/erp/skucatalog/internal/domain/shared"
)

// BranchDirectory owns the set of branches in insertion order.
// It is not safe for concurrent use; hosts serialize access (see the facade).
type BranchDirectory struct {
	order []string
	byID  map[string]*Branch
	ids   shared.IDGenerator
	now   shared.Clock
}

// NewBranchDirectory creates an empty directory
func NewBranchDirectory(ids shared.IDGenerator, clock shared.Clock) *BranchDirectory {
	if clock == nil {
		clock = shared.SystemClock
	}
	return &BranchDirectory{
		byID: make(map[string]*Branch),
		ids:  ids,
		now:  clock,
	}
}

// Create validates the input, assigns an id and timestamps, and appends the branch
func (d *BranchDirectory) Create(input BranchInput) (Branch, error) {
	// Validate before drawing an id so a rejected input consumes nothing.
	if err := input.Validate(); err != nil {
		return Branch{}, err
	}

	b, err := NewBranch(d.ids.Next(shared.PrefixBranch), input, d.now())
	if err != nil {
		return Branch{}, err
	}
	d.insert(b)
	return *b, nil
}

// Import inserts a fully-formed branch (id and timestamps preserved)
func (d *BranchDirectory) Import(b Branch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, exists := d.byID[b.ID]; exists {
		return shared.NewValidationError("Branch id %q already exists", b.ID)
	}
	if r, ok := d.ids.(shared.IDReserver); ok {
		if r.Issued(b.ID) {
			return shared.NewValidationError("Branch id %q was already issued and cannot be reused", b.ID)
		}
		r.Reserve(b.ID)
	}
	copied := b
	d.insert(&copied)
	return nil
}

// List returns a snapshot of all branches in insertion order
func (d *BranchDirectory) List() []Branch {
	result := make([]Branch, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, *d.byID[id])
	}
	return result
}

// GetByID returns a snapshot of the branch with the given id
func (d *BranchDirectory) GetByID(id string) (Branch, error) {
	b, ok := d.byID[id]
	if !ok {
		return Branch{}, shared.NewNotFoundError("Branch", id)
	}
	return *b, nil
}

// Update merges the patch into the branch and refreshes UpdatedAt
func (d *BranchDirectory) Update(id string, patch BranchPatch) (Branch, error) {
	b, ok := d.byID[id]
	if !ok {
		return Branch{}, shared.NewNotFoundError("Branch", id)
	}
	if err := b.Apply(patch, d.now()); err != nil {
		return Branch{}, err
	}
	return *b, nil
}

// Delete removes the branch if present and reports whether a removal occurred.
// SKUs that reference the branch are left as they are.
func (d *BranchDirectory) Delete(id string) bool {
	if _, ok := d.byID[id]; !ok {
		return false
	}
	delete(d.byID, id)
	for i, existing := range d.order {
		if existing == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Exists reports whether a branch with the given id is present
func (d *BranchDirectory) Exists(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// Count returns the number of branches
func (d *BranchDirectory) Count() int {
	return len(d.order)
}

// Reset drops every branch
func (d *BranchDirectory) Reset() {
	d.order = nil
	d.byID = make(map[string]*Branch)
}

func (d *BranchDirectory) insert(b *Branch) {
	d.byID[b.ID] = b
	d.order = append(d.order, b.ID)
}
