package catalog

import (
	"strings"

	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/shared"
)

// resultView is the visible result set: the catalog narrowed by the current
// search term and filter criteria.
type resultView struct {
	term     string
	criteria catalog.Criteria
	items    []catalog.SKU
	sync     bool
}

func (v *resultView) refresh(skus *catalog.SKUCatalog) {
	v.items = skus.Query(v.term, v.criteria)
}

// changed re-derives the view after a catalog mutation when sync is on
func (v *resultView) changed(skus *catalog.SKUCatalog) {
	if v.sync {
		v.refresh(skus)
	}
}

func (v *resultView) reset() {
	v.term = ""
	v.criteria = catalog.Criteria{}
	v.items = nil
}

func (v *resultView) snapshot() []catalog.SKU {
	out := make([]catalog.SKU, len(v.items))
	for i := range v.items {
		out[i] = v.items[i].Clone()
	}
	return out
}

// Search narrows the visible set to SKUs whose code or item name contains
// term (case-insensitive), keeping the current filter. A blank term clears
// the search.
func (f *Facade) Search(term string) []catalog.SKU {
	if strings.TrimSpace(term) == "" {
		term = ""
	}
	f.view.term = term
	f.view.refresh(f.skus)
	return f.view.snapshot()
}

// ApplyFilter replaces the filter criteria of the visible set, keeping the
// current search term.
func (f *Facade) ApplyFilter(criteria catalog.Criteria) []catalog.SKU {
	f.view.criteria = criteria
	f.view.refresh(f.skus)
	return f.view.snapshot()
}

// ResetView clears term and criteria so the whole catalog is visible
func (f *Facade) ResetView() []catalog.SKU {
	f.view.term = ""
	f.view.criteria = catalog.Criteria{}
	f.view.refresh(f.skus)
	return f.view.snapshot()
}

// Visible returns the current visible result set
func (f *Facade) Visible() []catalog.SKU {
	return f.view.snapshot()
}

// VisiblePage returns one page of the visible result set.
// page < 1 means the first page; pageSize < 1 uses the default and is capped
// at the maximum.
func (f *Facade) VisiblePage(page, pageSize int) shared.Paginated[catalog.SKU] {
	return shared.NewPaginated(f.view.items, page, f.clampPageSize(pageSize))
}

// SetViewSync turns automatic re-derivation of the visible set on or off.
// Turning it on refreshes the view immediately.
func (f *Facade) SetViewSync(enabled bool) {
	f.view.sync = enabled
	if enabled {
		f.view.refresh(f.skus)
	}
}

// ViewState reports the term and criteria behind the visible set
func (f *Facade) ViewState() ViewState {
	return ViewState{Term: f.view.term, Criteria: f.view.criteria, InSync: f.view.sync}
}
