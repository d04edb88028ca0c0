// Package catalog is the single command/query surface over branches, SKUs and
// encodings. It keeps the visible result set in sync and emits a notification
// after every command.
package catalog

import (
	"context"
	"fmt"

	"github.com/erp/skucatalog/internal/domain/barcode"
	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/inventory"
	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/erp/skucatalog/internal/infrastructure/telemetry"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Operation names carried by notifications, log fields and spans
const (
	OpCreateBranch  = "create_branch"
	OpUpdateBranch  = "update_branch"
	OpDeleteBranch  = "delete_branch"
	OpCreateSKU     = "create_sku"
	OpUpdateSKU     = "update_sku"
	OpDeactivateSKU = "deactivate_sku"
	OpEncodeBarcode = "encode_barcode"
	OpEncodeQR      = "encode_qr"
	OpDecodeBarcode = "decode_barcode"
	OpDecodeQR      = "decode_qr"
	OpSeed          = "seed"
	OpQuery         = "query"
)

// Default page sizes for VisiblePage and QueryPage
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// errClosed is returned by every command issued after Close
var errClosed = shared.NewValidationError("catalog is closed")

// Option configures a Facade
type Option func(*options)

type options struct {
	clock        shared.Clock
	ids          shared.IDGenerator
	rng          catalog.RandomSource
	codeAttempts int
	viewSync     bool
	pageSize     int
	maxPageSize  int
}

// WithClock sets the time source for timestamps
func WithClock(clock shared.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDGenerator sets the identifier generator shared by all records
func WithIDGenerator(ids shared.IDGenerator) Option {
	return func(o *options) { o.ids = ids }
}

// WithRandom sets the random source used by SKU code generation
func WithRandom(rng catalog.RandomSource) Option {
	return func(o *options) { o.rng = rng }
}

// WithCodeMaxAttempts bounds the attempts made to generate a free SKU code
func WithCodeMaxAttempts(n int) Option {
	return func(o *options) { o.codeAttempts = n }
}

// WithViewSync controls whether the visible result set is re-derived after
// every catalog-mutating command. Default true.
func WithViewSync(enabled bool) Option {
	return func(o *options) { o.viewSync = enabled }
}

// WithPageSizes sets the default and maximum page sizes; values < 1 keep the defaults
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(o *options) {
		if defaultSize > 0 {
			o.pageSize = defaultSize
		}
		if maxSize > 0 {
			o.maxPageSize = maxSize
		}
	}
}

// Facade composes the branch directory, SKU catalog and encoder.
//
// It is not safe for concurrent use: a multi-goroutine host must serialize
// every call on one Facade, e.g. with a mutex around it.
type Facade struct {
	branches *inventory.BranchDirectory
	skus     *catalog.SKUCatalog
	encoder  *barcode.Encoder
	ids      shared.IDGenerator
	bus      shared.NotificationBus
	logger   *zap.Logger
	validate *validator.Validate
	now      shared.Clock

	view        resultView
	pageSize    int
	maxPageSize int
	closed      bool
}

// NewFacade creates an empty catalog publishing to bus.
// A nil bus discards notifications; a nil logger logs nothing.
func NewFacade(bus shared.NotificationBus, logger *zap.Logger, opts ...Option) *Facade {
	o := options{
		clock:        shared.SystemClock,
		codeAttempts: catalog.DefaultCodeAttempts,
		viewSync:     true,
		pageSize:     DefaultPageSize,
		maxPageSize:  MaxPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = shared.NewRandomIDGenerator()
	}
	if o.maxPageSize < o.pageSize {
		o.maxPageSize = o.pageSize
	}
	if bus == nil {
		bus = discardBus{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	branches := inventory.NewBranchDirectory(o.ids, o.clock)
	f := &Facade{
		branches:    branches,
		skus:        catalog.NewSKUCatalog(branches, o.ids, catalog.NewCodeGenerator(o.rng, o.codeAttempts), o.clock),
		encoder:     barcode.NewEncoder(o.ids, o.clock),
		ids:         o.ids,
		bus:         bus,
		logger:      logger.With(zap.String("component", "catalog")),
		validate:    newValidator(),
		now:         o.clock,
		view:        resultView{sync: o.viewSync},
		pageSize:    o.pageSize,
		maxPageSize: o.maxPageSize,
	}
	f.view.refresh(f.skus)
	return f
}

// CreateBranch validates and registers a new branch
func (f *Facade) CreateBranch(ctx context.Context, req CreateBranchRequest) (inventory.Branch, error) {
	_, span := telemetry.StartSpan(ctx, OpCreateBranch)
	defer span.End()

	if err := f.guard(req); err != nil {
		return inventory.Branch{}, f.fail(span, OpCreateBranch, "Failed to create branch", err)
	}
	b, err := f.branches.Create(req.toInput())
	if err != nil {
		return inventory.Branch{}, f.fail(span, OpCreateBranch, "Failed to create branch", err)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrBranchID, b.ID)
	f.succeed(OpCreateBranch, fmt.Sprintf("Branch '%s' created successfully", b.Name), zap.String("branch_id", b.ID))
	return b, nil
}

// UpdateBranch merges the present fields of req into the branch
func (f *Facade) UpdateBranch(ctx context.Context, id string, req UpdateBranchRequest) (inventory.Branch, error) {
	_, span := telemetry.StartSpan(ctx, OpUpdateBranch, telemetry.SpanAttrBranchID, id)
	defer span.End()

	if err := f.guard(req); err != nil {
		return inventory.Branch{}, f.fail(span, OpUpdateBranch, "Failed to update branch", err, zap.String("branch_id", id))
	}
	b, err := f.branches.Update(id, req.toPatch())
	if err != nil {
		return inventory.Branch{}, f.fail(span, OpUpdateBranch, "Failed to update branch", err, zap.String("branch_id", id))
	}

	f.succeed(OpUpdateBranch, fmt.Sprintf("Branch '%s' updated successfully", b.Name), zap.String("branch_id", id))
	return b, nil
}

// DeleteBranch removes the branch and reports whether it existed.
// SKUs referencing it are kept; when any remain a warning notification names
// the dangling references.
func (f *Facade) DeleteBranch(ctx context.Context, id string) (bool, error) {
	_, span := telemetry.StartSpan(ctx, OpDeleteBranch, telemetry.SpanAttrBranchID, id)
	defer span.End()

	if f.closed {
		return false, f.fail(span, OpDeleteBranch, "Failed to delete branch", errClosed, zap.String("branch_id", id))
	}
	if !f.branches.Delete(id) {
		f.logger.Debug("Branch not found, nothing deleted", zap.String("operation", OpDeleteBranch), zap.String("branch_id", id))
		f.publish(OpDeleteBranch, shared.SeverityInfo, fmt.Sprintf("Branch %q not found, nothing deleted", id), "")
		return false, nil
	}

	if refs := f.skus.ReferencingBranch(id); len(refs) > 0 {
		msg := fmt.Sprintf("Branch deleted; %d SKU(s) still reference branch %q", len(refs), id)
		f.logger.Warn(msg, zap.String("operation", OpDeleteBranch), zap.String("branch_id", id), zap.Int("dangling", len(refs)))
		telemetry.SetAttributes(span, "dangling_count", len(refs))
		f.publish(OpDeleteBranch, shared.SeverityWarning, msg, shared.CodeDanglingReference)
		return true, nil
	}

	f.succeed(OpDeleteBranch, "Branch deleted successfully", zap.String("branch_id", id))
	return true, nil
}

// ListBranches returns all branches in insertion order
func (f *Facade) ListBranches() []inventory.Branch {
	return f.branches.List()
}

// GetBranch returns one branch or NOT_FOUND
func (f *Facade) GetBranch(id string) (inventory.Branch, error) {
	return f.branches.GetByID(id)
}

// CreateSKU validates and registers a new SKU, generating its code when asked
func (f *Facade) CreateSKU(ctx context.Context, req CreateSKURequest) (catalog.SKU, error) {
	_, span := telemetry.StartSpan(ctx, OpCreateSKU, telemetry.SpanAttrBranchID, req.BranchID)
	defer span.End()

	if err := f.guard(req); err != nil {
		return catalog.SKU{}, f.fail(span, OpCreateSKU, "Failed to create SKU", err)
	}
	s, err := f.skus.Create(req.toInput())
	if err != nil {
		return catalog.SKU{}, f.fail(span, OpCreateSKU, "Failed to create SKU", err, zap.String("code", req.Code))
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSKUID, s.ID, telemetry.SpanAttrSKUCode, s.Code)
	f.view.changed(f.skus)
	f.succeed(OpCreateSKU, fmt.Sprintf("SKU '%s' created successfully", s.Code),
		zap.String("sku_id", s.ID), zap.String("code", s.Code))
	return s, nil
}

// UpdateSKU merges the present descriptive fields of req into the SKU
func (f *Facade) UpdateSKU(ctx context.Context, id string, req UpdateSKURequest) (catalog.SKU, error) {
	_, span := telemetry.StartSpan(ctx, OpUpdateSKU, telemetry.SpanAttrSKUID, id)
	defer span.End()

	if err := f.guard(req); err != nil {
		return catalog.SKU{}, f.fail(span, OpUpdateSKU, "Failed to update SKU", err, zap.String("sku_id", id))
	}
	s, err := f.skus.Update(id, req.toPatch())
	if err != nil {
		return catalog.SKU{}, f.fail(span, OpUpdateSKU, "Failed to update SKU", err, zap.String("sku_id", id))
	}

	f.view.changed(f.skus)
	f.succeed(OpUpdateSKU, fmt.Sprintf("SKU '%s' updated successfully", s.Code),
		zap.String("sku_id", id), zap.String("code", s.Code))
	return s, nil
}

// DeactivateSKU marks the SKU inactive. Deactivating an inactive SKU returns
// it unchanged with an info notification.
func (f *Facade) DeactivateSKU(ctx context.Context, id string) (catalog.SKU, error) {
	_, span := telemetry.StartSpan(ctx, OpDeactivateSKU, telemetry.SpanAttrSKUID, id)
	defer span.End()

	if f.closed {
		return catalog.SKU{}, f.fail(span, OpDeactivateSKU, "Failed to deactivate SKU", errClosed, zap.String("sku_id", id))
	}
	s, changed, err := f.skus.Deactivate(id)
	if err != nil {
		return catalog.SKU{}, f.fail(span, OpDeactivateSKU, "Failed to deactivate SKU", err, zap.String("sku_id", id))
	}

	if !changed {
		msg := fmt.Sprintf("SKU '%s' is already inactive", s.Code)
		f.logger.Debug(msg, zap.String("operation", OpDeactivateSKU), zap.String("sku_id", id))
		f.publish(OpDeactivateSKU, shared.SeverityInfo, msg, "")
		return s, nil
	}

	f.view.changed(f.skus)
	f.succeed(OpDeactivateSKU, fmt.Sprintf("SKU '%s' deactivated successfully", s.Code),
		zap.String("sku_id", id), zap.String("code", s.Code))
	return s, nil
}

// GetSKU returns one SKU or NOT_FOUND
func (f *Facade) GetSKU(id string) (catalog.SKU, error) {
	return f.skus.GetByID(id)
}

// ListSKUs returns the full catalog, active and inactive, in insertion order
func (f *Facade) ListSKUs() []catalog.SKU {
	return f.skus.List()
}

// Query returns the SKUs matching both term and criteria without touching the
// visible result set.
func (f *Facade) Query(ctx context.Context, term string, criteria catalog.Criteria) []catalog.SKU {
	_, span := telemetry.StartSpan(ctx, OpQuery, telemetry.SpanAttrTerm, term)
	defer span.End()

	items := f.skus.Query(term, criteria)
	telemetry.SetAttributes(span, telemetry.SpanAttrResults, len(items))
	return items
}

// QueryPage is Query followed by pagination
func (f *Facade) QueryPage(ctx context.Context, term string, criteria catalog.Criteria, page, pageSize int) shared.Paginated[catalog.SKU] {
	return shared.NewPaginated(f.Query(ctx, term, criteria), page, f.clampPageSize(pageSize))
}

// Stats counts branches and SKUs
func (f *Facade) Stats() CatalogStats {
	total := f.skus.Count()
	active := f.skus.CountActive()
	return CatalogStats{
		TotalBranches: f.branches.Count(),
		TotalSKUs:     total,
		ActiveSKUs:    active,
		InactiveSKUs:  total - active,
	}
}

// Taxonomy returns the reference categories and brands
func (f *Facade) Taxonomy() catalog.Taxonomy {
	return catalog.DefaultTaxonomy()
}

// DanglingReferences lists SKUs whose branch no longer exists
func (f *Facade) DanglingReferences() []DanglingReference {
	dangling := f.skus.Dangling()
	refs := make([]DanglingReference, 0, len(dangling))
	for _, s := range dangling {
		refs = append(refs, DanglingReference{SKUID: s.ID, Code: s.Code, BranchID: s.BranchID})
	}
	return refs
}

// Subscribe registers a notification listener
func (f *Facade) Subscribe(listener shared.NotificationListener) shared.Subscription {
	return f.bus.Subscribe(listener)
}

// Unsubscribe removes a listener; unknown handles are ignored
func (f *Facade) Unsubscribe(sub shared.Subscription) {
	f.bus.Unsubscribe(sub)
}

// Close detaches every listener and drops all records.
// Commands issued afterwards fail with VALIDATION_ERROR.
func (f *Facade) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.bus.Close()
	f.skus.Reset()
	f.branches.Reset()
	f.view.reset()
	f.logger.Debug("Catalog closed")
}

// Closed reports whether Close has been called
func (f *Facade) Closed() bool {
	return f.closed
}

// guard rejects commands after Close and runs request validation
func (f *Facade) guard(req any) error {
	if f.closed {
		return errClosed
	}
	return f.validateRequest(req)
}

func (f *Facade) succeed(op, message string, fields ...zap.Field) {
	f.logger.Debug(message, append(fields, zap.String("operation", op))...)
	f.publish(op, shared.SeveritySuccess, message, "")
}

// fail logs, traces and publishes err, then returns it unchanged
func (f *Facade) fail(span trace.Span, op, prefix string, err error, fields ...zap.Field) error {
	telemetry.RecordError(span, err)
	f.logger.Warn(prefix, append(fields, zap.String("operation", op), zap.Error(err))...)
	f.publish(op, shared.SeverityError, prefix+": "+err.Error(), shared.ErrorCode(err))
	return err
}

func (f *Facade) publish(op string, severity shared.Severity, message, code string) {
	f.bus.Publish(shared.Notification{
		Message:   message,
		Severity:  severity,
		Operation: op,
		Code:      code,
		At:        f.now(),
	})
}

func (f *Facade) clampPageSize(size int) int {
	if size < 1 {
		return f.pageSize
	}
	if size > f.maxPageSize {
		return f.maxPageSize
	}
	return size
}

// discardBus stands in when no bus is supplied
type discardBus struct{}

func (discardBus) Publish(shared.Notification)                               {}
func (discardBus) Subscribe(shared.NotificationListener) shared.Subscription { return 0 }
func (discardBus) Unsubscribe(shared.Subscription)                           {}
func (discardBus) Close()                                                    {}
