package telemetry

import (
	"context"

	"github.com/erp/skucatalog/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CatalogSize is a point-in-time count of catalog records
type CatalogSize struct {
	Branches   int
	SKUs       int
	ActiveSKUs int
}

// SizeSource reports the current catalog size. It is called from Notify, in the
// goroutine that issued the catalog command.
type SizeSource func() CatalogSize

// CatalogMetrics turns catalog notifications into OpenTelemetry metrics.
// Register it on the notification bus; it implements shared.NotificationListener.
type CatalogMetrics struct {
	logger *zap.Logger
	size   SizeSource

	notificationsTotal *Counter
	failuresTotal      *Counter
	branchCount        *Gauge
	skuCount           *Gauge
}

// CatalogMetricsConfig holds configuration for catalog metrics.
type CatalogMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
	Size   SizeSource // optional; gauges are skipped when nil
}

// NewCatalogMetrics creates the catalog instruments.
func NewCatalogMetrics(cfg CatalogMetricsConfig) (*CatalogMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &CatalogMetrics{logger: logger, size: cfg.Size}

	var err error
	cm.notificationsTotal, err = NewCounter(cfg.Meter,
		"sku_catalog_notifications_total",
		"Catalog command notifications by operation and severity",
		"{notifications}",
	)
	if err != nil {
		return nil, err
	}

	cm.failuresTotal, err = NewCounter(cfg.Meter,
		"sku_catalog_failures_total",
		"Failed or warned catalog commands by error code",
		"{failures}",
	)
	if err != nil {
		return nil, err
	}

	cm.branchCount, err = NewGauge(cfg.Meter,
		"sku_catalog_branches",
		"Current number of branches",
		"{branches}",
	)
	if err != nil {
		return nil, err
	}

	cm.skuCount, err = NewGauge(cfg.Meter,
		"sku_catalog_skus",
		"Current number of SKUs by state",
		"{skus}",
	)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

// Notify records one notification and refreshes the size gauges
func (cm *CatalogMetrics) Notify(n shared.Notification) {
	ctx := context.Background()

	cm.notificationsTotal.Inc(ctx,
		AttrOperation.String(n.Operation),
		AttrSeverity.String(string(n.Severity)),
	)
	if n.Code != "" {
		cm.failuresTotal.Inc(ctx,
			AttrOperation.String(n.Operation),
			AttrErrorCode.String(n.Code),
		)
	}

	if cm.size != nil {
		cm.RecordSize(ctx, cm.size())
	}
}

// RecordSize records the catalog size gauges
func (cm *CatalogMetrics) RecordSize(ctx context.Context, size CatalogSize) {
	cm.branchCount.Record(ctx, int64(size.Branches))
	cm.skuCount.Record(ctx, int64(size.ActiveSKUs), AttrSKUState.String("active"))
	cm.skuCount.Record(ctx, int64(size.SKUs-size.ActiveSKUs), AttrSKUState.String("inactive"))
}

// Ensure CatalogMetrics is a notification listener
var _ shared.NotificationListener = (*CatalogMetrics)(nil)

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewCatalogMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
