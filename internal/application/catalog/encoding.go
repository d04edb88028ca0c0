package catalog

import (
	"context"
	"fmt"

	"github.com/erp/skucatalog/internal/domain/barcode"
	"github.com/erp/skucatalog/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EncodeBarcode derives a CODE128 descriptor from payload
func (f *Facade) EncodeBarcode(ctx context.Context, payload string) (barcode.Descriptor, error) {
	return f.encode(ctx, barcode.KindBarcode, payload)
}

// EncodeQR derives a QR descriptor from payload
func (f *Facade) EncodeQR(ctx context.Context, payload string) (barcode.Descriptor, error) {
	return f.encode(ctx, barcode.KindQR, payload)
}

// EncodeSKU derives a descriptor of the given kind from the code of a tracked SKU
func (f *Facade) EncodeSKU(ctx context.Context, skuID string, kind barcode.Kind) (barcode.Descriptor, error) {
	op := encodeOp(kind)
	_, span := telemetry.StartSpan(ctx, op, telemetry.SpanAttrSKUID, skuID)
	defer span.End()

	if f.closed {
		return barcode.Descriptor{}, f.fail(span, op, failurePrefix(kind), errClosed, zap.String("sku_id", skuID))
	}
	s, err := f.skus.GetByID(skuID)
	if err != nil {
		return barcode.Descriptor{}, f.fail(span, op, failurePrefix(kind), err, zap.String("sku_id", skuID))
	}
	return f.encodeIn(span, kind, s.Code)
}

// DecodeBarcode simulates scanning a barcode carrying data
func (f *Facade) DecodeBarcode(ctx context.Context, data string) (barcode.Decoded, error) {
	return f.decode(ctx, OpDecodeBarcode, data, f.encoder.DecodeBarcode)
}

// DecodeQR simulates scanning a QR code carrying data
func (f *Facade) DecodeQR(ctx context.Context, data string) (barcode.Decoded, error) {
	return f.decode(ctx, OpDecodeQR, data, f.encoder.DecodeQR)
}

func (f *Facade) encode(ctx context.Context, kind barcode.Kind, payload string) (barcode.Descriptor, error) {
	_, span := telemetry.StartSpan(ctx, encodeOp(kind), telemetry.SpanAttrSKUCode, payload)
	defer span.End()

	if f.closed {
		return barcode.Descriptor{}, f.fail(span, encodeOp(kind), failurePrefix(kind), errClosed)
	}
	return f.encodeIn(span, kind, payload)
}

func (f *Facade) encodeIn(span trace.Span, kind barcode.Kind, payload string) (barcode.Descriptor, error) {
	op := encodeOp(kind)
	d, err := f.encoder.Encode(kind, payload)
	if err != nil {
		return barcode.Descriptor{}, f.fail(span, op, failurePrefix(kind), err)
	}

	f.succeed(op, fmt.Sprintf("%s generated for '%s'", kindLabel(kind), d.Payload),
		zap.String("encoding_id", d.ID), zap.String("code", d.Payload))
	return d, nil
}

func (f *Facade) decode(ctx context.Context, op, data string, scan func(string) (barcode.Decoded, error)) (barcode.Decoded, error) {
	_, span := telemetry.StartSpan(ctx, op)
	defer span.End()

	if f.closed {
		return barcode.Decoded{}, f.fail(span, op, "Failed to decode", errClosed)
	}
	d, err := scan(data)
	if err != nil {
		return barcode.Decoded{}, f.fail(span, op, "Failed to decode", err)
	}

	f.succeed(op, fmt.Sprintf("Decoded %s data '%s'", d.Format, d.Data))
	return d, nil
}

func encodeOp(kind barcode.Kind) string {
	if kind == barcode.KindQR {
		return OpEncodeQR
	}
	return OpEncodeBarcode
}

func kindLabel(kind barcode.Kind) string {
	if kind == barcode.KindQR {
		return "QR code"
	}
	return "Barcode"
}

func failurePrefix(kind barcode.Kind) string {
	if kind == barcode.KindQR {
		return "Failed to generate QR code"
	}
	return "Failed to generate barcode"
}
