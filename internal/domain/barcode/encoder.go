// Package barcode derives abstract, scannable encodings from SKU codes.
// It never renders pixels; a presentation layer turns a Descriptor into an image.
package barcode

import (
	"strings"
	"time"

	"github.com/erp/skucatalog/internal/domain/shared"
)

// Kind distinguishes linear barcodes from QR codes
type Kind string

const (
	KindBarcode Kind = "BARCODE"
	KindQR      Kind = "QR"
)

// Symbology names reported on descriptors and decode results
const (
	FormatCode128 = "CODE128"
	FormatQRCode  = "QR_CODE"
)

// DefaultQRSize is the module size suggested to renderers
const DefaultQRSize = 128

// Descriptor is an ephemeral encoding of a payload. It is not catalog state.
type Descriptor struct {
	ID          string    `json:"id"`
	Payload     string    `json:"payload"`
	Kind        Kind      `json:"kind"`
	Format      string    `json:"format"`
	Size        int       `json:"size,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Decoded is the result of a simulated scan
type Decoded struct {
	Data      string    `json:"data"`
	Format    string    `json:"format"`
	DecodedAt time.Time `json:"decodedAt"`
}

// Encoder builds descriptors. Apart from the id and timestamp it is a pure
// function of the payload.
type Encoder struct {
	ids    shared.IDGenerator
	now    shared.Clock
	qrSize int
}

// EncoderOption configures an Encoder
type EncoderOption func(*Encoder)

// WithQRSize overrides the QR module size
func WithQRSize(size int) EncoderOption {
	return func(e *Encoder) {
		if size > 0 {
			e.qrSize = size
		}
	}
}

// NewEncoder creates an encoder drawing descriptor ids from ids
func NewEncoder(ids shared.IDGenerator, clock shared.Clock, opts ...EncoderOption) *Encoder {
	if clock == nil {
		clock = shared.SystemClock
	}
	e := &Encoder{ids: ids, now: clock, qrSize: DefaultQRSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeBarcode returns a CODE128 descriptor for the payload.
// CODE128 carries printable ASCII only.
func (e *Encoder) EncodeBarcode(payload string) (Descriptor, error) {
	if err := checkPayload(payload); err != nil {
		return Descriptor{}, err
	}
	for i := 0; i < len(payload); i++ {
		if c := payload[i]; c < 0x20 || c > 0x7e {
			return Descriptor{}, shared.NewDomainError(shared.CodeInvalidPayload,
				"Barcode payload must be printable ASCII")
		}
	}
	return Descriptor{
		ID:          e.ids.Next(shared.PrefixBarcode),
		Payload:     payload,
		Kind:        KindBarcode,
		Format:      FormatCode128,
		GeneratedAt: e.now(),
	}, nil
}

// EncodeQR returns a QR descriptor for any non-blank payload
func (e *Encoder) EncodeQR(payload string) (Descriptor, error) {
	if err := checkPayload(payload); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		ID:          e.ids.Next(shared.PrefixQR),
		Payload:     payload,
		Kind:        KindQR,
		Format:      FormatQRCode,
		Size:        e.qrSize,
		GeneratedAt: e.now(),
	}, nil
}

// Encode dispatches on kind
func (e *Encoder) Encode(kind Kind, payload string) (Descriptor, error) {
	switch kind {
	case KindBarcode:
		return e.EncodeBarcode(payload)
	case KindQR:
		return e.EncodeQR(payload)
	default:
		return Descriptor{}, shared.NewDomainError(shared.CodeInvalidPayload,
			"Unsupported encoding kind '"+string(kind)+"'")
	}
}

// DecodeBarcode simulates scanning a barcode; the data is echoed back
func (e *Encoder) DecodeBarcode(data string) (Decoded, error) {
	return e.decode(data, FormatCode128)
}

// DecodeQR simulates scanning a QR code; the data is echoed back
func (e *Encoder) DecodeQR(data string) (Decoded, error) {
	return e.decode(data, FormatQRCode)
}

func (e *Encoder) decode(data, format string) (Decoded, error) {
	if err := checkPayload(data); err != nil {
		return Decoded{}, err
	}
	return Decoded{Data: data, Format: format, DecodedAt: e.now()}, nil
}

// ParseKind maps user input such as "qr" or "barcode" to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BARCODE", FormatCode128:
		return KindBarcode, nil
	case "QR", FormatQRCode:
		return KindQR, nil
	default:
		return "", shared.NewDomainError(shared.CodeInvalidPayload, "Unsupported encoding kind '"+s+"'")
	}
}

func checkPayload(payload string) error {
	if strings.TrimSpace(payload) == "" {
		return shared.NewDomainError(shared.CodeInvalidPayload, "Encoding payload cannot be empty")
	}
	return nil
}
