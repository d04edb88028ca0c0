package barcode

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceIDs struct {
	n int
}

func (s *sequenceIDs) Next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestEncoder(opts ...EncoderOption) *Encoder {
	return NewEncoder(&sequenceIDs{}, func() time.Time { return fixedNow }, opts...)
}

func TestEncoder_EncodeBarcode(t *testing.T) {
	e := newTestEncoder()

	d, err := e.EncodeBarcode("EL-TV-55-SAM")
	require.NoError(t, err)

	assert.Equal(t, Descriptor{
		ID:          "barcode-1",
		Payload:     "EL-TV-55-SAM",
		Kind:        KindBarcode,
		Format:      FormatCode128,
		GeneratedAt: fixedNow,
	}, d)
}

func TestEncoder_EncodeQR(t *testing.T) {
	t.Run("default size", func(t *testing.T) {
		d, err := newTestEncoder().EncodeQR("Wooden Dining Chair · IKEA")
		require.NoError(t, err)

		assert.Equal(t, "qr-1", d.ID)
		assert.Equal(t, KindQR, d.Kind)
		assert.Equal(t, FormatQRCode, d.Format)
		assert.Equal(t, DefaultQRSize, d.Size)
		assert.Equal(t, "Wooden Dining Chair · IKEA", d.Payload)
	})

	t.Run("custom size", func(t *testing.T) {
		d, err := newTestEncoder(WithQRSize(256)).EncodeQR("X")
		require.NoError(t, err)
		assert.Equal(t, 256, d.Size)
	})
}

func TestEncoder_InvalidPayload(t *testing.T) {
	e := newTestEncoder()

	tests := []struct {
		name   string
		encode func(string) (Descriptor, error)
		input  string
	}{
		{"empty barcode", e.EncodeBarcode, ""},
		{"blank barcode", e.EncodeBarcode, "  \t"},
		{"non ascii barcode", e.EncodeBarcode, "CAFÉ-01"},
		{"control char barcode", e.EncodeBarcode, "A\nB"},
		{"empty qr", e.EncodeQR, ""},
		{"blank qr", e.EncodeQR, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.encode(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidPayload))
		})
	}
}

func TestEncoder_Encode(t *testing.T) {
	e := newTestEncoder()

	d, err := e.Encode(KindQR, "ABC")
	require.NoError(t, err)
	assert.Equal(t, KindQR, d.Kind)

	_, err = e.Encode(Kind("PDF417"), "ABC")
	assert.True(t, errors.Is(err, shared.ErrInvalidPayload))
}

func TestEncoder_Decode(t *testing.T) {
	e := newTestEncoder()

	got, err := e.DecodeBarcode("EL-TV-55-SAM")
	require.NoError(t, err)
	assert.Equal(t, Decoded{Data: "EL-TV-55-SAM", Format: FormatCode128, DecodedAt: fixedNow}, got)

	got, err = e.DecodeQR("hello")
	require.NoError(t, err)
	assert.Equal(t, FormatQRCode, got.Format)

	_, err = e.DecodeQR(" ")
	assert.True(t, errors.Is(err, shared.ErrInvalidPayload))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"barcode", KindBarcode, false},
		{" CODE128 ", KindBarcode, false},
		{"qr", KindQR, false},
		{"QR_CODE", KindQR, false},
		{"ean13", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
