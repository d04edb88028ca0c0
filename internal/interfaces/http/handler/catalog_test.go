package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/erp/skucatalog/internal/application/catalog"
	"github.com/erp/skucatalog/internal/domain/barcode"
	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/inventory"
	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/erp/skucatalog/internal/infrastructure/event"
	"github.com/erp/skucatalog/internal/infrastructure/logger"
	"github.com/erp/skucatalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// envelope mirrors dto.Response with a raw payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type zeroRandom struct{}

func (zeroRandom) IntN(int) int { return 0 }

// newCatalogServer mounts a seeded catalog under /api/v1
func newCatalogServer(t *testing.T, opts ...catalogapp.Option) (*gin.Engine, *catalogapp.Facade) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	facade := catalogapp.NewFacade(event.NewSyncNotificationBus(log), log, opts...)
	require.NoError(t, facade.Seed(context.Background(), catalogapp.DemoSeed()))

	engine := gin.New()
	engine.Use(logger.RequestID())
	NewCatalogHandler(facade).RegisterRoutes(engine.Group("/api/v1"))
	return engine, facade
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestCatalogHandler_Branches(t *testing.T) {
	engine, _ := newCatalogServer(t)

	t.Run("list in creation order", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/branches", nil)
		require.Equal(t, http.StatusOK, w.Code)
		branches := decodeData[[]inventory.Branch](t, env)
		require.Len(t, branches, 3)
		assert.Equal(t, "branch-001", branches[0].ID)
		assert.Equal(t, "Midwest Fulfillment", branches[2].Name)
	})

	var created inventory.Branch
	t.Run("create", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/branches", map[string]any{
			"name":     "  Harbor Depot ",
			"location": "Seattle",
			"contactDetails": map[string]string{
				"email": "harbor@example.com",
			},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		created = decodeData[inventory.Branch](t, env)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Harbor Depot", created.Name)
		assert.Equal(t, "harbor@example.com", created.ContactDetails.Email)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/branches", map[string]any{"location": "Boston"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, shared.CodeValidation, env.Error.Code)
		assert.Contains(t, env.Error.Message, "name")
		assert.NotEmpty(t, env.Error.RequestID)
	})

	t.Run("update keeps absent fields", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPut, "/api/v1/branches/"+created.ID, map[string]any{
			"location": "Tacoma",
		})
		require.Equal(t, http.StatusOK, w.Code)
		b := decodeData[inventory.Branch](t, env)
		assert.Equal(t, "Harbor Depot", b.Name)
		assert.Equal(t, "Tacoma", b.Location)
		assert.Equal(t, "harbor@example.com", b.ContactDetails.Email)
	})

	t.Run("get", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/branches/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Tacoma", decodeData[inventory.Branch](t, env).Location)
	})

	t.Run("get unknown", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/branches/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, shared.CodeNotFound, env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodDelete, "/api/v1/branches/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeData[DeleteBranchResponse](t, env).Deleted)

		w, env = doJSON(t, engine, http.MethodDelete, "/api/v1/branches/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, shared.CodeNotFound, env.Error.Code)
	})
}

func TestCatalogHandler_SKUs(t *testing.T) {
	engine, facade := newCatalogServer(t)

	var created catalog.SKU
	t.Run("create with generated code", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus", catalogapp.CreateSKURequest{
			AutoGenerateCode: true,
			ItemName:         "Noise Cancelling Headphones",
			Category:         "Electronics",
			Subcategory:      "Audio",
			BrandName:        "Sony",
			BranchID:         "branch-002",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		created = decodeData[catalog.SKU](t, env)
		assert.Regexp(t, `^EL-AU-\d{2}-SON$`, created.Code)
		assert.True(t, created.IsActive)
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus", catalogapp.CreateSKURequest{
			Code:        "el-tv-55-sam",
			ItemName:    "Another TV",
			Category:    "Electronics",
			Subcategory: "Televisions",
			BrandName:   "Samsung",
			BranchID:    "branch-001",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, shared.CodeDuplicateCode, env.Error.Code)
	})

	t.Run("unknown branch", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus", catalogapp.CreateSKURequest{
			ItemName:    "Desk",
			Category:    "Furniture",
			Subcategory: "Tables",
			BrandName:   "IKEA",
			BranchID:    "branch-999",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeValidation, env.Error.Code)
		assert.Contains(t, env.Error.Message, "does not exist")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus", `{"itemName":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, env.Error.Code)
	})

	t.Run("get", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/skus/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, created.Code, decodeData[catalog.SKU](t, env).Code)
	})

	t.Run("update", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPut, "/api/v1/skus/"+created.ID, map[string]any{
			"itemName": "Wireless Headphones",
		})
		require.Equal(t, http.StatusOK, w.Code)
		s := decodeData[catalog.SKU](t, env)
		assert.Equal(t, "Wireless Headphones", s.ItemName)
		assert.Equal(t, created.Code, s.Code)
	})

	t.Run("deactivate", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus/"+created.ID+"/deactivate", nil)
		require.Equal(t, http.StatusOK, w.Code)
		s := decodeData[catalog.SKU](t, env)
		assert.False(t, s.IsActive)
		assert.NotNil(t, s.DeactivatedAt)

		w, _ = doJSON(t, engine, http.MethodPost, "/api/v1/skus/"+created.ID+"/deactivate", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deactivate unknown", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/skus/missing/deactivate", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	assert.Equal(t, 6, facade.Stats().TotalSKUs)
}

func TestCatalogHandler_GenerationExhausted(t *testing.T) {
	engine, _ := newCatalogServer(t, catalogapp.WithRandom(zeroRandom{}), catalogapp.WithCodeMaxAttempts(1))

	req := catalogapp.CreateSKURequest{
		ItemName:    "Drill",
		Category:    "Tools",
		Subcategory: "Power",
		BrandName:   "Bosch",
		BranchID:    "branch-001",
	}
	w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/skus", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/skus", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, shared.CodeGenerationExhausted, env.Error.Code)
}

func TestCatalogHandler_ListSKUs(t *testing.T) {
	engine, _ := newCatalogServer(t)

	tests := []struct {
		name      string
		query     string
		wantCodes []string
		wantMeta  dto.Meta
	}{
		{
			name:      "all",
			query:     "",
			wantCodes: []string{"EL-TV-55-SAM", "AP-LP-13-APP", "HM-CH-WD-IKE", "CL-SH-42-NIK", "KT-BL-SS-KTC"},
			wantMeta:  dto.Meta{Total: 5, Page: 1, PageSize: 10, TotalPages: 1},
		},
		{
			name:      "search term",
			query:     "?q=laptop",
			wantCodes: []string{"AP-LP-13-APP"},
			wantMeta:  dto.Meta{Total: 1, Page: 1, PageSize: 10, TotalPages: 1},
		},
		{
			name:      "branch and active filter",
			query:     "?branch_id=branch-001&is_active=true",
			wantCodes: []string{"EL-TV-55-SAM", "AP-LP-13-APP", "KT-BL-SS-KTC"},
			wantMeta:  dto.Meta{Total: 3, Page: 1, PageSize: 10, TotalPages: 1},
		},
		{
			name:      "inactive only",
			query:     "?is_active=false",
			wantCodes: []string{"CL-SH-42-NIK"},
			wantMeta:  dto.Meta{Total: 1, Page: 1, PageSize: 10, TotalPages: 1},
		},
		{
			name:      "second page",
			query:     "?page=2&page_size=2",
			wantCodes: []string{"HM-CH-WD-IKE", "CL-SH-42-NIK"},
			wantMeta:  dto.Meta{Total: 5, Page: 2, PageSize: 2, TotalPages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, engine, http.MethodGet, "/api/v1/skus"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			skus := decodeData[[]catalog.SKU](t, env)
			codes := make([]string, 0, len(skus))
			for _, s := range skus {
				codes = append(codes, s.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
			require.NotNil(t, env.Meta)
			assert.Equal(t, tt.wantMeta, *env.Meta)
		})
	}

	t.Run("bad is_active", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/skus?is_active=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeValidation, env.Error.Code)
	})

	t.Run("bad page", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/skus?page=0", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/skus?page=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeValidation, env.Error.Code)
	})
}

func TestCatalogHandler_Encodings(t *testing.T) {
	engine, _ := newCatalogServer(t)

	t.Run("barcode from sku", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/encodings/barcode", EncodeRequest{SKUID: "sku-001", Payload: "ignored"})
		require.Equal(t, http.StatusOK, w.Code)
		d := decodeData[barcode.Descriptor](t, env)
		assert.Equal(t, "EL-TV-55-SAM", d.Payload)
		assert.Equal(t, barcode.KindBarcode, d.Kind)
		assert.Equal(t, barcode.FormatCode128, d.Format)
	})

	t.Run("qr from payload", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/encodings/qr", EncodeRequest{Payload: "https://example.com/sku/1"})
		require.Equal(t, http.StatusOK, w.Code)
		d := decodeData[barcode.Descriptor](t, env)
		assert.Equal(t, barcode.KindQR, d.Kind)
		assert.Equal(t, barcode.DefaultQRSize, d.Size)
	})

	t.Run("blank payload", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/encodings/barcode", EncodeRequest{Payload: "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeInvalidPayload, env.Error.Code)
	})

	t.Run("unknown sku", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/encodings/qr", EncodeRequest{SKUID: "sku-404"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("decode echoes data", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/decodings/qr", DecodeRequest{Data: "AP-LP-13-APP"})
		require.Equal(t, http.StatusOK, w.Code)
		d := decodeData[barcode.Decoded](t, env)
		assert.Equal(t, "AP-LP-13-APP", d.Data)
		assert.Equal(t, barcode.FormatQRCode, d.Format)
	})

	t.Run("decode blank", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/decodings/barcode", DecodeRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalogHandler_Reports(t *testing.T) {
	engine, _ := newCatalogServer(t)

	t.Run("stats", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, catalogapp.CatalogStats{TotalBranches: 3, TotalSKUs: 5, ActiveSKUs: 4, InactiveSKUs: 1},
			decodeData[catalogapp.CatalogStats](t, env))
	})

	t.Run("taxonomy", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/taxonomy", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, catalog.DefaultTaxonomy(), decodeData[catalog.Taxonomy](t, env))
	})

	t.Run("dangling references after branch delete", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/references/dangling", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[[]catalogapp.DanglingReference](t, env))

		w, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/branches/branch-003", nil)
		require.Equal(t, http.StatusOK, w.Code)

		_, env = doJSON(t, engine, http.MethodGet, "/api/v1/references/dangling", nil)
		assert.Equal(t, []catalogapp.DanglingReference{
			{SKUID: "sku-004", Code: "CL-SH-42-NIK", BranchID: "branch-003"},
		}, decodeData[[]catalogapp.DanglingReference](t, env))
	})
}
