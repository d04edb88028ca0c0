package handler

import (
	"context"
	"net/http"
	"sync"

	catalogapp "github.com/erp/skucatalog/internal/application/catalog"
	"github.com/erp/skucatalog/internal/domain/barcode"
	"github.com/erp/skucatalog/internal/domain/catalog"
	"github.com/erp/skucatalog/internal/domain/shared"
	"github.com/erp/skucatalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes one catalog facade over HTTP.
// The facade is single-threaded, so every request holds mu for its duration.
type CatalogHandler struct {
	BaseHandler
	mu     sync.Mutex
	facade *catalogapp.Facade
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(facade *catalogapp.Facade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// ListSKUsQuery holds the query parameters of GET /skus
type ListSKUsQuery struct {
	Term      string `form:"q"`
	Category  string `form:"category"`
	BrandName string `form:"brand_name"`
	BranchID  string `form:"branch_id"`
	IsActive  *bool  `form:"is_active"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1"`
}

func (q ListSKUsQuery) criteria() catalog.Criteria {
	return catalog.Criteria{
		Category:  q.Category,
		BrandName: q.BrandName,
		BranchID:  q.BranchID,
		IsActive:  q.IsActive,
	}
}

// EncodeRequest asks for an encoding of either a literal payload or a tracked SKU's code
type EncodeRequest struct {
	Payload string `json:"payload"`
	SKUID   string `json:"skuId"`
}

// DecodeRequest carries the data read by a simulated scan
type DecodeRequest struct {
	Data string `json:"data"`
}

// DeleteBranchResponse reports whether a branch was removed
type DeleteBranchResponse struct {
	Deleted bool `json:"deleted"`
}

// RegisterRoutes implements router.RouteRegistrar
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	branches.POST("", h.serialized(h.CreateBranch))
	branches.GET("", h.serialized(h.ListBranches))
	branches.GET("/:id", h.serialized(h.GetBranch))
	branches.PUT("/:id", h.serialized(h.UpdateBranch))
	branches.DELETE("/:id", h.serialized(h.DeleteBranch))

	skus := rg.Group("/skus")
	skus.POST("", h.serialized(h.CreateSKU))
	skus.GET("", h.serialized(h.ListSKUs))
	skus.GET("/:id", h.serialized(h.GetSKU))
	skus.PUT("/:id", h.serialized(h.UpdateSKU))
	skus.POST("/:id/deactivate", h.serialized(h.DeactivateSKU))

	rg.POST("/encodings/barcode", h.serialized(h.encodeHandler(barcode.KindBarcode)))
	rg.POST("/encodings/qr", h.serialized(h.encodeHandler(barcode.KindQR)))
	rg.POST("/decodings/barcode", h.serialized(h.decodeHandler(h.facade.DecodeBarcode)))
	rg.POST("/decodings/qr", h.serialized(h.decodeHandler(h.facade.DecodeQR)))

	rg.GET("/stats", h.serialized(h.Stats))
	rg.GET("/taxonomy", h.serialized(h.Taxonomy))
	rg.GET("/references/dangling", h.serialized(h.DanglingReferences))
}

// serialized runs next while holding the facade lock
func (h *CatalogHandler) serialized(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()
		next(c)
	}
}

// bindJSON decodes the body into req, answering 400 on failure
func (h *CatalogHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// CreateBranch godoc
// @Summary      Create a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateBranchRequest true "Branch"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /branches [post]
func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req catalogapp.CreateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	b, err := h.facade.CreateBranch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// ListBranches godoc
// @Summary      List branches in creation order
// @Tags         branches
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /branches [get]
func (h *CatalogHandler) ListBranches(c *gin.Context) {
	h.Success(c, h.facade.ListBranches())
}

// GetBranch godoc
// @Summary      Get a branch by id
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /branches/{id} [get]
func (h *CatalogHandler) GetBranch(c *gin.Context) {
	b, err := h.facade.GetBranch(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// UpdateBranch godoc
// @Summary      Partially update a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body catalog.UpdateBranchRequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /branches/{id} [put]
func (h *CatalogHandler) UpdateBranch(c *gin.Context) {
	var req catalogapp.UpdateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	b, err := h.facade.UpdateBranch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// DeleteBranch godoc
// @Summary      Delete a branch; referencing SKUs are kept
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /branches/{id} [delete]
func (h *CatalogHandler) DeleteBranch(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.facade.DeleteBranch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.HandleError(c, shared.NewNotFoundError("Branch", id))
		return
	}
	h.Success(c, DeleteBranchResponse{Deleted: true})
}

// CreateSKU godoc
// @Summary      Register a SKU, generating its code when asked
// @Tags         skus
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateSKURequest true "SKU"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /skus [post]
func (h *CatalogHandler) CreateSKU(c *gin.Context) {
	var req catalogapp.CreateSKURequest
	if !h.bindJSON(c, &req) {
		return
	}

	s, err := h.facade.CreateSKU(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// ListSKUs godoc
// @Summary      Search and filter the catalog
// @Tags         skus
// @Produce      json
// @Param        q          query string false "Substring of code or item name"
// @Param        category   query string false "Exact category"
// @Param        brand_name query string false "Exact brand"
// @Param        branch_id  query string false "Exact branch id"
// @Param        is_active  query bool   false "Active state"
// @Param        page       query int    false "Page, 1-based"
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} dto.Response
// @Router       /skus [get]
func (h *CatalogHandler) ListSKUs(c *gin.Context) {
	var q ListSKUsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, shared.CodeValidation, "Invalid query parameters: "+err.Error())
		return
	}

	page := h.facade.QueryPage(c.Request.Context(), q.Term, q.criteria(), q.Page, q.PageSize)
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// GetSKU godoc
// @Summary      Get a SKU by id
// @Tags         skus
// @Produce      json
// @Param        id path string true "SKU ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /skus/{id} [get]
func (h *CatalogHandler) GetSKU(c *gin.Context) {
	s, err := h.facade.GetSKU(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// UpdateSKU godoc
// @Summary      Partially update a SKU's descriptive fields
// @Tags         skus
// @Accept       json
// @Produce      json
// @Param        id path string true "SKU ID"
// @Param        request body catalog.UpdateSKURequest true "Fields to change"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /skus/{id} [put]
func (h *CatalogHandler) UpdateSKU(c *gin.Context) {
	var req catalogapp.UpdateSKURequest
	if !h.bindJSON(c, &req) {
		return
	}

	s, err := h.facade.UpdateSKU(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// DeactivateSKU godoc
// @Summary      Deactivate a SKU (idempotent)
// @Tags         skus
// @Produce      json
// @Param        id path string true "SKU ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /skus/{id}/deactivate [post]
func (h *CatalogHandler) DeactivateSKU(c *gin.Context) {
	s, err := h.facade.DeactivateSKU(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// encodeHandler answers POST /encodings/{barcode,qr}.
// A skuId takes precedence over a literal payload.
func (h *CatalogHandler) encodeHandler(kind barcode.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EncodeRequest
		if !h.bindJSON(c, &req) {
			return
		}

		var (
			d   barcode.Descriptor
			err error
		)
		if req.SKUID != "" {
			d, err = h.facade.EncodeSKU(c.Request.Context(), req.SKUID, kind)
		} else if kind == barcode.KindQR {
			d, err = h.facade.EncodeQR(c.Request.Context(), req.Payload)
		} else {
			d, err = h.facade.EncodeBarcode(c.Request.Context(), req.Payload)
		}
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, d)
	}
}

type decodeFunc func(ctx context.Context, data string) (barcode.Decoded, error)

func (h *CatalogHandler) decodeHandler(decode decodeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DecodeRequest
		if !h.bindJSON(c, &req) {
			return
		}

		d, err := decode(c.Request.Context(), req.Data)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, d)
	}
}

// Stats godoc
// @Summary      Branch and SKU counts
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /stats [get]
func (h *CatalogHandler) Stats(c *gin.Context) {
	h.Success(c, h.facade.Stats())
}

// Taxonomy godoc
// @Summary      Reference categories and brands
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /taxonomy [get]
func (h *CatalogHandler) Taxonomy(c *gin.Context) {
	h.Success(c, h.facade.Taxonomy())
}

// DanglingReferences godoc
// @Summary      SKUs whose branch no longer exists
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /references/dangling [get]
func (h *CatalogHandler) DanglingReferences(c *gin.Context) {
	h.Success(c, h.facade.DanglingReferences())
}
