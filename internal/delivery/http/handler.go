package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparison   *usecase.ComparisonService
	products     domain.ProductRepository
	equivalences domain.EquivalenceRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(comparison *usecase.ComparisonService, products domain.ProductRepository, equivalences domain.EquivalenceRepository) *Handler {
	return &Handler{
		comparison:   comparison,
		products:     products,
		equivalences: equivalences,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cuidaelmango-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles GET /api/v1/products/search?q=...&store=...&strict=...&limit=...
func (h *Handler) SearchProducts(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	store := domain.Store(c.Query("store"))
	if store != "" && !store.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store must be 'carrefour' or 'disco'"})
		return
	}

	strict := c.DefaultQuery("strict", "true") != "false"

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	found, err := h.products.Search(c.Request.Context(), store, term, strict, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	// Strict search can be too narrow for long names; retry loose so
	// the client always gets something to offer.
	if len(found) == 0 && strict {
		found, err = h.products.Search(c.Request.Context(), store, term, false, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
			return
		}
	}

	if found == nil {
		found = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": found, "count": len(found)})
}

// compareRequest is the body of POST /api/v1/compare
type compareRequest struct {
	Products []domain.Product `json:"products" binding:"required"`
}

// CompareCart handles POST /api/v1/compare
func (h *Handler) CompareCart(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.comparison.CompareProducts(c.Request.Context(), req.Products)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "comparison failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// priceCartRequest is the body of POST /api/v1/cart/total
type priceCartRequest struct {
	Lines []domain.CartLine `json:"lines" binding:"required"`
}

// PriceCart handles POST /api/v1/cart/total
func (h *Handler) PriceCart(c *gin.Context) {
	var req priceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	summary, err := h.comparison.PriceCart(c.Request.Context(), req.Lines)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest),
			errors.Is(err, domain.ErrInvalidQuantity),
			errors.Is(err, domain.ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart pricing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// equivalenceRequest is the body of POST /api/v1/equivalences
type equivalenceRequest struct {
	ProductAID int64 `json:"productAId" binding:"required"`
	ProductBID int64 `json:"productBId" binding:"required"`
	Confidence int   `json:"confidence"`
}

// CreateEquivalence handles POST /api/v1/equivalences
func (h *Handler) CreateEquivalence(c *gin.Context) {
	var req equivalenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.ProductAID == req.ProductBID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a product cannot be paired with itself"})
		return
	}

	ctx := c.Request.Context()

	// Both products must exist and come from opposite stores
	a, err := h.products.GetByID(ctx, req.ProductAID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	b, err := h.products.GetByID(ctx, req.ProductBID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if a.Store == b.Store {
		c.JSON(http.StatusBadRequest, gin.H{"error": "equivalent products must come from different stores"})
		return
	}

	confidence := req.Confidence
	if confidence <= 0 || confidence > 100 {
		confidence = 100
	}

	equivalence := domain.Equivalence{
		ProductAID:    req.ProductAID,
		ProductBID:    req.ProductBID,
		Confidence:    confidence,
		UserConfirmed: true,
	}
	if err := h.equivalences.Save(ctx, &equivalence); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving equivalence failed"})
		return
	}

	c.JSON(http.StatusCreated, equivalence)
}

// GetEquivalences handles GET /api/v1/equivalences/:productId
func (h *Handler) GetEquivalences(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || productID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId must be a positive integer"})
		return
	}

	found, err := h.equivalences.FindByProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "equivalence lookup failed"})
		return
	}

	if found == nil {
		found = []domain.Equivalence{}
	}
	c.JSON(http.StatusOK, gin.H{"equivalences": found, "count": len(found)})
}
