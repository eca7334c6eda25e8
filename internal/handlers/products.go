package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errIDNotInteger    = "ID must be an integer"
	errProductNotFound = "Product not found"
	errCreateProduct   = "Failed to create product"
	errUpdateProduct   = "Failed to update product"
	errDeleteProduct   = "Failed to delete product"
	errListProducts    = "Failed to load products"
	errGetProduct      = "Failed to load product"

	msgProductDeleted = "Product deleted"
)

// Request DTO for creating/updating a product.
type productRequest struct {
	ProductName string  `json:"productName" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// idParam parses the :id path segment. Writes a 400 and returns false when it
// is not an integer.
func (h *Handler) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errIDNotInteger})
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// @Summary      Add product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body   productRequest  true  "Product payload"
// @Success      201   {object}  models.Product
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /products/add [post]
// @Security     BearerAuth
func (h *Handler) addProduct(c *gin.Context) {
	var req productRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	ctx := c.Request.Context()
	created, err := h.services.Catalog.Add(ctx, service.ProductParams{
		ProductName: req.ProductName,
		Price:       req.Price,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, errCreateProduct, "product_add_failed", err, "name", req.ProductName)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   models.Product
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /products/show [get]
// @Security     BearerAuth
func (h *Handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := h.services.Catalog.List(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListProducts, "product_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  models.Product
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/show/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	product, err := h.services.Catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetProduct, "product_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path   int             true  "Product ID"
// @Param        body  body   productRequest  true  "Product payload"
// @Success      200   {object}  models.Product
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products/update/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req productRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	ctx := c.Request.Context()
	updated, err := h.services.Catalog.Update(ctx, id, service.ProductParams{
		ProductName: req.ProductName,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusBadRequest, errUpdateProduct, "product_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete product
// @Description  Soft delete; the product disappears from list/get but the row is kept.
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]string  "message"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/delete/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteProduct, "product_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgProductDeleted})
}
