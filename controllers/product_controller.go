package controllers

import (
	"net/http"
	"strconv"

	"ecom-cart/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// @Summary Get all products
// @Description Get the full catalog in id order
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	products, err := ctrl.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, "ProductController.GetAllProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	const op = "ProductController.GetProductByID"

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, op, services.ErrInvalidProductID)
		return
	}

	product, err := ctrl.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
