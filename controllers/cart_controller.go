package controllers

import (
	"net/http"

	"ecom-cart/models"
	"ecom-cart/services"

	"github.com/gin-gonic/gin"
)

const (
	msgItemAdded   = "Item added to cart"
	msgCartUpdated = "Cart updated successfully"
	msgItemUpdated = "Cart item updated successfully"
	msgItemRemoved = "Item removed from cart"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// @Summary Get cart
// @Description Get cart line items with per-item and grand totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Cart
// @Failure 500 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.GetCart(c.Request.Context())
	if err != nil {
		respondError(c, "CartController.GetCart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// @Summary Add to cart
// @Description Add a product to the cart. Adding a product that is already in the cart increases its quantity.
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Product and quantity"
// @Success 200 {object} models.AddToCartResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	const op = "CartController.AddToCart"

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, op, services.ErrInvalidCartInput)
		return
	}

	id, merged, err := ctrl.carts.AddItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, op, err)
		return
	}

	message := msgItemAdded
	if merged {
		message = msgCartUpdated
	}
	c.JSON(http.StatusOK, models.AddToCartResponse{Message: message, CartItemID: id})
}

// @Summary Update cart item
// @Description Set the quantity of a cart line item
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /cart/{id} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	const op = "CartController.UpdateCartItem"

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, op, services.ErrInvalidQuantity)
		return
	}

	if err := ctrl.carts.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: msgItemUpdated})
}

// @Summary Remove cart item
// @Tags Cart
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	if err := ctrl.carts.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "CartController.RemoveCartItem", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: msgItemRemoved})
}
