package controllers

import (
	"net/http"

	"ecom-cart/models"
	"ecom-cart/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// @Summary Checkout
// @Description Turn the cart into a receipt and empty the cart. The customer may be sent nested under customerInfo or as flat name/email fields.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Customer info"
// @Success 200 {object} models.Receipt
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	const op = "CheckoutController.Checkout"

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, op, services.ErrCustomerRequired)
		return
	}

	receipt, err := ctrl.checkout.Checkout(c.Request.Context(), req.Customer())
	if err != nil {
		respondError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
