package routes

import (
	"net/http"
	"time"

	"ecom-cart/controllers"
	"ecom-cart/middleware"
	"ecom-cart/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
}

// NewRouter builds the engine with the standard middleware chain and routes.
func NewRouter(ctrls Controllers, requestTimeout time.Duration) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Timeout(requestTimeout))
	SetupRoutes(router, ctrls)
	return router
}

func SetupRoutes(router *gin.Engine, ctrls Controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/products", ctrls.Products.GetAllProducts)
		api.GET("/products/:id", ctrls.Products.GetProductByID)

		api.GET("/cart", ctrls.Cart.GetCart)
		api.POST("/cart", ctrls.Cart.AddToCart)
		api.PUT("/cart/:id", ctrls.Cart.UpdateCartItem)
		api.DELETE("/cart/:id", ctrls.Cart.RemoveCartItem)

		api.POST("/checkout", ctrls.Checkout.Checkout)
	}
}
