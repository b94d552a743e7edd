package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.KitchenHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/status", handler.Status)
	r.GET("/dashboard", handler.Dashboard)

	inventory := r.Group("/inventory")
	inventory.GET("", handler.ListInventory)
	inventory.GET("/expiring", handler.ExpiringSoon)
	inventory.POST("/receipt", handler.ScanReceipt)
	inventory.DELETE("/:id", handler.DeleteIngredient)

	shopping := r.Group("/shopping-list")
	shopping.GET("", handler.ListShopping)
	shopping.POST("/generate", handler.GenerateShopping)
	shopping.POST("/move-to-stock", handler.MoveToStock)
	shopping.POST("/export", handler.ExportShopping)
	shopping.POST("/:id/toggle", handler.ToggleShoppingItem)
	shopping.DELETE("/:id", handler.DeleteShoppingItem)

	recipes := r.Group("/recipes")
	recipes.GET("", handler.ListRecipes)
	recipes.GET("/saved", handler.ListSavedRecipes)
	recipes.GET("/search", handler.SearchRecipes)
	recipes.POST("/generate", handler.GenerateRecipes)
	recipes.POST("/:id/save", handler.SaveRecipe)
	recipes.DELETE("/:id/save", handler.UnsaveRecipe)
	recipes.DELETE("/:id", handler.DeleteRecipe)

	plan := r.Group("/meal-plan")
	plan.GET("", handler.GetMealPlan)
	plan.POST("/generate", handler.GenerateMealPlan)
	plan.POST("/clear", handler.ClearMealPlan)
	plan.POST("/export", handler.ExportMealPlan)
	plan.PUT("/:day/:meal", handler.AssignMeal)
	plan.DELETE("/:day/:meal", handler.ClearMeal)

	r.GET("/profile", handler.GetProfile)
	r.PATCH("/profile", handler.PatchProfile)

	r.GET("/chat", handler.GetChat)
	r.POST("/chat", handler.PostChat)

	r.POST("/notifications/session", handler.StartNotificationSession)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
