package router

import (
	"fashionTrends/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout, authRequired)
}

func SetupUserRoutes(api *echo.Group, userHandler *rest.UserHandler, prefHandler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", userHandler.VerifyEmail)
	users.GET("/me", userHandler.Me, authRequired)

	users.GET("/preferences", prefHandler.GetPreferences, authRequired)
	users.POST("/preferences", prefHandler.SetPreferences, authRequired)
}

func SetupItemRoutes(api *echo.Group, handler *rest.ItemHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	items := api.Group("/items")

	items.GET("", handler.GetAllItems)
	items.GET("/:id", handler.GetItemByID)
	items.POST("", handler.CreateItem, authRequired, adminOnly)
	items.PUT("/:id", handler.UpdateItem, authRequired, adminOnly)
	items.DELETE("/:id", handler.DeleteItem, authRequired, adminOnly)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.GetRecommendations)
	reco.POST("/feedback", handler.RecordFeedback)
}

func SetupTrendRoutes(api *echo.Group, handler *rest.TrendHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	trends := api.Group("/trends")

	trends.GET("", handler.GetTrends)
	trends.GET("/seasonal/:season", handler.GetSeasonalTrends)
	trends.POST("/refresh", handler.RefreshTrendingScores, authRequired, adminOnly)
}
