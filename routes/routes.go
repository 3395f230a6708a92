package routes

import (
	"nutrisnap/controllers"
	"nutrisnap/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Food     *controllers.FoodController
	Logs     *controllers.LogController
	Insights *controllers.InsightsController
	Limits   *controllers.LimitsController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/verify", controllers.Verify)
	}

	// Everything else requires a valid token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		food := api.Group("/food")
		{
			food.POST("/capture", ctrl.Food.CaptureFood)
			food.GET("/session", ctrl.Food.GetSession)
			food.POST("/confirm", ctrl.Food.ConfirmCandidate)
			food.GET("/search", ctrl.Food.SearchFoods)
		}

		logs := api.Group("/logs")
		{
			logs.GET("", ctrl.Logs.ListLogs)
			logs.POST("", ctrl.Logs.AddLog)
			logs.DELETE("/:log_id", ctrl.Logs.DeleteLog)
		}

		insights := api.Group("/insights")
		{
			insights.GET("/weekly", ctrl.Insights.GetWeekly)
			insights.GET("/day", ctrl.Insights.GetDayTotals)
		}

		api.GET("/limits", ctrl.Limits.GetLimits)
		api.PUT("/limits", ctrl.Limits.UpdateLimits)

		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)

		api.GET("/ws", ctrl.Realtime.LogEventsWS)
	}

	return r
}
