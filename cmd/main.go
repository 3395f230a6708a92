package main

import (
	"log"

	"nutrisnap/config"
	"nutrisnap/controllers"
	"nutrisnap/routes"
	"nutrisnap/services"
	"nutrisnap/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	detector, err := services.NewDetectorFromEnv()
	if err != nil {
		log.Fatalf("failed to initialize food detector: %v", err)
	}

	searcher := services.NewUSDAService()
	logSvc := services.NewLogService(config.DB)
	limitsSvc := services.NewLimitsService(config.DB)
	captureSvc := services.NewCaptureService(detector, searcher, logSvc)
	insightsSvc := services.NewInsightsService(logSvc, limitsSvc)
	hub := services.NewRealtimeHub()

	r := routes.SetupRouter(routes.Controllers{
		Food:     controllers.NewFoodController(captureSvc, searcher, hub),
		Logs:     controllers.NewLogController(logSvc, hub),
		Insights: controllers.NewInsightsController(insightsSvc),
		Limits:   controllers.NewLimitsController(limitsSvc),
		Realtime: controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
