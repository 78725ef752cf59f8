package main

import (
	"log"

	"github.com/ecoradom4/cine-backend/config"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/handler"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartShowtimeScheduler(database.DB)
	defer helper.StopShowtimeScheduler()
	helper.StartMaintenanceScheduler(database.DB)
	defer helper.StopMaintenanceScheduler()
	handler.StartExpireReservationWorker()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8002")))
}
