package main

import (
	"campus_queue/config"
	"campus_queue/database"
	"campus_queue/handler"
	"campus_queue/helper"
	"campus_queue/router"
	"campus_queue/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	// Mailer xoay vòng account cho QR recovery
	handler.InitMailer(utils.NewRollingSender(
		config.Config("SMTP_HOST"),
		config.Config("SMTP_PORT"),
		config.Config("SMTP_ACCOUNTS"),
	))

	// Hai job cutoff chạy nền — mỗi process đúng một scheduler
	helper.StartCutoffScheduler()

	router.SetupRoutes(app)
	if err := app.Listen(":8002"); err != nil {
		helper.StopCutoffScheduler()
		log.Fatal(err)
	}
}
