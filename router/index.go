package router

import (
	"campus_queue/handler"
	"campus_queue/middleware"
	"campus_queue/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", middleware.Protected(), handler.Logout)

	user := v1.Group("/user", logger.New())
	user.Get("/", middleware.Protected(), handler.GetUsers)
	user.Post("/", middleware.Protected(), validate.CreateUser(), handler.CreateUser)
	user.Patch("/:userId/window/:windowNum", middleware.Protected(), validate.GetById("userId"), handler.SetUserWindow)

	register := v1.Group("/register", logger.New())
	register.Post("/student", validate.RegisterStudent(), handler.RegisterStudent)
	register.Post("/guest", validate.RegisterGuest(), handler.RegisterGuest)
	register.Post("/new-enrollee", validate.RegisterGuest(), handler.RegisterNewEnrollee)
	register.Post("/recover-qr", validate.RecoverQR(), handler.RecoverQR)

	queue := v1.Group("/queue", logger.New())
	queue.Post("/request", validate.QueueRequest(), handler.RequestQueue)
	queue.Post("/request/new-enrollee", handler.NewEnrolleeQuickQueue)
	queue.Post("/request/guest", handler.GuestQuickQueue)
	queue.Get("/", middleware.Protected(), handler.GetQueueEntries)
	queue.Get("/statistics", middleware.Protected(), handler.GetQueueStatistics)

	// Màn hình chờ public
	v1.Get("/public-next-queues", handler.PublicNextQueues)
	v1.Get("/live-queue", handler.LiveQueueStatus)

	window := v1.Group("/window", logger.New())
	window.Post("/reserve/:entryId", middleware.Protected(), validate.GetById("entryId"), handler.ReserveQueueEntry)
	window.Post("/hold/:entryId", middleware.Protected(), validate.GetById("entryId"), handler.HoldQueueEntry)
	window.Post("/resume/:entryId", middleware.Protected(), validate.GetById("entryId"), handler.ResumeQueueEntry)
	window.Post("/complete/:entryId", middleware.Protected(), validate.GetById("entryId"), handler.CompleteQueueEntry)
	window.Post("/cancel/:entryId", middleware.Protected(), validate.GetById("entryId"), handler.CancelQueueEntry)

	cutoff := v1.Group("/cutoff", logger.New())
	cutoff.Get("/", middleware.Protected(), handler.GetCutoffSchedules)
	cutoff.Post("/", middleware.Protected(), validate.CreateCutoffSchedule(), handler.CreateCutoffSchedule)
	cutoff.Delete("/:id", middleware.Protected(), handler.DeleteCutoffSchedule)

	// Websocket cho bảng xếp hàng realtime
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/queue", websocket.New(handler.WebSocketConnection))
}
