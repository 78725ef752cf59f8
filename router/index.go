package router

import (
	"github.com/ecoradom4/cine-backend/handler"
	"github.com/ecoradom4/cine-backend/middleware"
	"github.com/ecoradom4/cine-backend/validate"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterValidate(), handler.Register)
	auth.Post("/login", validate.LoginValidate(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	v1.Get("/cartelera", handler.GetBillboard)

	showtime := v1.Group("/showtimes", logger.New())
	showtime.Get("/", validate.FilterShowtimeValidate(), handler.GetShowtimes)
	showtime.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateShowtimeValidate(), handler.CreateShowtime)
	showtime.Get("/:showtimeId", validate.GetById("showtimeId"), handler.GetShowtimeById)
	showtime.Get("/:showtimeId/seats", validate.GetById("showtimeId"), handler.GetShowtimeSeats)
	showtime.Get("/ws/:id", middleware.OptionalJWT(), websocket.New(handler.WebSocketConnection))

	seats := v1.Group("/seats")
	seats.Post("/reserve", middleware.OptionalJWT(), validate.ReserveSeatsValidate(), handler.ReserveSeats)
	seats.Post("/release", middleware.OptionalJWT(), validate.ReleaseSeatsValidate(), handler.ReleaseSeats)

	booking := v1.Group("/bookings", logger.New())
	booking.Post("/", middleware.OptionalJWT(), validate.CreateBookingValidate(), handler.CreateBooking)
	booking.Get("/", middleware.Protected(), validate.FilterBookingValidate(), handler.GetUserBookings)
	booking.Get("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), handler.GetBookingById)
	booking.Post("/:bookingId/cancel", middleware.Protected(), validate.GetById("bookingId"), handler.CancelBooking)

	ticket := v1.Group("/tickets")
	ticket.Get("/:ticketNumber", handler.GetTicketByNumber)
	ticket.Post("/:ticketNumber/validate", middleware.Protected(), middleware.AdminOnly(), handler.ValidateTicket)
	ticket.Post("/:ticketNumber/email", handler.ResendTicketEmail)

	pricing := v1.Group("/pricing")
	pricing.Post("/calculate", validate.CalculatePriceValidate(), handler.CalculatePrice)
	pricing.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetPricingRules)
	pricing.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreatePricingRuleValidate(), handler.CreatePricingRule)
	pricing.Put("/:ruleId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("ruleId"), validate.UpdatePricingRuleValidate(), handler.UpdatePricingRule)
	pricing.Delete("/:ruleId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("ruleId"), handler.DeletePricingRule)

	promotion := v1.Group("/promotions")
	promotion.Post("/validate", validate.ValidatePromotionValidate(), handler.ValidatePromotion)
	promotion.Get("/", handler.GetPromotions)
	promotion.Get("/:promotionId", validate.GetById("promotionId"), handler.GetPromotionById)
	promotion.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreatePromotionValidate(), handler.CreatePromotion)
	promotion.Put("/:promotionId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("promotionId"), validate.UpdatePromotionValidate(), handler.UpdatePromotion)
	promotion.Delete("/:promotionId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("promotionId"), handler.DeletePromotion)

	invoice := v1.Group("/invoices", middleware.Protected(), middleware.AdminOnly())
	invoice.Get("/", validate.FilterInvoiceValidate(), handler.GetInvoices)
	invoice.Get("/:invoiceId", validate.GetById("invoiceId"), handler.GetInvoiceById)
	invoice.Patch("/:invoiceId/status", validate.GetById("invoiceId"), validate.UpdateInvoiceStatusValidate(), handler.UpdateInvoiceStatus)
	invoice.Post("/:invoiceId/email", validate.GetById("invoiceId"), handler.ResendInvoiceEmail)
}
