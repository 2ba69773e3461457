package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type BookingHandler struct {
	bookings *services.BookingService
	exporter *export.Service
}

func NewBookingHandler(bookings *services.BookingService, exporter *export.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings, exporter: exporter}
}

// CreateBooking godoc
// @Summary Submit a booking request
// @Description Accepts a form post or JSON. All fields are required; guests must be a positive number.
// @Tags Booking
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param data body services.BookingInput true "Booking"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /booking [post]
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var in services.BookingInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request")
	}
	booking, err := h.bookings.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "ok",
		"message": "Спасибо! Ваша заявка принята, мы свяжемся с вами.",
		"booking": booking,
	})
}

// Dashboard godoc
// @Summary Admin dashboard with all bookings
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/dashboard [get]
func (h *BookingHandler) Dashboard(c *fiber.Ctx) error {
	bookings, err := h.bookings.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// ExportBookings godoc
// @Summary Download bookings
// @Tags Admin
// @Produce octet-stream
// @Param format query string false "xlsx (default), csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /admin/bookings/export [get]
func (h *BookingHandler) ExportBookings(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	data, err := h.bookings.Export(format)
	if err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, data, h.exporter.GetContentType(format),
		fmt.Sprintf("bookings_%s%s", time.Now().Format("20060102_150405"), h.exporter.GetFileExtension(format)))
}

func sendDownload(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
