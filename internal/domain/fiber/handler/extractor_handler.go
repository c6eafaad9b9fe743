package handler

import (
	"log"
	"time"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

const msgExtractFailed = "Failed to Extract Data"

// ExtractorHandler is the resume extraction relay. It answers with the
// model's raw text as JSON, or {"error": ...} and 500 on any failure. A
// missing or empty message list still reaches the model with the system
// prompt.
type ExtractorHandler struct {
	extractor usecase.Extractor
}

func NewExtractorHandler(extractor usecase.Extractor) *ExtractorHandler {
	return &ExtractorHandler{extractor: extractor}
}

func (h *ExtractorHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/resume-extractor", middleware.RateLimiter(10, time.Minute), h.Extract)
}

func (h *ExtractorHandler) Extract(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("resume extractor: invalid body: %v", err)
		return h.fail(c)
	}

	text, err := h.extractor.Extract(c.UserContext(), req.Messages)
	if err != nil {
		log.Printf("resume extractor: %v", err)
		return h.fail(c)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).SendString(text)
}

func (h *ExtractorHandler) fail(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgExtractFailed})
}
