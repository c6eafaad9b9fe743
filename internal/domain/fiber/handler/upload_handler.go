package handler

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/service"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/gofiber/fiber/v2"
)

const resumeField = "image"

type UploadHandler struct {
	uploader usecase.Uploader
}

func NewUploadHandler(uploader usecase.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", middleware.RateLimiter(20, time.Minute), h.Upload)
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := readResumeFile(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("%s file is required", resumeField),
		}, err)
	}

	url, err := h.uploader.Upload(c.UserContext(), file)
	if err != nil {
		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			code = fiber.StatusRequestEntityTooLarge
		case errors.Is(err, service.ErrUnsupportedFile), errors.Is(err, service.ErrEmptyFile):
			code = fiber.StatusUnsupportedMediaType
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "Failed to upload file",
		}, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"result": url})
}

// readResumeFile loads the multipart resume into memory.
func readResumeFile(c *fiber.Ctx) (usecase.ResumeFile, error) {
	header, err := c.FormFile(resumeField)
	if err != nil {
		return usecase.ResumeFile{}, err
	}
	src, err := header.Open()
	if err != nil {
		return usecase.ResumeFile{}, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return usecase.ResumeFile{}, fmt.Errorf("read uploaded file: %w", err)
	}
	return usecase.ResumeFile{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
