package handler

import (
	"errors"
	"log"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/gofiber/fiber/v2"
)

// InterviewHandler creates interviews for clients that hold their own draft.
type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/interviews", h.Create)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	draft, err := usecase.DraftFromRequest(req)
	if err != nil {
		return h.createError(c, err)
	}
	record, err := h.uc.Create(c.UserContext(), draft, middleware.Session(c))
	if err != nil {
		return h.createError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: usecase.MsgInterviewCreated,
		Data: dto.CreateInterviewResponse{
			DocumentID: record.DocumentID,
			Redirect:   usecase.InterviewPath(record.DocumentID),
		},
	})
}

func (h *InterviewHandler) createError(c *fiber.Ctx, err error) error {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		code := fiber.StatusBadRequest
		if verr.Message == usecase.MsgMustLogIn {
			code = fiber.StatusUnauthorized
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: verr.Message,
		}, util.NewFormError(verr.Message, map[string]string{verr.Field: verr.Message}))
	}
	log.Printf("create interview failed: %v", err)
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadGateway,
		Message: usecase.MsgCreateFailed,
	}, err)
}
