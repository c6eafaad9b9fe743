package handler

import (
	"errors"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/gofiber/fiber/v2"
)

type WizardHandler struct {
	manager *usecase.WizardManager
}

func NewWizardHandler(manager *usecase.WizardManager) *WizardHandler {
	return &WizardHandler{manager: manager}
}

func (h *WizardHandler) RegisterRoutes(router fiber.Router) {
	wizard := router.Group("/wizard")
	wizard.Post("/", h.Open)
	wizard.Get("/:id", h.Snapshot)
	wizard.Patch("/:id", h.Update)
	wizard.Post("/:id/resume", h.SelectResume)
	wizard.Post("/:id/continue", h.Continue)
	wizard.Post("/:id/back", h.Back)
	wizard.Post("/:id/complete", h.Complete)
}

func (h *WizardHandler) Open(c *fiber.Ctx) error {
	w := h.manager.Open(middleware.UserID(c))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Wizard started",
		Data:    w.Snapshot(),
	})
}

func (h *WizardHandler) Snapshot(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	return h.ok(c, w)
}

func (h *WizardHandler) Update(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	var req dto.WizardUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	if err := w.Update(req); err != nil {
		return h.wizardError(c, w, err, usecase.MsgCreateFailed)
	}
	return h.ok(c, w)
}

// SelectResume runs the upload and extraction pipeline for the posted file.
// Pipeline failures are reported through the wizard's notifications.
func (h *WizardHandler) SelectResume(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	file, err := readResumeFile(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: resumeField + " file is required",
		}, err)
	}
	if err := w.SelectResume(c.UserContext(), file); err != nil {
		return h.wizardError(c, w, err, usecase.MsgResumeFailed)
	}
	return h.ok(c, w)
}

func (h *WizardHandler) Continue(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	if err := w.Continue(); err != nil {
		return h.wizardError(c, w, err, usecase.MsgCreateFailed)
	}
	return h.ok(c, w)
}

func (h *WizardHandler) Back(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	if err := w.Back(); err != nil {
		return h.wizardError(c, w, err, usecase.MsgCreateFailed)
	}
	return h.ok(c, w)
}

// Complete creates the interview. The finished session is dropped and the
// snapshot carries the redirect to the interview view.
func (h *WizardHandler) Complete(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return h.wizardError(c, nil, err, usecase.MsgCreateFailed)
	}
	if _, err := w.Complete(c.UserContext(), middleware.Session(c)); err != nil {
		return h.wizardError(c, w, err, usecase.MsgCreateFailed)
	}
	h.manager.Remove(w.ID())
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: usecase.MsgInterviewCreated,
		Data:    w.Snapshot(),
	})
}

func (h *WizardHandler) wizard(c *fiber.Ctx) (*usecase.Wizard, error) {
	return h.manager.Get(c.Params("id"), middleware.UserID(c))
}

func (h *WizardHandler) ok(c *fiber.Ctx, w *usecase.Wizard) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success",
		Data:    w.Snapshot(),
	})
}

// wizardError maps wizard errors to statuses. Upstream failures use the
// fallback message and the snapshot with its error notification.
func (h *WizardHandler) wizardError(c *fiber.Ctx, w *usecase.Wizard, err error, fallback string) error {
	format := util.ErrorResponseFormat{
		Code:    fiber.StatusBadGateway,
		Message: fallback,
	}
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		format.Code = fiber.StatusBadRequest
		format.Message = verr.Message
	case errors.Is(err, usecase.ErrSessionNotFound):
		format.Code = fiber.StatusNotFound
		format.Message = err.Error()
	case errors.Is(err, usecase.ErrWizardBusy),
		errors.Is(err, usecase.ErrWizardFinished),
		errors.Is(err, usecase.ErrStepOutOfOrder):
		format.Code = fiber.StatusConflict
		format.Message = err.Error()
	}
	if w != nil {
		format.Details = w.Snapshot()
	}
	return util.ErrorResponse(c, format, err)
}
