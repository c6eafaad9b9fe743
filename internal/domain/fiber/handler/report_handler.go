package handler

import (
	"errors"
	"log"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/response"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	msgNoReportData  = "No report data found."
	msgInvalidReport = "Invalid report format"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reports := router.Group("/reports", middleware.RequireUser())
	reports.Get("/", h.List)
	reports.Get("/:id", h.Report)
	reports.Post("/:id/analyze", h.Analyze)

	router.Get("/tasks/:key", middleware.RequireUser(), h.TakeTask)
}

type reportListData struct {
	State   usecase.ReportState `json:"state"`
	Message string              `json:"message,omitempty"`
	Cards   []dto.ReportCardDTO `json:"cards"`
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	browser := h.uc.Browser()
	state := browser.Load(c.UserContext(), middleware.UserID(c))

	if state == usecase.ReportError {
		log.Printf("list reports failed: %v", browser.Err())
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: browser.Message(),
			Details: reportListData{State: state, Cards: []dto.ReportCardDTO{}},
		}, browser.Err())
	}

	cards := browser.Cards()
	pagination := response.NewPagination(c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize), int64(len(cards)))
	from, to := pagination.Bounds()

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get reports",
		Pagination: pagination,
		Data: reportListData{
			State:   state,
			Message: browser.Message(),
			Cards:   cards[from:to],
		},
	})
}

func (h *ReportHandler) Report(c *fiber.Ctx) error {
	interview, report, err := h.uc.Report(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return h.reportError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get report",
		Data: fiber.Map{
			"interview": usecase.ReportCard(*interview),
			"report":    report,
		},
	})
}

// Analyze seeds the resume-analysis chat task and points the client at the
// chat view.
func (h *ReportHandler) Analyze(c *fiber.Ctx) error {
	task, err := h.uc.SeedAnalysis(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return h.reportError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success seed analysis task",
		Data: dto.AnalysisTaskResponse{
			Redirect: usecase.ChatTaskPath,
			Task:     task,
		},
	})
}

func (h *ReportHandler) TakeTask(c *fiber.Ctx) error {
	task, ok := h.uc.TakeTask(middleware.UserID(c), c.Params("key"))
	if !ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "task not found",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get task",
		Data:    task,
	})
}

func (h *ReportHandler) reportError(c *fiber.Ctx, err error) error {
	format := util.ErrorResponseFormat{
		Code:    fiber.StatusBadGateway,
		Message: usecase.MsgReportsFailed,
	}
	switch {
	case errors.Is(err, usecase.ErrInterviewNotFound):
		format.Code = fiber.StatusNotFound
		format.Message = "interview not found"
	case errors.Is(err, usecase.ErrNoReport):
		format.Code = fiber.StatusNotFound
		format.Message = msgNoReportData
	case errors.Is(err, usecase.ErrInvalidReport):
		format.Code = fiber.StatusUnprocessableEntity
		format.Message = msgInvalidReport
	case errors.Is(err, usecase.ErrNoResume):
		format.Code = fiber.StatusBadRequest
		format.Message = "interview has no resume to analyse"
	case errors.Is(err, usecase.ErrUnauthenticated):
		format.Code = fiber.StatusUnauthorized
		format.Message = usecase.MsgMustLogIn
	default:
		log.Printf("report request failed: %v", err)
	}
	return util.ErrorResponse(c, format, err)
}
