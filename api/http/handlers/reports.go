package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/api/http/presenter"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
)

// ReportHandler exposes the signed-in user's saved reports.
type ReportHandler struct {
	uc  report.UseCase
	log *zap.Logger
}

func NewReportHandler(uc report.UseCase, log *zap.Logger) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{uc: uc, log: log}
}

type createReportRequest struct {
	Name      string                  `json:"name"`
	Education string                  `json:"education"`
	Date      string                  `json:"date"`
	Careers   []career.Recommendation `json:"careers"`
	Profile   profile.Profile         `json:"profileSnapshot"`
}

// List returns the user's reports, newest first.
// @Summary List saved reports
// @Tags    reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} report.Report
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return h.fail(c, "list", err)
	}
	if items == nil {
		items = []report.Report{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create saves a report for the user. The owner always comes from the token.
// @Summary Save a report
// @Tags    reports
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createReportRequest true "report"
// @Success 201 {object} report.Report
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	var req createReportRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	saved, err := h.uc.Save(c.Context(), userID, report.Report{
		Name:      req.Name,
		Education: req.Education,
		Date:      req.Date,
		Careers:   req.Careers,
		Profile:   req.Profile,
	})
	if err != nil {
		return h.fail(c, "create", err)
	}
	return presenter.JSON(c, http.StatusCreated, saved)
}

// Get returns one report of the user.
// @Summary Get a saved report
// @Tags    reports
// @Produce json
// @Security BearerAuth
// @Param   id path string true "report id"
// @Success 200 {object} report.Report
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid report id")
	}
	r, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return h.fail(c, "get", err)
	}
	return presenter.JSON(c, http.StatusOK, r)
}

// Delete removes one report of the user.
// @Summary Delete a saved report
// @Tags    reports
// @Security BearerAuth
// @Param   id path string true "report id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid report id")
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return h.fail(c, "delete", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *ReportHandler) fail(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, report.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "report not found")
	case errors.Is(err, report.ErrInvalid):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, report.ErrNoSession):
		return presenter.Error(c, http.StatusUnauthorized, "unknown user")
	default:
		h.log.Error("report operation failed", zap.String("op", op), zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to "+op+" report")
	}
}
