package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/api/http/presenter"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
)

// RecommendationHandler generates career recommendations for a profile.
type RecommendationHandler struct {
	gen career.Generator
	log *zap.Logger
}

func NewRecommendationHandler(gen career.Generator, log *zap.Logger) *RecommendationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecommendationHandler{gen: gen, log: log}
}

type recommendationsResponse struct {
	Careers []career.Recommendation `json:"careers"`
}

// generationError carries the raw model output when it could not be parsed.
type generationError struct {
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"`
}

// Generate returns the top career matches for the posted profile.
// @Summary Generate career recommendations
// @Tags    recommendations
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body profile.Profile true "profile"
// @Success 200 {object} recommendationsResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} generationError
// @Failure 503 {object} presenter.ErrorResponse
// @Failure 504 {object} presenter.ErrorResponse
// @Router  /recommendations [post]
func (h *RecommendationHandler) Generate(c *fiber.Ctx) error {
	p := profile.New()
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if p.WorkStyle == "" {
		p.WorkStyle = profile.WorkStyleRemote
	}

	recs, err := h.gen.Generate(c.Context(), p)
	if err != nil {
		var (
			cfgErr     *career.ConfigurationError
			backendErr *career.BackendError
			parseErr   *career.ParseError
		)
		msg := career.UserMessage(err)
		switch {
		case errors.Is(err, career.ErrInvalidProfile):
			return presenter.Error(c, http.StatusBadRequest, msg)
		case errors.As(err, &cfgErr):
			return presenter.Error(c, http.StatusServiceUnavailable, msg)
		case errors.As(err, &parseErr):
			h.log.Warn("unparseable model response", zap.Int("raw_len", len(parseErr.Raw)), zap.Error(err))
			return presenter.JSON(c, http.StatusBadGateway, generationError{Message: msg, Raw: parseErr.Raw})
		case errors.As(err, &backendErr) && backendErr.Timeout():
			return presenter.Error(c, http.StatusGatewayTimeout, msg)
		case errors.As(err, &backendErr):
			h.log.Error("model backend failed", zap.Error(err))
			return presenter.Error(c, http.StatusBadGateway, msg)
		default:
			h.log.Error("generation failed", zap.Error(err))
			return presenter.Error(c, http.StatusInternalServerError, msg)
		}
	}
	if recs == nil {
		recs = []career.Recommendation{}
	}
	return presenter.JSON(c, http.StatusOK, recommendationsResponse{Careers: recs})
}
