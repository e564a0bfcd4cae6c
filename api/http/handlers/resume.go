package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/api/http/presenter"
	"github.com/careerpilot/careerpilot/pkg/resume"
)

type ResumeHandler struct {
	vocab []string
	log   *zap.Logger
}

func NewResumeHandler(log *zap.Logger) *ResumeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResumeHandler{vocab: resume.Vocabulary(), log: log}
}

type resumeSkillsResponse struct {
	Filename    string   `json:"filename"`
	Chars       int      `json:"chars"`
	Skills      []string `json:"skills"`
	SkillsField string   `json:"skillsField"`
}

// Skills reads an uploaded résumé and returns the skills it mentions, ready
// to pre-fill the profile's skills field.
// @Summary Detect skills in a résumé
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   file formData file true "résumé (PDF or DOCX)"
// @Success 200 {object} resumeSkillsResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 413 {object} presenter.ErrorResponse
// @Router  /resume/skills [post]
func (h *ResumeHandler) Skills(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	if !resume.Supported(fh.Filename) {
		return presenter.Error(c, http.StatusBadRequest, resume.ErrUnsupportedFormat.Error())
	}
	if fh.Size > resume.MaxSize {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, resume.ErrTooLarge.Error())
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := resume.ReadAtMost(file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, resume.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		return presenter.Error(c, status, err.Error())
	}
	text, err := resume.ExtractText(fh.Filename, data)
	if err != nil {
		h.log.Info("resume not readable", zap.String("filename", fh.Filename), zap.Error(err))
		return presenter.Error(c, http.StatusBadRequest, "failed to read resume: "+err.Error())
	}

	skills := resume.DetectSkills(text, h.vocab)
	if skills == nil {
		skills = []string{}
	}
	return presenter.JSON(c, http.StatusOK, resumeSkillsResponse{
		Filename:    fh.Filename,
		Chars:       len([]rune(text)),
		Skills:      skills,
		SkillsField: resume.SkillsField(skills),
	})
}
