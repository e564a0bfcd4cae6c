package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/api/http/handlers"
	"github.com/careerpilot/careerpilot/pkg/auth"
	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/health"
	"github.com/careerpilot/careerpilot/pkg/health/checkers"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
	"github.com/careerpilot/careerpilot/pkg/repository/memory"
	"github.com/careerpilot/careerpilot/pkg/security/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "careerpilot"
)

type stubGenerator struct {
	recs []career.Recommendation
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, p profile.Profile) ([]career.Recommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, career.ErrInvalidProfile
	}
	return g.recs, g.err
}

func newTestApp(t *testing.T, gen *stubGenerator) *fiber.App {
	t.Helper()
	tokens := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	authUC := auth.NewAuthService(memory.NewUserRepository(), tokens)
	reportUC := report.NewService(memory.NewReportRepository())
	readiness := health.NewService(checkers.NewGeneratorChecker(func() bool { return true }))

	app := fiber.New()
	Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewHealthHandler(readiness),
		handlers.NewRecommendationHandler(gen, nil),
		handlers.NewReportHandler(reportUC, nil),
		handlers.NewResumeHandler(nil),
		jwt.NewAuthMiddleware(testSecret, testIssuer),
	)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var obj map[string]any
	_ = json.Unmarshal(raw, &obj)
	return resp.StatusCode, obj, raw
}

func register(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body, _ := do(t, app, fiber.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "secret1", "fullName": "Alex",
	})
	require.Equal(t, fiber.StatusCreated, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func dataAnalyst() []career.Recommendation {
	return []career.Recommendation{{
		ID: "c1", Title: "Data Analyst", MatchScore: 88,
		Analysis: career.SkillAnalysis{Required: []string{"SQL", "Excel"}, Matching: []string{"Excel"}, Missing: []string{"SQL"}},
		Roadmap:  []career.RoadmapStep{{Title: "Month 1-2", Focus: "SQL basics"}},
	}}
}

func alexProfile() profile.Profile {
	return profile.Profile{Name: "Alex", Education: "Bachelor's Degree", Skills: "Python, Excel", Interests: "data", WorkStyle: profile.WorkStyleAnalytical}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	status, body, _ := do(t, app, fiber.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body, _ = do(t, app, fiber.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]any{"llm": "ok"}, body["checks"])
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	token := register(t, app, "alex@example.com")

	status, _, _ := do(t, app, fiber.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "alex@example.com", "password": "secret1"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/auth/register", "", map[string]string{"email": "sam@example.com", "password": "123"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "alex@example.com", "password": "nope-nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body, _ := do(t, app, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ALEX@example.com", "password": "secret1"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body, _ = do(t, app, fiber.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alex@example.com", body["email"])
	assert.Equal(t, "Alex", body["fullName"])

	status, _, _ = do(t, app, fiber.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/auth/google", "", map[string]string{"idToken": "x"})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestReportEndpoints(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})
	alex := register(t, app, "alex@example.com")
	sam := register(t, app, "sam@example.com")

	status, _, _ := do(t, app, fiber.MethodGet, "/api/v1/reports", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _, raw := do(t, app, fiber.MethodGet, "/api/v1/reports", alex, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, created, _ := do(t, app, fiber.MethodPost, "/api/v1/reports", alex, map[string]any{
		"careers":         dataAnalyst(),
		"profileSnapshot": alexProfile(),
	})
	require.Equal(t, fiber.StatusCreated, status)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Alex", created["name"])
	assert.Equal(t, "Bachelor's Degree", created["education"])
	assert.NotEmpty(t, created["date"])

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/reports", alex, map[string]any{"name": "Alex"})
	assert.Equal(t, fiber.StatusBadRequest, status, "careers are required")

	var list []report.Report
	status, _, raw = do(t, app, fiber.MethodGet, "/api/v1/reports", alex, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, dataAnalyst(), list[0].Careers)

	status, _, _ = do(t, app, fiber.MethodGet, "/api/v1/reports/"+id, sam, nil)
	assert.Equal(t, fiber.StatusNotFound, status, "reports are owner scoped")
	status, _, _ = do(t, app, fiber.MethodDelete, "/api/v1/reports/"+id, sam, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _, _ = do(t, app, fiber.MethodGet, "/api/v1/reports/not-a-uuid", alex, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, _ = do(t, app, fiber.MethodDelete, "/api/v1/reports/"+id, alex, nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _, _ = do(t, app, fiber.MethodGet, "/api/v1/reports/"+id, alex, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRecommendationEndpoint(t *testing.T) {
	gen := &stubGenerator{recs: dataAnalyst()}
	app := newTestApp(t, gen)
	token := register(t, app, "alex@example.com")

	var out struct {
		Careers []career.Recommendation `json:"careers"`
	}
	status, _, raw := do(t, app, fiber.MethodPost, "/api/v1/recommendations", token, alexProfile())
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, dataAnalyst(), out.Careers)

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/recommendations", "", alexProfile())
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _, _ = do(t, app, fiber.MethodPost, "/api/v1/recommendations", token, profile.Profile{Name: "Alex"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not configured", &career.ConfigurationError{}, fiber.StatusServiceUnavailable},
		{"parse", &career.ParseError{Raw: "no json here"}, fiber.StatusBadGateway},
		{"timeout", &career.BackendError{Err: context.DeadlineExceeded}, fiber.StatusGatewayTimeout},
		{"backend", &career.BackendError{Err: io.ErrUnexpectedEOF}, fiber.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen.recs, gen.err = nil, tc.err
			status, body, _ := do(t, app, fiber.MethodPost, "/api/v1/recommendations", token, alexProfile())
			assert.Equal(t, tc.status, status)
			assert.Equal(t, career.UserMessage(tc.err), body["message"])
			if tc.name == "parse" {
				assert.Equal(t, "no json here", body["raw"])
			}
		})
	}
}

func upload(t *testing.T, app *fiber.App, token, filename string, content []byte) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/resume/skills", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var obj map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&obj)
	return resp.StatusCode, obj
}

func TestResumeSkillsEndpoint(t *testing.T) {
	app := newTestApp(t, &stubGenerator{})

	status, _ := upload(t, app, "", "cv.pdf", []byte("%PDF"))
	assert.Equal(t, fiber.StatusUnauthorized, status)

	token := register(t, app, "alex@example.com")
	status, body := upload(t, app, token, "cv.txt", []byte("Go, SQL"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "unsupported file format")

	status, body = upload(t, app, token, "cv.docx", []byte("not a zip"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "failed to read resume")
}
