package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/careerpilot/careerpilot/pkg/llm"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.config = model, config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: s}}},
		}},
	}
}

func TestAsk(t *testing.T) {
	f := &fakeModels{resp: textResponse(`{"careers":[]}`)}
	c := newWithModels(f, "")

	out, err := c.Ask(context.Background(), "be precise", "suggest careers")
	require.NoError(t, err)
	assert.Equal(t, `{"careers":[]}`, out)
	assert.Equal(t, DefaultModel, f.model)
	assert.Equal(t, "suggest careers", f.prompt)
	require.NotNil(t, f.config.SystemInstruction)
	assert.Equal(t, "be precise", f.config.SystemInstruction.Parts[0].Text)
}

func TestAsk_Errors(t *testing.T) {
	_, err := newWithModels(&fakeModels{err: errors.New("quota")}, "m").Ask(context.Background(), "", "x")
	assert.ErrorContains(t, err, "quota")

	_, err = newWithModels(&fakeModels{resp: &genai.GenerateContentResponse{}}, "m").Ask(context.Background(), "", "x")
	assert.Error(t, err)

	_, err = newWithModels(&fakeModels{resp: textResponse("  ")}, "m").Ask(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestNew_NoKey(t *testing.T) {
	c, err := New(context.Background(), "", "")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}
