package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	pages := []Page{PageHome, PageForm, PageLoading, PageResults, PageSaved}
	legal := map[Action]map[Page]Page{
		ActionStart:      {PageHome: PageForm, PageForm: PageForm, PageResults: PageForm, PageSaved: PageForm},
		ActionSubmit:     {PageForm: PageLoading},
		ActionSucceed:    {PageLoading: PageResults},
		ActionFail:       {PageLoading: PageForm},
		ActionCancel:     {PageLoading: PageForm, PageForm: PageHome},
		ActionHome:       {PageHome: PageHome, PageForm: PageHome, PageLoading: PageHome, PageResults: PageHome, PageSaved: PageHome},
		ActionOpenSaved:  {PageHome: PageSaved, PageForm: PageSaved, PageLoading: PageSaved, PageResults: PageSaved, PageSaved: PageSaved},
		ActionViewReport: {PageSaved: PageResults},
	}

	for action, table := range legal {
		for _, from := range pages {
			got, err := Transition(from, action)
			if want, ok := table[from]; ok {
				assert.NoError(t, err, "%s on %s", action, from)
				assert.Equal(t, want, got, "%s on %s", action, from)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s on %s", action, from)
				assert.Equal(t, from, got)
			}
		}
	}
}

func TestPageAndActionNames(t *testing.T) {
	assert.Equal(t, "loading", PageLoading.String())
	assert.Equal(t, "view_report", ActionViewReport.String())
	assert.Equal(t, "page(9)", Page(9).String())
}
