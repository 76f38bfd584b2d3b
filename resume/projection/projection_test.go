package projection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildyourcv/resume/model"
)

func TestHiddenWorkIsOmitted(t *testing.T) {
	r := model.DefaultTemplate()
	require.NotEmpty(t, r.Work)

	out := Project(r, []model.SectionID{model.SectionEducation, model.SectionSkills})
	assert.Nil(t, out.Work)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"work"`)
}

func TestProjectionHoldsOnlyBasicsAndSections(t *testing.T) {
	r := model.DefaultTemplate()
	r.Schema = model.String("https://jsonresume.org/schema")
	r.Meta = &model.Meta{Version: model.String("v1")}

	out := Project(r, nil)
	assert.Nil(t, out.Schema)
	assert.Nil(t, out.Meta)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Len(t, keys, 1)
	assert.Contains(t, keys, "basics")
}

func TestVisibleEmptySectionIsOmitted(t *testing.T) {
	r := model.DefaultTemplate()
	r.Work = []model.Work{}

	out := Project(r, model.AllSections)
	assert.Nil(t, out.Work)
	assert.Nil(t, out.Awards)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"work"`)
	assert.NotContains(t, string(raw), `"awards"`)
}

func TestSummaryClearedWhenHidden(t *testing.T) {
	r := model.DefaultTemplate()
	out := Project(r, []model.SectionID{model.SectionWork})
	assert.Nil(t, out.Basics.Summary)
	assert.Equal(t, r.Basics.Name, out.Basics.Name)
	assert.Equal(t, r.Basics.Email, out.Basics.Email)

	out = Project(r, []model.SectionID{model.SectionSummary})
	assert.Equal(t, r.Basics.Summary, out.Basics.Summary)
}

func TestUnknownIdentifiersIgnored(t *testing.T) {
	r := model.DefaultTemplate()
	out := Project(r, []model.SectionID{"volunteer", "bogus", model.SectionSkills})
	assert.Equal(t, r.Skills, out.Skills)
	assert.Nil(t, out.Work)
	assert.Nil(t, out.Volunteer)
}

func TestProjectIsPure(t *testing.T) {
	r := model.DefaultTemplate()
	before := model.Clone(r)

	a := Project(r, model.AllSections)
	b := Project(r, model.AllSections)
	assert.Equal(t, a, b)
	assert.Equal(t, before, r)

	ab, err := model.Encode(a)
	require.NoError(t, err)
	bb, err := model.Encode(b)
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
}

func TestProjectSharesNothing(t *testing.T) {
	r := model.DefaultTemplate()
	out := Project(r, model.AllSections)

	out.Work[0].Highlights[0] = "changed"
	*out.Basics.Summary = "changed"
	out.Basics.Profiles[0].URL = "changed"

	assert.Equal(t, model.DefaultTemplate(), r)
}

func TestSections(t *testing.T) {
	r := model.DefaultTemplate()
	got := Sections(r, []model.SectionID{model.SectionAwards, model.SectionSkills, model.SectionSummary})
	assert.Equal(t, []model.SectionID{model.SectionSummary, model.SectionSkills}, got)
}
