package viewparams

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"docboard/internal/domain"
)

func TestParseSerialize_RoundTrip(t *testing.T) {
	cases := []Params{
		{Tab: domain.DefaultTab},
		{Tab: domain.TabReview},
		{Tab: domain.TabDocuments, Panel: domain.PanelOrganizations},
		{Tab: domain.TabDashboard, Dashboard: uuid.New()},
		{Tab: domain.TabReview, Document: uuid.New()},
		{Tab: domain.TabAdmin, Panel: domain.PanelApplications, Dashboard: uuid.New(), Document: uuid.New()},
	}

	for _, p := range cases {
		assert.Equal(t, p, Parse(Serialize(p)), "round trip changed %+v", p)
	}
}

func TestSerialize_OmitsDefaults(t *testing.T) {
	values := Serialize(Defaults())
	assert.Empty(t, values)

	values = Serialize(Params{Tab: domain.TabReview})
	assert.Equal(t, "review", values.Get("tab"))
	assert.NotContains(t, values, "panel")
	assert.NotContains(t, values, "dashboard")
	assert.NotContains(t, values, "doc")
}

func TestParse_MalformedValuesFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("tab", "settings")
	values.Set("panel", "profile")
	values.Set("dashboard", "not-a-uuid")
	values.Set("doc", "12345")

	assert.Equal(t, Defaults(), Parse(values))
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("tab", "review")
	values.Set("utm_source", "newsletter")

	p := Parse(values)
	assert.Equal(t, domain.TabReview, p.Tab)
}

func TestParse_Empty(t *testing.T) {
	assert.Equal(t, Defaults(), Parse(url.Values{}))
	assert.Equal(t, Defaults(), Parse(nil))
}
