package filters

import (
	"testing"

	"github.com/spyne-social/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiscussionFilter(t *testing.T) {
	f := ParseDiscussionFilter(" cats, ,dogs,", "  Hello ")
	assert.Equal(t, []string{"cats", "dogs"}, f.Hashtags)
	assert.Equal(t, "Hello", f.Text)
	assert.False(t, f.IsEmpty())

	assert.True(t, ParseDiscussionFilter("", "").IsEmpty())
}

func TestMatchesHashtags(t *testing.T) {
	cases := []struct {
		hashtags string
		tags     []string
		want     bool
	}{
		{"#cats #dogs", []string{"cats"}, true},
		{"cats", []string{"cats"}, true},
		{"#catsup", []string{"cats"}, false},
		{"bobcats", []string{"cats"}, false},
		{"#intro", []string{"#intro"}, true},
		{"#intro,#go", []string{"#go"}, true},
		{"#catsup", []string{"dogs", "catsup"}, true},
		{"", []string{"cats"}, false},
		{"anything", nil, true},
		{"a.b", []string{"a.b"}, true},
		{"axb", []string{"a.b"}, false},
		{"#café", []string{"caf"}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MatchesHashtags(c.hashtags, c.tags), "%q in %q", c.tags, c.hashtags)
	}
}

func TestApplyCombinesStagesWithAnd(t *testing.T) {
	discussions := []models.Discussion{
		{ID: 1, Text: "Cats are great", Hashtags: "#cats"},
		{ID: 2, Text: "ketchup talk", Hashtags: "#catsup"},
		{ID: 3, Text: "dogs and CATS", Hashtags: "#dogs #cats"},
		{ID: 1, Text: "Cats are great", Hashtags: "#cats"},
	}

	got := ParseDiscussionFilter("cats", "").Apply(append([]models.Discussion(nil), discussions...))
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)

	got = ParseDiscussionFilter("cats", "dogs").Apply(append([]models.Discussion(nil), discussions...))
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)

	got = ParseDiscussionFilter("", "KETCHUP").Apply(append([]models.Discussion(nil), discussions...))
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, LikePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, LikePattern(`a\b`))
}
