package content

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	id        string
	published bool
	category  Ref
	media     MediaType
	at        time.Time
}

func (r fakeRecord) RecordID() string    { return r.id }
func (r fakeRecord) Published() bool     { return r.published }
func (r fakeRecord) CategoryRef() Ref    { return r.category }
func (r fakeRecord) Media() MediaType    { return r.media }
func (r fakeRecord) SortTime() time.Time { return r.at }

func TestParseSelection(t *testing.T) {
	assert.True(t, ParseSelection("", FamilyBlog).IsAll())
	assert.True(t, ParseSelection("ALL", FamilyGallery).IsAll())

	media, ok := ParseSelection("videos", FamilyGallery).Media()
	require.True(t, ok)
	assert.Equal(t, MediaVideo, media)

	media, ok = ParseSelection("Images", FamilyGallery).Media()
	require.True(t, ok)
	assert.Equal(t, MediaImage, media)

	// 博客没有媒体伪分类，按分类 ID 处理
	id, ok := ParseSelection("videos", FamilyBlog).CategoryID()
	require.True(t, ok)
	assert.Equal(t, "videos", id)

	id, ok = ParseSelection(" 6f1c ", FamilyBlog).CategoryID()
	require.True(t, ok)
	assert.Equal(t, "6f1c", id)
}

func TestSelectionString(t *testing.T) {
	assert.Equal(t, "all", All().String())
	assert.Equal(t, "videos", OfMedia(MediaVideo).String())
	assert.Equal(t, "images", OfMedia(MediaImage).String())
	assert.Equal(t, "abc", InCategory("abc").String())
	assert.True(t, InCategory("  ").IsAll())
}

func TestVisibleFiltersDraftsAndOrders(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	records := []fakeRecord{
		{id: "a", published: true, at: base},
		{id: "b", published: false, at: base.Add(3 * time.Hour)},
		{id: "c", published: true, at: base.Add(2 * time.Hour)},
		{id: "d", published: true, at: base.Add(2 * time.Hour)},
	}

	got := Visible(records, All())

	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "d", "a"}, ids(got))
	assert.Equal(t, "a", records[0].id, "input must stay untouched")
}

func TestVisibleByCategory(t *testing.T) {
	now := time.Now()
	records := []fakeRecord{
		{id: "a", published: true, category: RefTo("cat-1"), at: now},
		{id: "b", published: true, category: Uncategorized, at: now},
		{id: "c", published: true, category: RefTo("cat-2"), at: now},
	}

	got := Visible(records, InCategory("cat-1"))
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestVisibleVideosIgnoresCategory(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	records := []fakeRecord{
		{id: "v1", published: true, media: MediaVideo, category: RefTo("events"), at: base},
		{id: "i1", published: true, media: MediaImage, category: RefTo("events"), at: base.Add(time.Hour)},
		{id: "v2", published: true, media: MediaVideo, at: base.Add(2 * time.Hour)},
		{id: "v3", published: false, media: MediaVideo, at: base.Add(3 * time.Hour)},
	}

	got := Visible(records, ParseSelection("videos", FamilyGallery))
	assert.Equal(t, []string{"v2", "v1"}, ids(got))
	for _, r := range got {
		assert.Equal(t, MediaVideo, r.Media())
	}
}

func TestPreview(t *testing.T) {
	records := []fakeRecord{{id: "1"}, {id: "2"}, {id: "3"}, {id: "4"}}
	assert.Len(t, Preview(records, PreviewLimit), 3)
	assert.Len(t, Preview(records[:2], PreviewLimit), 2)
	assert.Len(t, Preview(records, 0), 4)
}

func TestParseMediaType(t *testing.T) {
	m, ok := ParseMediaType("")
	assert.True(t, ok)
	assert.Equal(t, MediaImage, m)

	m, ok = ParseMediaType("VIDEO")
	assert.True(t, ok)
	assert.Equal(t, MediaVideo, m)

	_, ok = ParseMediaType("audio")
	assert.False(t, ok)

	assert.Equal(t, MediaVideo, MediaTypeFromMIME("video/mp4"))
	assert.Equal(t, MediaImage, MediaTypeFromMIME("image/png"))
}

func TestRefRoundTrip(t *testing.T) {
	var r Ref
	require.NoError(t, r.Scan(nil))
	assert.False(t, r.Valid())

	require.NoError(t, r.Scan([]byte("cat-9")))
	assert.True(t, r.Is("cat-9"))

	value, err := Uncategorized.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	data, err := json.Marshal(struct {
		A Ref `json:"a"`
		B Ref `json:"b"`
	}{A: RefTo("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(data))

	var decoded struct {
		A Ref `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null}`), &decoded))
	assert.False(t, decoded.A.Valid())
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags("  "))
	assert.Equal(t, []string{"go", "security"}, ParseTags("go, ,security,"))
	assert.Equal(t, []string{"a"}, CleanTags([]string{" a ", ""}))
}

func ids(records []fakeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.id)
	}
	return out
}
