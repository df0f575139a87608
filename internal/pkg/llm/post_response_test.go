package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedPosts_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"twitter\":{\"tweet\":\"hello world\",\"thread\":[]},\"linkedin\":{\"post\":\"a longer post\"}}\n```"

	posts, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello world", posts.Twitter.Tweet)
	assert.Equal(t, "a longer post", posts.LinkedIn.Post)
	assert.Empty(t, posts.Twitter.Thread)
}

func TestParseGeneratedPosts_LinkedInBareString(t *testing.T) {
	raw := `{"twitter":{"tweet":"t"},"linkedin":"plain string post"}`

	posts, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)
	assert.Equal(t, "plain string post", posts.LinkedIn.Post)
}

func TestParseGeneratedPosts_MissingFields(t *testing.T) {
	cases := []string{
		`{"twitter":{"tweet":""},"linkedin":{"post":"p"}}`,
		`{"twitter":{"tweet":"t"},"linkedin":{"post":""}}`,
		`{}`,
	}
	for _, raw := range cases {
		_, err := ParseGeneratedPosts(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseGeneratedPosts_InvalidJSON(t *testing.T) {
	_, err := ParseGeneratedPosts("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestParseGeneratedPosts_NormalizesTweet(t *testing.T) {
	raw := `{"twitter":{"tweet":"line one\n\nline   two\r\nline three","thread":["a\nb"]},"linkedin":{"post":"p"}}`

	posts, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)
	assert.Equal(t, "line one line two line three", posts.Twitter.Tweet)
	assert.Equal(t, "a b", posts.Twitter.Thread[0])
}

func TestParseGeneratedPosts_NormalizesLinkedIn(t *testing.T) {
	raw := `{"twitter":{"tweet":"t"},"linkedin":{"post":"para one\n\n\npara two \n para three"}}`

	posts, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)
	assert.Equal(t, "para one\npara two\npara three", posts.LinkedIn.Post)
}

func TestParseGeneratedPosts_NormalizationIdempotent(t *testing.T) {
	raw := `{"twitter":{"tweet":"messy\n\n  tweet","thread":["a\nb"]},"linkedin":{"post":"para one\n\npara two"}}`

	first, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)

	// 已归一化的文本再过一遍解析应逐字段不变
	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	second, err := ParseGeneratedPosts(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseGeneratedPosts_TruncatesLongTweet(t *testing.T) {
	long := strings.Repeat("字", 300)
	raw := `{"twitter":{"tweet":"` + long + `"},"linkedin":{"post":"p"}}`

	posts, err := ParseGeneratedPosts(raw)
	require.NoError(t, err)
	assert.Equal(t, 280, len([]rune(posts.Twitter.Tweet)))
}

func TestTruncateRunes_MultibyteBoundary(t *testing.T) {
	got := truncateRunes(strings.Repeat("字", 10), 5)
	assert.Equal(t, strings.Repeat("字", 5), got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "abc", truncateRunes("abc", 5))
}
