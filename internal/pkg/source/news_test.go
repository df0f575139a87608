package source

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateArticleText(t *testing.T) {
	short := "a short article"
	assert.Equal(t, short, truncateArticleText(short))

	// 多字节字符不能被截成半个
	long := strings.Repeat("发", articleTextBudget+100)
	got := truncateArticleText(long)
	assert.Equal(t, articleTextBudget, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
