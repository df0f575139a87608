package llm

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// GeneratedPosts 一次生成调用的结构化产物，校验通过后不可再修改
type GeneratedPosts struct {
	Twitter  TwitterPosts `json:"twitter"`
	LinkedIn LinkedInPost `json:"linkedin"`
}

type TwitterPosts struct {
	Tweet  string   `json:"tweet"`
	Thread []string `json:"thread"`
}

type LinkedInPost struct {
	Post string `json:"post"`
}

// UnmarshalJSON 兼容 linkedin 字段为裸字符串或 {"post": ...} 两种形态
func (p *LinkedInPost) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Post = s
		return nil
	}

	var obj struct {
		Post string `json:"post"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Post = obj.Post
	return nil
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{2,}`)
	anyNewlineRe = regexp.MustCompile(`\n+`)
)

// ParseGeneratedPosts 清理代码块包裹、反序列化、校验必填字段并归一化空白
func ParseGeneratedPosts(s string) (*GeneratedPosts, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var posts GeneratedPosts
	if err := json.Unmarshal([]byte(cleaned), &posts); err != nil {
		return nil, err
	}

	if posts.Twitter.Tweet == "" || posts.LinkedIn.Post == "" {
		return nil, errors.New("invalid response structure: missing tweet or linkedin post")
	}

	posts.Twitter.Tweet = truncateRunes(normalizeInline(posts.Twitter.Tweet), 280)
	for i, tweet := range posts.Twitter.Thread {
		posts.Twitter.Thread[i] = truncateRunes(normalizeInline(tweet), 280)
	}
	posts.LinkedIn.Post = normalizeLongform(posts.LinkedIn.Post)

	return &posts, nil
}

// normalizeInline 推文压成单行：所有换行折成空格
func normalizeInline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = anyNewlineRe.ReplaceAllString(s, " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeLongform 长文去掉空行段落：连续换行折成单个换行
func normalizeLongform(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\n ", "\n")
	s = strings.ReplaceAll(s, " \n", "\n")
	return strings.TrimSpace(s)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
