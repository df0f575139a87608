package source

import (
	"strings"
)

// 静态排除词表，命中即丢弃该条素材
var (
	politicalKeywords = []string{
		"trump", "biden", "president", "election", "congress", "senate", "republican", "democrat",
		"political", "politics", "government", "white house", "administration", "campaign", "vote", "voting",
		"geopolitical", "diplomatic", "sanctions", "ukraine", "russia", "china policy", "venezuela",
		"nato", "military", "war", "defense", "pentagon", "state department",
	}
	religiousKeywords = []string{
		"bible", "church", "prayer", "faith", "god", "jesus", "christian", "islam", "muslim",
		"hindu", "buddhist", "religion",
	}
	gamingKeywords = []string{
		"playstation", "ps5", "xbox", "nintendo", "gaming", "game console", "video game", "gamer",
	}
	entertainmentKeywords = []string{
		"sports", "football", "basketball", "celebrity", "movie", "film",
	}
)

// Excluded 根据标题+正文判断素材是否命中排除词表
func Excluded(title, body string) bool {
	combined := strings.ToLower(title) + " " + strings.ToLower(body)

	for _, group := range [][]string{politicalKeywords, religiousKeywords, gamingKeywords, entertainmentKeywords} {
		for _, keyword := range group {
			if strings.Contains(combined, keyword) {
				return true
			}
		}
	}
	return false
}
