package consts

// 平台标识
const (
	PlatformTwitter  = "twitter"
	PlatformLinkedIn = "linkedin"
)

// 语气
const (
	ToneProfessional  = "professional"
	ToneCasual        = "casual"
	ToneMotivational  = "motivational"
	ToneFunny         = "funny"
	ToneControversial = "controversial"
)

// TweetMaxLength Twitter 单条推文长度上限
const TweetMaxLength = 280

// DefaultMonthlyLimit Twitter 免费档月度发文配额
const DefaultMonthlyLimit = 500

// QuotaWarnThreshold 剩余配额低于该值时告警
const QuotaWarnThreshold = 50
