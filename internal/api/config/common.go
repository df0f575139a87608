package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Image     ImageConfig     `mapstructure:"image"`
	Twitter   TwitterConfig   `mapstructure:"twitter"`
	LinkedIn  LinkedInConfig  `mapstructure:"linkedin"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置，未配置时媒体归档功能自动关闭
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LLMConfig 大模型配置，支持多个 OpenAI 兼容 Provider
type LLMConfig struct {
	DefaultProvider string                    `mapstructure:"default_provider"`
	DefaultTone     string                    `mapstructure:"default_tone"`
	Providers       map[string]ProviderConfig `mapstructure:"providers"`
	PromptsPath     PromptPathConfig          `mapstructure:"prompts_path"`
}

type ProviderConfig struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}

type PromptPathConfig struct {
	PostGenerate     string `mapstructure:"post_generate"`
	ContentRelevance string `mapstructure:"content_relevance"`
}

// SourcesConfig 内容源配置，缺少凭据的源在抓取时跳过
type SourcesConfig struct {
	News      NewsConfig    `mapstructure:"news"`
	YouTube   YouTubeConfig `mapstructure:"youtube"`
	Reddit    RedditConfig  `mapstructure:"reddit"`
	LLMFilter bool          `mapstructure:"llm_filter"`
}

type NewsConfig struct {
	URL    string `mapstructure:"url"`
	ApiKey string `mapstructure:"api_key"`
}

type YouTubeConfig struct {
	URL    string `mapstructure:"url"`
	ApiKey string `mapstructure:"api_key"`
}

type RedditConfig struct {
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user_agent"`
}

// ImageConfig 图片搜索配置
type ImageConfig struct {
	Unsplash UnsplashConfig `mapstructure:"unsplash"`
	Google   GoogleConfig   `mapstructure:"google"`
}

type UnsplashConfig struct {
	URL       string `mapstructure:"url"`
	AccessKey string `mapstructure:"access_key"`
}

type GoogleConfig struct {
	URL    string `mapstructure:"url"`
	ApiKey string `mapstructure:"api_key"`
	CX     string `mapstructure:"cx"`
}

// TwitterConfig Twitter 凭据与月度配额
type TwitterConfig struct {
	URL          string `mapstructure:"url"`
	ApiKey       string `mapstructure:"api_key"`
	ApiSecret    string `mapstructure:"api_secret"`
	AccessToken  string `mapstructure:"access_token"`
	AccessSecret string `mapstructure:"access_secret"`
	MonthlyLimit int    `mapstructure:"monthly_limit"`
}

// LinkedInConfig LinkedIn 凭据，token 由外部 OAuth 流程获取
type LinkedInConfig struct {
	URL         string `mapstructure:"url"`
	AccessToken string `mapstructure:"access_token"`
	PersonURN   string `mapstructure:"person_urn"`
}

// SchedulerConfig 调度配置
type SchedulerConfig struct {
	Topics          []string `mapstructure:"topics"`
	PostingTimes    []string `mapstructure:"posting_times"`
	Platforms       []string `mapstructure:"platforms"`
	AutoPost        bool     `mapstructure:"auto_post"`
	RequireApproval bool     `mapstructure:"require_approval"`
	TopN            int      `mapstructure:"top_n"`
}
