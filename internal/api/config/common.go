package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Store  StoreConfig  `mapstructure:"store"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Social SocialConfig `mapstructure:"social"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 账号库（MySQL）配置
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

// MongoConfig 托管文档存储配置；URL 为空时仅启用本地存储
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	MainBucket string `mapstructure:"main_bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// LLMConfig 生成模型配置
// GeminiKey 为空时回退到 GEMINI_API_KEY 环境变量；两者都缺失则生成请求直接报错。
type LLMConfig struct {
	GeminiKey  string `mapstructure:"gemini_key"`
	TextModel  string `mapstructure:"text_model"`
	ImageModel string `mapstructure:"image_model"`

	// 评分走 OpenAI 兼容端点
	ScoreURL   string `mapstructure:"score_url"`
	ScoreModel string `mapstructure:"score_model"`
	ScoreKey   string `mapstructure:"score_key"`
}

// StoreConfig 领域记录持久化配置
type StoreConfig struct {
	LocalDir string `mapstructure:"local_dir"`
}

// AuthConfig 鉴权配置
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// SocialConfig 社交平台接口配置
type SocialConfig struct {
	GraphBaseURL string `mapstructure:"graph_base_url"`
}
