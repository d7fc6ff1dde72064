package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Sites     []SiteConfig    `mapstructure:"sites"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	CookieName  string `mapstructure:"cookie_name"`
	ExpireHours int    `mapstructure:"expire_hours"`
	Secure      bool   `mapstructure:"secure"`
	Domain      string `mapstructure:"domain"`
}

// TTL 会话有效期
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.ExpireHours) * time.Hour
}

type AuthConfig struct {
	AdminEmails []string `mapstructure:"admin_emails"` // 管理员白名单
	Site        string   `mapstructure:"site"`         // admin_users 表所在站点，默认第一个站点
	LoginPath   string   `mapstructure:"login_path"`
}

// SiteConfig 单个抽奖站点（租户）的配置
type SiteConfig struct {
	ID       string         `mapstructure:"id"`
	Name     string         `mapstructure:"name"`
	URL      string         `mapstructure:"url"`
	Color    string         `mapstructure:"color"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Port         string `mapstructure:"port"`
	SSLMode      string `mapstructure:"sslmode"`
	TimeZone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN gorm postgres 连接串
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode, d.TimeZone)
}

// URL golang-migrate 使用的连接 URL
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// StorageConfig 对象存储配置
// driver: s3 (AWS S3 / Cloudflare R2 等兼容服务) | oss (阿里云 OSS)
type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Bucket          string `mapstructure:"bucket"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	Size           string `mapstructure:"size"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Enabled 未配置 API Key 时图片生成直接走占位图
func (o OpenAIConfig) Enabled() bool {
	return o.APIKey != ""
}

type SchedulerConfig struct {
	CloseExpiredInterval time.Duration `mapstructure:"close_expired_interval"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Site 按 ID 查找站点配置
func (c *Config) Site(id string) (SiteConfig, bool) {
	for _, s := range c.Sites {
		if s.ID == id {
			return s, true
		}
	}
	return SiteConfig{}, false
}

// AdminSite 存放管理员账号的站点
func (c *Config) AdminSite() string {
	if c.Auth.Site != "" {
		return c.Auth.Site
	}
	if len(c.Sites) > 0 {
		return c.Sites[0].ID
	}
	return ""
}

// Validate 验证配置，任何站点凭据缺失都直接失败
func (c *Config) Validate() error {
	if c.Session.Secret == "" || c.Session.Secret == "your_super_secret_key" {
		return errors.New("please set a secure session secret")
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("session secret should be at least 32 characters")
	}
	if c.Session.ExpireHours <= 0 {
		return errors.New("session expire_hours must be positive")
	}

	if len(c.Auth.AdminEmails) == 0 {
		return errors.New("auth.admin_emails must list at least one admin")
	}

	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}

	if len(c.Sites) == 0 {
		return errors.New("at least one site must be configured")
	}
	seen := make(map[string]bool, len(c.Sites))
	for _, s := range c.Sites {
		if s.ID == "" {
			return errors.New("site id is required")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate site id %q", s.ID)
		}
		seen[s.ID] = true

		if s.Name == "" {
			return fmt.Errorf("site %s: name is required", s.ID)
		}
		db := s.Database
		if db.Host == "" || db.User == "" || db.DBName == "" {
			return fmt.Errorf("site %s: database configuration is incomplete", s.ID)
		}
		st := s.Storage
		switch st.Driver {
		case "s3", "oss":
		default:
			return fmt.Errorf("site %s: unsupported storage driver %q", s.ID, st.Driver)
		}
		if st.Bucket == "" || st.AccessKeyID == "" || st.AccessKeySecret == "" {
			return fmt.Errorf("site %s: storage credentials are incomplete", s.ID)
		}
		if st.Driver == "oss" && st.Endpoint == "" {
			return fmt.Errorf("site %s: oss storage requires an endpoint", s.ID)
		}
	}

	if !seen[c.AdminSite()] {
		return fmt.Errorf("auth.site %q is not a configured site", c.AdminSite())
	}

	return nil
}

// Load 加载配置
// 顺序: .env -> configs/config[.<env>].yaml -> 环境变量 -> 站点级环境变量覆盖 -> 校验
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "dev" {
		configName = "config." + env
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	// 绑定环境变量 server.port -> SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s, sites: %d", cfg.App.Env, len(cfg.Sites))
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.debug", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "sweeps_session")
	v.SetDefault("session.expire_hours", 12)
	v.SetDefault("session.secure", true)
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("auth.login_path", "/login")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "dall-e-3")
	v.SetDefault("openai.size", "1792x1024")
	v.SetDefault("openai.timeout_seconds", 60)
	v.SetDefault("scheduler.close_expired_interval", "1m")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// applyEnvOverrides 手动覆盖，viper 无法把环境变量绑定到 sites 列表中的元素
func applyEnvOverrides(cfg *Config) {
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}
	if emails := os.Getenv("ADMIN_EMAILS"); emails != "" {
		cfg.Auth.AdminEmails = strings.Split(emails, ",")
	}
	for i, e := range cfg.Auth.AdminEmails {
		cfg.Auth.AdminEmails[i] = strings.ToLower(strings.TrimSpace(e))
	}

	for i := range cfg.Sites {
		s := &cfg.Sites[i]
		prefix := "SITE_" + strings.ToUpper(strings.ReplaceAll(s.ID, "-", "_")) + "_"
		overrideString(&s.Database.Host, prefix+"DB_HOST")
		overrideString(&s.Database.User, prefix+"DB_USER")
		overrideString(&s.Database.Password, prefix+"DB_PASSWORD")
		overrideString(&s.Database.DBName, prefix+"DB_NAME")
		overrideString(&s.Storage.AccessKeyID, prefix+"STORAGE_ACCESS_KEY_ID")
		overrideString(&s.Storage.AccessKeySecret, prefix+"STORAGE_ACCESS_KEY_SECRET")

		if s.Database.Port == "" {
			s.Database.Port = "5432"
		}
		if s.Database.SSLMode == "" {
			s.Database.SSLMode = "require"
		}
		if s.Database.TimeZone == "" {
			s.Database.TimeZone = "UTC"
		}
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
