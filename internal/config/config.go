package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // 没有系统时区数据库的环境也能加载 digest.timezone

	"gopkg.in/yaml.v3"
)

// 配置校验错误。
var (
	ErrNoFeeds         = errors.New("至少需要配置一个订阅源")
	ErrFeedMissingName = errors.New("订阅源缺少 name")
	ErrFeedMissingURL  = errors.New("订阅源缺少 url")
	ErrInvalidTopN     = errors.New("digest.top_n 必须大于 0")
	ErrMissingOutput   = errors.New("digest.output 不能为空")
)

// Config 是 newsdigest 的顶层配置结构。
type Config struct {
	Feeds  []FeedConfig `yaml:"feeds"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Digest DigestConfig `yaml:"digest"`
	Filter FilterConfig `yaml:"filter"`
	Log    LogConfig    `yaml:"log"`
}

// FeedConfig 单个订阅源。
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FetchConfig 抓取配置。
type FetchConfig struct {
	// TimeoutSec 单次请求超时（秒），超时等同于该源无条目。
	TimeoutSec int `yaml:"timeout_sec"`
	// MaxItems 每个源最多读取的条目数。
	MaxItems int `yaml:"max_items"`
	// Concurrency 同时抓取的源数量，1 表示严格顺序抓取。
	Concurrency int `yaml:"concurrency"`
	// RatePerSec 每秒最多发起的请求数，0 表示不限制。
	RatePerSec float64 `yaml:"rate_per_sec"`
	UserAgent  string  `yaml:"user_agent"`
}

// DigestConfig 摘要生成配置。
type DigestConfig struct {
	TopN      int    `yaml:"top_n"`
	Timezone  string `yaml:"timezone"`
	ZoneLabel string `yaml:"zone_label"`
	Output    string `yaml:"output"`
}

// FilterConfig 标题屏蔽词。默认不启用。
type FilterConfig struct {
	Enabled    bool     `yaml:"enabled"`
	BlockWords []string `yaml:"block_words"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// DefaultFeeds 内置的四个财经订阅源。
var DefaultFeeds = []FeedConfig{
	{Name: "Yahoo Finance - Top Stories", URL: "https://feeds.finance.yahoo.com/rss/2.0/headline?s=yhoo&region=US&lang=en-US"},
	{Name: "CNBC - Top News", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
	{Name: "MarketWatch - Top Stories", URL: "https://feeds.marketwatch.com/marketwatch/topstories/"},
	{Name: "AP Business", URL: "https://apnews.com/hub/business?rss=1"},
}

// DefaultBlockWords 默认屏蔽词列表，仅在 filter.enabled 为 true 时生效。
var DefaultBlockWords = []string{"election", "politics", "trump", "biden", "campaign"}

// Default 返回不依赖配置文件的内置配置。
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load 读取 YAML 配置文件并返回 Config。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置文件 %s 无效: %w", path, err)
	}
	return cfg, nil
}

// setDefaults 为未设置的配置项填充默认值。
func setDefaults(cfg *Config) {
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = append([]FeedConfig(nil), DefaultFeeds...)
	}
	for i := range cfg.Feeds {
		cfg.Feeds[i].Name = strings.TrimSpace(cfg.Feeds[i].Name)
		cfg.Feeds[i].URL = strings.TrimSpace(cfg.Feeds[i].URL)
	}

	if cfg.Fetch.TimeoutSec == 0 {
		cfg.Fetch.TimeoutSec = 15
	}
	if cfg.Fetch.MaxItems == 0 {
		cfg.Fetch.MaxItems = 15
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = 4
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "newsdigest/1.0 RSS Reader"
	}

	if cfg.Digest.TopN == 0 {
		cfg.Digest.TopN = 3
	}
	if cfg.Digest.Timezone == "" {
		cfg.Digest.Timezone = "America/Los_Angeles"
	}
	if cfg.Digest.ZoneLabel == "" {
		cfg.Digest.ZoneLabel = "PT"
	}
	if cfg.Digest.Output == "" {
		cfg.Digest.Output = "news.json"
	}

	if cfg.Filter.BlockWords == nil {
		cfg.Filter.BlockWords = append([]string(nil), DefaultBlockWords...)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate 检查配置是否可用。
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return ErrNoFeeds
	}
	for i, f := range c.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feeds[%d]: %w", i, ErrFeedMissingName)
		}
		if f.URL == "" {
			return fmt.Errorf("feeds[%d] %s: %w", i, f.Name, ErrFeedMissingURL)
		}
	}
	if c.Digest.TopN < 0 {
		return ErrInvalidTopN
	}
	if strings.TrimSpace(c.Digest.Output) == "" {
		return ErrMissingOutput
	}
	if _, err := c.Digest.Location(); err != nil {
		return fmt.Errorf("digest.timezone %q: %w", c.Digest.Timezone, err)
	}
	return nil
}

// FeedNames 按配置顺序返回所有订阅源名称。
func (c *Config) FeedNames() []string {
	names := make([]string, len(c.Feeds))
	for i, f := range c.Feeds {
		names[i] = f.Name
	}
	return names
}

// Timeout 返回单次请求超时。
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// Location 加载展示用时区。
func (d DigestConfig) Location() (*time.Location, error) {
	return time.LoadLocation(d.Timezone)
}

// ActiveBlockWords 返回实际生效的屏蔽词；未启用时返回 nil。
func (f FilterConfig) ActiveBlockWords() []string {
	if !f.Enabled {
		return nil
	}
	return f.BlockWords
}
