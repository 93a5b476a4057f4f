package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Game     GameConfig     `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig Postgres 配置
// DSN 为空时回退到 DATABASE_URL 环境变量
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// GameConfig 游戏配置
type GameConfig struct {
	Rounds        int    `yaml:"rounds"`         // 每局回合数（单词数）
	Countdown     int    `yaml:"countdown"`      // 开局倒计时（秒）
	RoundInterval int    `yaml:"round_interval"` // 回合之间的间隔（秒）
	CleanupDelay  int    `yaml:"cleanup_delay"`  // 游戏结束后会话保留时间（秒）
	WordCategory  string `yaml:"word_category"`  // 单词分类过滤，空为不过滤
}

// RoundsPerGame 返回每局回合数
func (c *GameConfig) RoundsPerGame() int {
	return c.Rounds
}

// CountdownDuration 返回开局倒计时时长
func (c *GameConfig) CountdownDuration() time.Duration {
	return time.Duration(c.Countdown) * time.Second
}

// RoundIntervalDuration 返回回合间隔时长
func (c *GameConfig) RoundIntervalDuration() time.Duration {
	return time.Duration(c.RoundInterval) * time.Second
}

// CleanupDelayDuration 返回会话保留时长
func (c *GameConfig) CleanupDelayDuration() time.Duration {
	return time.Duration(c.CleanupDelay) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults 填充缺省值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1780
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv("DATABASE_URL")
	}
	if c.Game.Rounds == 0 {
		c.Game.Rounds = 5
	}
	if c.Game.Countdown == 0 {
		c.Game.Countdown = 3
	}
	if c.Game.RoundInterval == 0 {
		c.Game.RoundInterval = 3
	}
	if c.Game.CleanupDelay == 0 {
		c.Game.CleanupDelay = 60
	}
}
