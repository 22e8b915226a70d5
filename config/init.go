package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		cfg := defaultConfig()

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err == nil {
			if err = v.Unmarshal(cfg); err != nil {
				panic(fmt.Sprintf("配置文件解析失败: %v", err))
			}
		}

		if err := envconfig.Process("CAS", cfg); err != nil {
			panic(fmt.Sprintf("环境变量解析失败: %v", err))
		}

		instance = cfg
	})
}

func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}

func defaultConfig() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		JWT: JWT{
			AccessSecret: "club-activity-system",
			AccessExpire: 7 * 24 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
		Scoring: Scoring{
			WeightEvent:   0.40,
			WeightSession: 0.24,
			WeightStaff:   0.90,
			PenaltyCost:   2.0,
			MaxBaseScore:  100,
		},
	}
}

// DefaultForTest 返回一份默认配置，供测试经 SetForTest 注入
func DefaultForTest() *Config {
	return defaultConfig()
}

// SetForTest 测试专用，直接替换全局配置
func SetForTest(cfg *Config) {
	once.Do(func() {})
	instance = cfg
}
