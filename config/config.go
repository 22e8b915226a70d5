package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host    string `envconfig:"HOST"`
	Port    string `envconfig:"PORT"`
	Prefix  string `envconfig:"PREFIX"`
	Mode    Mode   `envconfig:"MODE"`
	Mysql   Mysql
	Redis   Redis
	JWT     JWT
	Log     Log     `mapstructure:"Log"`
	Sentry  Sentry  `mapstructure:"Sentry"`
	Scoring Scoring `mapstructure:"Scoring"`
	Webhook Webhook `mapstructure:"Webhook"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `mapstructure:"host" envconfig:"HOST"`
	Port     string `mapstructure:"port" envconfig:"PORT"`
	Password string `mapstructure:"password" envconfig:"PASSWORD"`
	DB       int    `mapstructure:"db" envconfig:"DB"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn              string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	TracesSampleRate float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE" mapstructure:"traces_sample_rate"`
}

// Scoring 活跃度计算的权重配置，默认值满足校方公布的评分表
type Scoring struct {
	WeightEvent   float64 `envconfig:"SCORING_WEIGHT_EVENT" mapstructure:"weight_event"`     // 活动出席率权重（百分制）
	WeightSession float64 `envconfig:"SCORING_WEIGHT_SESSION" mapstructure:"weight_session"` // 例会出席率权重（百分制）
	WeightStaff   float64 `envconfig:"SCORING_WEIGHT_STAFF" mapstructure:"weight_staff"`     // 干事表现分权重（百分制）
	PenaltyCost   float64 `envconfig:"SCORING_PENALTY_COST" mapstructure:"penalty_cost"`     // 每一点惩罚分扣除的综合分
	MaxBaseScore  float64 `envconfig:"SCORING_MAX_BASE_SCORE" mapstructure:"max_base_score"` // 基础分满分
}

type Webhook struct {
	ReportLockedURL string `envconfig:"WEBHOOK_REPORT_LOCKED_URL" mapstructure:"report_locked_url"` // 报告锁定后通知地址，留空则不通知
}
