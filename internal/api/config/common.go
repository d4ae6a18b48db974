package config

// Config 配置主体
type Config struct {
	Server                  ServerConfig            `mapstructure:"server"`
	DB                      DBConfig                `mapstructure:"database"`
	Redis                   RedisConfig             `mapstructure:"redis"`
	Cache                   CacheConfig             `mapstructure:"cache"`
	JWT                     JWTConfig               `mapstructure:"jwt"`
	MinIO                   MinIOConfig             `mapstructure:"minio"`
	Elastic                 ElasticConfig           `mapstructure:"elastic"`
	Mongo                   MongoConfig             `mapstructure:"mongo"`
	Mail                    MailConfig              `mapstructure:"mail"`
	Logstash                LogstashConfig          `mapstructure:"logstash"`
	Cron                    CronConfig              `mapstructure:"cron"`
	Kafka                   KafkaConfig             `mapstructure:"kafka"`
	KafkaModerationConsumer KafkaModerationConsumer `mapstructure:"kafka_moderation_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN           string `mapstructure:"dsn"`
	MaxIdle       int    `mapstructure:"max_idle"`
	MaxOpen       int    `mapstructure:"max_open"`
	MaxLifetime   int    `mapstructure:"max_lifetime"`
	SlowThreshold int    `mapstructure:"slow_threshold_ms"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// CacheConfig 计数与缓存层配置
type CacheConfig struct {
	// Driver redis | memory
	Driver         string        `mapstructure:"driver"`
	BestRecipesTTL int           `mapstructure:"best_recipes_ttl"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig 熔断器配置，时间单位为秒
type BreakerConfig struct {
	Enable       bool    `mapstructure:"enable"`
	MaxRequests  uint32  `mapstructure:"max_requests"`
	Interval     int     `mapstructure:"interval"`
	Timeout      int     `mapstructure:"timeout"`
	MinRequests  uint32  `mapstructure:"min_requests"`
	FailureRatio float64 `mapstructure:"failure_ratio"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address     string `mapstructure:"address"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	RecipeIndex string `mapstructure:"recipe_index"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MailConfig SMTP 配置
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type CronConfig struct {
	LeaderboardRebuild string `mapstructure:"leaderboard_rebuild"`
}

type KafkaConfig struct {
	Brokers     []string       `mapstructure:"brokers"`
	SendTimeout int            `mapstructure:"send_timeout"`
	Sasl        SaslConfig     `mapstructure:"sasl"`
	Consumer    ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaModerationConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
