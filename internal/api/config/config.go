package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从 ./configs/config.yaml 加载配置，环境变量 RECIPEHUB_* 可覆盖
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("RECIPEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 3600)
	v.SetDefault("database.slow_threshold_ms", 200)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("cache.driver", "redis")
	v.SetDefault("cache.best_recipes_ttl", 600)
	v.SetDefault("cache.breaker.enable", true)
	v.SetDefault("cache.breaker.max_requests", 3)
	v.SetDefault("cache.breaker.interval", 60)
	v.SetDefault("cache.breaker.timeout", 30)
	v.SetDefault("cache.breaker.min_requests", 10)
	v.SetDefault("cache.breaker.failure_ratio", 0.6)
	v.SetDefault("jwt.issuer", "RecipeHub")
	v.SetDefault("cron.leaderboard_rebuild", "0 */30 * * * *")
	v.SetDefault("kafka_moderation_consumer.topic", "recipe-moderation")
	v.SetDefault("kafka_moderation_consumer.group_id", "recipehub-moderation")
	v.SetDefault("elastic.recipe_index", "recipes")
}
