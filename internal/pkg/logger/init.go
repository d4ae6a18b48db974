package logger

import (
	"RecipeHub/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

// LogWriter gin 访问日志的输出目标
var LogWriter io.Writer = os.Stdout

var accessToken string

// InitLogger 初始化全局 slog，配置了 Logstash 地址时同时上报远端
func InitLogger(cfg config.LogstashConfig) {
	opts := &log.HandlerOptions{Level: log.LevelInfo}
	var handler log.Handler = log.NewJSONHandler(os.Stdout, opts)

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err != nil {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		} else {
			remote := log.NewJSONHandler(conn, opts).WithAttrs([]log.Attr{
				log.String("target_index", cfg.Index),
				log.String("log_token", cfg.Token),
			})
			handler = &TeeHandler{handlers: []log.Handler{handler, &RemoteFilterHandler{next: remote}}}
			LogWriter = io.MultiWriter(os.Stdout, conn)
		}
	}
	accessToken = cfg.Token

	log.SetDefault(log.New(&ContextHandler{handler}))
}
