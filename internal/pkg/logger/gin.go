package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id,omitempty"`
	Token   string `json:"log_token,omitempty"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
	IP      string `json:"client_ip"`
}

// SetupGin 挂载 JSON 访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/metrics", "/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			traceID, _ := p.Keys[TraceIDKey].(string)
			if traceID == "" && p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}
			line, _ := json.Marshal(accessLine{
				Time:    p.TimeStamp.Format(time.RFC3339),
				Level:   "INFO",
				Msg:     "GIN_ACCESS",
				TraceID: traceID,
				Token:   accessToken,
				Method:  p.Method,
				Path:    p.Path,
				Status:  p.StatusCode,
				Latency: p.Latency.String(),
				IP:      p.ClientIP,
			})
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
