package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Muazzam0101/neurolearn-amep/pkg/config"
	"github.com/Muazzam0101/neurolearn-amep/pkg/middleware/requestid"
)

// New builds the application logger from LOG_LEVEL and LOG_FORMAT.
// Unknown levels fall back to info rather than failing startup.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Log.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			level = zap.NewAtomicLevelAt(parsed)
		}
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Env != config.EnvProduction {
		zapCfg.Development = true
		zapCfg.Sampling = nil
	}
	zapCfg.Level = level

	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// GinMiddleware logs one line per request with the propagated request ID.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}

		l.Info("http_request", fields...)
	}
}
