package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phyten/csi/internal/config"
)

// Provide builds the diagnostic logger. Level "off" yields a no-op logger so
// stdout stays limited to search results. A nil w means stderr. Every entry
// carries a run_id that is unique per invocation.
func Provide(settings config.LogSettings, w io.Writer) (*zap.Logger, error) {
	normalized, err := config.NormalizeLog(settings)
	if err != nil {
		return nil, err
	}
	if normalized.Level == "off" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(normalized.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", normalized.Level)
	}
	if w == nil {
		w = os.Stderr
	}
	writer := zapcore.Lock(zapcore.AddSync(w))

	var encoder zapcore.Encoder
	switch normalized.Format {
	case "json":
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core).Named("csi").With(zap.String("run_id", uuid.NewString())), nil
}
