// Package logging builds the zap logger used across wbdm.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
)

// Standard field names for structured logging.
const (
	FieldEntityID   = "entity_id"
	FieldRevision   = "revision"
	FieldKind       = "kind"
	FieldOperations = "operations"
	FieldRepo       = "repo"
	FieldPath       = "path"
)

// New builds a logger from cfg: JSON lines on stdout when cfg.JSON is set,
// a console encoder on stderr otherwise.
func New(cfg config.LogConfig) (*zap.SugaredLogger, error) {
	level := zap.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	if cfg.JSON {
		// JSON structured output for machine consumption
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		zcfg.OutputPaths = []string{"stdout"}
		zcfg.ErrorOutputPaths = []string{"stderr"}
		logger, err := zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}
		return logger.Sugar(), nil
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core).Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
