package monitoring

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the CLI logger. verbose enables debug output and the
// development encoder.
func NewZapLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return l, nil
}

// UseZap routes Logf, Warnf and Debugf through l. The returned function
// restores the previous loggers.
func UseZap(l *zap.Logger) (restore func()) {
	prevLog, prevWarn, prevDebug := Logf, Warnf, Debugf

	s := l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	Logf = s.Infof
	Warnf = s.Warnf
	Debugf = s.Debugf

	return func() {
		_ = l.Sync()
		Logf, Warnf, Debugf = prevLog, prevWarn, prevDebug
	}
}
