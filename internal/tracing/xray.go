// Package tracing wraps roster runs in AWS X-Ray segments.
package tracing

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/aws/aws-xray-sdk-go/xraylog"
	"github.com/sirupsen/logrus"
)

// Config contains X-Ray configuration.
type Config struct {
	ServiceName string
	Enabled     bool
	DaemonAddr  string
	Version     string
}

// Logger adapter for X-Ray SDK.
type xrayLoggerAdapter struct {
	logger *logrus.Logger
}

func (l *xrayLoggerAdapter) Log(level xraylog.LogLevel, msg fmt.Stringer) {
	switch level {
	case xraylog.LogLevelDebug:
		l.logger.Debug(msg.String())
	case xraylog.LogLevelInfo:
		l.logger.Info(msg.String())
	case xraylog.LogLevelWarn:
		l.logger.Warn(msg.String())
	case xraylog.LogLevelError:
		l.logger.Error(msg.String())
	}
}

// Tracer starts segments when tracing is enabled and does nothing otherwise.
// The zero value and a nil *Tracer are disabled.
type Tracer struct {
	enabled bool
	service string
}

// Initialize configures the X-Ray SDK and returns a tracer.
func Initialize(cfg Config, logger *logrus.Logger) (*Tracer, error) {
	if !cfg.Enabled {
		return &Tracer{}, nil
	}
	if cfg.ServiceName == "" {
		return nil, fmt.Errorf("tracing service name is required")
	}

	if logger != nil {
		xray.SetLogger(&xrayLoggerAdapter{logger: logger})
	}
	if err := xray.Configure(xray.Config{
		DaemonAddr:     cfg.DaemonAddr,
		ServiceVersion: cfg.Version,
	}); err != nil {
		return nil, fmt.Errorf("failed to configure X-Ray: %w", err)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"daemon_addr":  cfg.DaemonAddr,
			"service_name": cfg.ServiceName,
		}).Info("AWS X-Ray initialized")
	}
	return &Tracer{enabled: true, service: cfg.ServiceName}, nil
}

// Enabled reports whether segments are recorded.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// StartRun opens the top-level segment for a roster run. The returned
// function closes it, recording err when non-nil.
func (t *Tracer) StartRun(ctx context.Context) (context.Context, func(error)) {
	if !t.Enabled() {
		return ctx, func(error) {}
	}
	ctx, seg := xray.BeginSegment(ctx, t.service)
	return ctx, seg.Close
}

// StartPhase opens a subsegment of the current run.
func (t *Tracer) StartPhase(ctx context.Context, name string) (context.Context, func(error)) {
	if !t.Enabled() || xray.GetSegment(ctx) == nil {
		return ctx, func(error) {}
	}
	ctx, seg := xray.BeginSubsegment(ctx, name)
	return ctx, seg.Close
}

// AddAnnotation adds an indexed annotation to the current segment.
func AddAnnotation(ctx context.Context, key string, value interface{}) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddAnnotation(key, value)
	}
}

// AddMetadata adds metadata to the current segment.
func AddMetadata(ctx context.Context, key string, value interface{}) {
	if seg := xray.GetSegment(ctx); seg != nil {
		_ = seg.AddMetadata(key, value)
	}
}
