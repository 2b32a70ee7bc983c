// Package observability provides one-call initialization of tracing and
// logging for Tabular, plus span helpers used by the table profiling driver.
package observability

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	tracer trace.Tracer
	meter  metric.Meter
	logger *zap.Logger

	initOnce sync.Once
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	SamplingRate   float64
	ExporterType   string // "stdout"
	BatchTimeout   time.Duration
	MaxExportBatch int
	MaxQueueSize   int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       zapcore.Level
	Format      string // "json", "console"
	OutputPaths []string
	ErrorPaths  []string
	Development bool
}

// Config contains all observability configuration
type Config struct {
	Tracing TracingConfig
	Logging LoggingConfig
}

// Initialize sets up the observability framework
func Initialize(config Config) error {
	var err error

	initOnce.Do(func() {
		err = initTracing(config.Tracing)
		if err != nil {
			return
		}

		err = initLogging(config.Logging)
		if err != nil {
			return
		}

		meter = otel.Meter(config.Tracing.ServiceName)

		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	})

	return err
}

// GetTracer returns the global tracer
func GetTracer() trace.Tracer {
	return tracer
}

// GetMeter returns the global meter
func GetMeter() metric.Meter {
	return meter
}

// GetLogger returns the global logger
func GetLogger() *zap.Logger {
	return logger
}

// initTracing initializes the tracing provider
func initTracing(config TracingConfig) error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// stdout is the only exporter the library carries; anything heavier is
	// the embedding application's business
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	var sampler sdktrace.Sampler
	if config.SamplingRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else if config.SamplingRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(config.SamplingRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(config.BatchTimeout),
			sdktrace.WithMaxExportBatchSize(config.MaxExportBatch),
			sdktrace.WithMaxQueueSize(config.MaxQueueSize),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(config.ServiceName)

	return nil
}

// initLogging initializes the structured logging
func initLogging(config LoggingConfig) error {
	logConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(config.Level),
		Development: config.Development,
		Encoding:    config.Format,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      config.OutputPaths,
		ErrorOutputPaths: config.ErrorPaths,
	}

	if len(logConfig.OutputPaths) == 0 {
		logConfig.OutputPaths = []string{"stdout"}
	}
	if len(logConfig.ErrorOutputPaths) == 0 {
		logConfig.ErrorOutputPaths = []string{"stderr"}
	}

	var err error
	logger, err = logConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}

// DefaultConfig returns a default observability configuration
func DefaultConfig() Config {
	return Config{
		Tracing: TracingConfig{
			ServiceName:    "tabular",
			ServiceVersion: "0.1.0",
			Environment:    getEnv("ENVIRONMENT", "development"),
			SamplingRate:   0.1,
			ExporterType:   getEnv("TRACING_EXPORTER", "stdout"),
			BatchTimeout:   5 * time.Second,
			MaxExportBatch: 512,
			MaxQueueSize:   2048,
		},
		Logging: LoggingConfig{
			Level:       getLogLevel(getEnv("LOG_LEVEL", "info")),
			Format:      getEnv("LOG_FORMAT", "json"),
			OutputPaths: []string{"stdout"},
			ErrorPaths:  []string{"stderr"},
			Development: getEnv("ENVIRONMENT", "development") == "development",
		},
	}
}

// getEnv gets environment variable with default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getLogLevel converts string to zap log level
func getLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Shutdown gracefully shuts down all observability components
func Shutdown(ctx context.Context) error {
	var errs []error

	if tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
		if err := tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer: %w", err))
		}
	}

	if logger != nil {
		if err := logger.Sync(); err != nil {
			// Ignore sync errors for stdout/stderr; common in tests and
			// when output is redirected (uber-go/zap#328)
			errStr := err.Error()
			if !strings.Contains(errStr, "bad file descriptor") &&
				!strings.Contains(errStr, "invalid argument") &&
				!strings.Contains(errStr, "/dev/stdout") &&
				!strings.Contains(errStr, "/dev/stderr") {
				errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}
