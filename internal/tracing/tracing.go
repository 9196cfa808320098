package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/logger"
)

type config interface {
	Enabled() bool
	ServiceName() string
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// Init installs a global jaeger tracer. Agent settings come from the
// standard JAEGER_* environment variables.
func Init(config config) (io.Closer, error) {
	if !config.Enabled() {
		logger.Info("tracing disabled")
		return nopCloser{}, nil
	}

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "reading jaeger env")
	}
	cfg.ServiceName = config.ServiceName()
	if cfg.Sampler.Type == "" {
		cfg.Sampler.Type = jaeger.SamplerTypeConst
		cfg.Sampler.Param = 1
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.NullLogger))
	if err != nil {
		return nil, errors.Wrap(err, "creating tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	logger.Info("tracing enabled", zap.String("service", cfg.ServiceName))
	return closer, nil
}
