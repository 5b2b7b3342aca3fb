package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/danmuck/nbtarray/internal/config"
	"github.com/danmuck/nbtarray/internal/observability"
	"github.com/danmuck/nbtarray/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath  string
	kind        string
	in          string
	compression string
	metrics     bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to a TOML config (defaults when empty)")
	fs.StringVar(&c.kind, "kind", "", "array kind: byte|int|long")
	fs.StringVar(&c.in, "in", "-", "input path, - for stdin")
	fs.StringVar(&c.compression, "compression", "none", "stream compression: none|gzip|zlib")
	fs.BoolVar(&c.metrics, "metrics", false, "log codec counters before exit")
}

// env is the per-invocation runtime built from flags and config.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	codec   *protocol.Codec
	reg     *prometheus.Registry
	metrics bool
}

func newEnv(flags commonFlags, stderr io.Writer) (*env, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	lc := cfg.Logging()
	lc.Out = stderr
	logger := observability.InitLogger("nbtarray", lc)
	if flags.configPath != "" {
		logger.Debug().Str("path", flags.configPath).Msg("loaded config")
	}

	reg := prometheus.NewRegistry()
	m := observability.NewCodecMetrics()
	if err := m.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	codec := protocol.NewCodec(
		protocol.WithLimits(cfg.ProtocolLimits()),
		protocol.WithLogger(logger),
		protocol.WithRecorder(m),
	)
	return &env{cfg: cfg, log: logger, codec: codec, reg: reg, metrics: flags.metrics}, nil
}

func (e *env) kind(raw string) (protocol.Kind, error) {
	if raw == "" {
		return 0, fmt.Errorf("-kind is required")
	}
	return protocol.ParseKind(raw)
}

// flushMetrics logs counter samples when -metrics is set.
func (e *env) flushMetrics() {
	if !e.metrics {
		return
	}
	samples, err := observability.Snapshot(e.reg)
	if err != nil {
		e.log.Warn().Err(err).Msg("gather metrics")
		return
	}
	for _, s := range samples {
		ev := e.log.Info().Str("metric", s.Name).Float64("value", s.Value)
		for k, v := range s.Labels {
			ev = ev.Str(k, v)
		}
		ev.Msg("codec metric")
	}
}
