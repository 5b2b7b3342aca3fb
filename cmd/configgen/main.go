package main

import (
	"flag"

	"github.com/danmuck/nbtarray/internal/config"
	"github.com/danmuck/nbtarray/internal/logging"
	"github.com/danmuck/nbtarray/internal/observability"
)

const defaultPath = "cmd/nbtarray/config.toml"

func main() {
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	log := observability.InitLogger("configgen", logging.DefaultConfig(logging.ProfileRuntime))

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("validate config")
		}
		log.Info().
			Str("path", *input).
			Int64("max_length", cfg.Limits.MaxLength).
			Int64("max_bytes", cfg.Limits.MaxBytes).
			Int("chunk_bytes", cfg.Limits.ChunkBytes).
			Msg("validated config")
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal().Err(err).Msg("write config template")
	}
	log.Info().Str("path", *output).Msg("wrote config template")
}
