// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ProcessConfig is the process-wide configuration the cmd/rcengined
// entrypoint assembles, following the teacher's config precedence: CLI
// flags override a config file, which overrides built-in defaults.
type ProcessConfig struct {
	GenesisPath   string
	QueryListen   string
	ExportListen  string
	LogLevel      string
	SkipFlags     SkipFlags
}

// Flag names, shared between pflag registration and viper binding so the
// two never drift apart.
const (
	FlagGenesisPath  = "genesis-path"
	FlagQueryListen  = "query-listen"
	FlagExportListen = "export-listen"
	FlagLogLevel     = "log-level"
	FlagSkipRejectNotEnoughRC = "rc-skip-reject-not-enough-rc"
)

// RegisterFlags declares the CLI flags this package understands on fs,
// matching the teacher's approach of a dedicated flag-registration
// function consumed by both a cli.App and a bare pflag.FlagSet (e.g.
// geth's utils.DatabaseFlags usage pattern).
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagGenesisPath, "", "path to the genesis resource-parameter seed (JSON)")
	fs.String(FlagQueryListen, "", "address to serve the read-only JSON-RPC query surface on; empty disables it")
	fs.String(FlagExportListen, "", "address to serve the websocket export sink on; empty disables it; when query-listen is also set, the sink is served on the query-listen address instead")
	fs.String(FlagLogLevel, "info", "log level: debug, info, warn, error")
	fs.Bool(FlagSkipRejectNotEnoughRC, false, "when true, insufficient-RC transactions are not rejected even in production")
}

// Load builds a ProcessConfig from v, which the caller has already
// populated by binding fs (CLI flags), optionally reading a config file,
// and leaving viper's built-in defaults to fill any gaps — viper's own
// precedence rules implement "flags override file override defaults".
func Load(v *viper.Viper) ProcessConfig {
	flags := DefaultSkipFlags()
	flags.RejectNotEnoughRC = v.GetBool(FlagSkipRejectNotEnoughRC)

	return ProcessConfig{
		GenesisPath:  v.GetString(FlagGenesisPath),
		QueryListen:  v.GetString(FlagQueryListen),
		ExportListen: v.GetString(FlagExportListen),
		LogLevel:     v.GetString(FlagLogLevel),
		SkipFlags:    flags,
	}
}
