package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text handler, dev-friendly
	BackendZap Backend = "zap" // JSON via slog-zap, sampled
)

type Config struct {
	// Metadata stamped onto every record
	Service    string
	Version    string
	InstanceID string

	// Output control
	Level   slog.Level
	Env     Env
	Backend Backend // default: zap for prod, std for dev
	Debug   bool

	// Zap sampling
	SampleInitial    int
	SampleThereafter int

	// AddSource in dev
	AddSource bool
}
