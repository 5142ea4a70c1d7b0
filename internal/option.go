package internal

import (
	"github.com/starford/timewarp/internal/engine"
	"github.com/starford/timewarp/internal/photos"
)

// Mode selects what a run does with the selected assets.
type Mode int

const (
	// ModeWarp applies the requested operation to each asset.
	ModeWarp Mode = iota
	// ModeInspect prints each asset's date/time/timezone without changes.
	ModeInspect
	// ModeCompare diffs each asset against its file's embedded metadata.
	ModeCompare
)

// Request is everything one invocation asks for.
type Request struct {
	Mode      Mode
	Operation engine.Operation
	Album     string // compare mode: add differing assets to this album
}

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	request Request
	channel photos.Channel
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRequest sets what this invocation should do.
func WithRequest(req Request) Option {
	return func(a *application) {
		a.request = req
	}
}

// WithChannel overrides the Photos automation channel, mainly for tests.
func WithChannel(ch photos.Channel) Option {
	return func(a *application) {
		a.channel = ch
	}
}
