// Package registry provides typed access to a Windows-style registry: keys
// addressed by ROOT\sub\path, typed values and the predefined roots.
//
// A Registry binds an engine (the host registry on Windows, or an in-process
// one) to a character width and a logger. Keys opened through it must be
// closed by their owner:
//
//	r := registry.Memory()
//	k, err := r.CreateOrOpen(`HKEY_CURRENT_USER\Software\Example`, types.KEY_ALL_ACCESS)
//	if err != nil {
//		return err
//	}
//	defer k.Close()
//	if err := k.SetString("greeting", "world"); err != nil {
//		return err
//	}
//
// Failures of the engine surface as *types.NativeError; use errors.Is with
// the types sentinels and status codes to branch on them.
package registry

import (
	"errors"
	"log/slog"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/internal/engine/memreg"
)

// Width selects how text crosses the engine boundary.
type Width = codec.Width

const (
	// Wide is UTF-16LE, the default.
	Wide = codec.Wide
	// Narrow is the single-byte ANSI code page.
	Narrow = codec.Narrow
)

// ErrNoHost is returned by Host on platforms without a host registry.
var ErrNoHost = errors.New("registry: no host registry on this platform")

// Registry is the entry point for opening keys. It is safe for concurrent
// use; Keys are not.
type Registry struct {
	eng   engine.Engine
	width codec.Width
	log   *slog.Logger
	bufs  *bufferPool
}

// Option configures a Registry.
type Option func(*Registry)

// WithWidth sets the character width used for names and string data.
func WithWidth(w Width) Option {
	return func(r *Registry) { r.width = w }
}

// WithLogger sets the logger for debug diagnostics. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Registry backed by eng.
func New(eng engine.Engine, opts ...Option) *Registry {
	r := &Registry{
		eng:   eng,
		width: codec.Wide,
		log:   slog.New(slog.DiscardHandler),
		bufs:  newBufferPool(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Memory returns a Registry backed by a fresh in-process engine whose
// environment is the process environment.
func Memory(opts ...Option) *Registry {
	return New(memreg.New(), opts...)
}

// Width reports the width r was configured with.
func (r *Registry) Width() Width { return r.width }
