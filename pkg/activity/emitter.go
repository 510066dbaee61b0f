package activity

import (
	"context"
	"strings"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "style"

// Config controls activity emission.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter sends events to a fixed set of hooks when enabled, stamping the
// configured channel on events that carry none. A nil Emitter is disabled.
type Emitter struct {
	hooks   Hooks
	channel string
}

// NewEmitter constructs an emitter. It stays disabled when cfg.Enabled is
// false or no non-nil hook is given.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	e := &Emitter{channel: strings.TrimSpace(cfg.Channel)}
	if e.channel == "" {
		e.channel = DefaultChannel
	}
	if cfg.Enabled {
		e.hooks = hooks.Compact()
	}
	return e
}

// Enabled reports whether Emit reaches any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit forwards event to the hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}
