package activity

import (
	"context"
	"strings"
)

// DefaultChannel is applied to events emitted without an explicit channel.
const DefaultChannel = "registry"

// Emitter fans registry events out to hooks, filling in the channel when a
// call site leaves it empty. An emitter without hooks is a no-op.
type Emitter struct {
	hooks   Hooks
	channel string
}

// NewEmitter constructs an emitter over the given hooks. Nil hooks are
// dropped; an empty channel falls back to DefaultChannel.
func NewEmitter(hooks Hooks, channel string) *Emitter {
	ch := strings.TrimSpace(channel)
	if ch == "" {
		ch = DefaultChannel
	}
	kept := make(Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			kept = append(kept, hook)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	return &Emitter{hooks: kept, channel: ch}
}

// Enabled reports whether any hook would receive an emission.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit forwards the event to all hooks, applying the default channel when
// missing.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}
