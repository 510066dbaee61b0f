package style

import "github.com/goliatone/go-style/pkg/activity"

// WithActivityHooks attaches activity hooks notified when property slots
// change through Apply or ResetProperties. Attaching hooks enables emission.
// Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Compact()
	return func(cfg *styleConfig) {
		cfg.activityHooks = normalized
		cfg.activity.Enabled = len(normalized) > 0
	}
}

// WithActivityConfig overrides the emission defaults. An empty channel keeps
// the "style" default.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *styleConfig) {
		if config.Channel == "" {
			config.Channel = cfg.activity.Channel
		}
		cfg.activity = config
	}
}

// ActivityHooks returns a cloned slice of the activity hooks configured on the
// style. The returned slice can be safely mutated by the caller.
func (s *Style) ActivityHooks() activity.Hooks {
	if s == nil {
		return nil
	}
	return s.cfg.activityHooks.Compact()
}
