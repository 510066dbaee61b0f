package style

import (
	"fmt"
	"weak"

	"github.com/goliatone/go-style/pkg/activity"
	"github.com/google/uuid"
)

// Style holds the style state of a single view: the typed property slots
// written by the cascade and the custom variable table used for var()
// resolution.
type Style struct {
	Properties Properties

	id        string
	variables map[string]string
	owner     func() View
	cfg       styleConfig
	emitter   *activity.Emitter
}

// New creates the style for owner. Only a weak reference to owner is kept, so
// the style never extends the lifetime of the view that owns it.
func New[N any, P interface {
	*N
	View
}](owner P, opts ...Option) *Style {
	cfg := applyOptions(opts)
	s := &Style{
		id:        uuid.NewString(),
		variables: make(map[string]string),
		cfg:       cfg,
		emitter:   activity.NewEmitter(cfg.activityHooks, cfg.activity),
	}
	for _, err := range cfg.optionErrors {
		s.tracer().Write(TraceEntry{Message: err.Error(), Category: CategoryStyle, Severity: SeverityWarn})
	}
	if ptr := (*N)(owner); ptr != nil {
		ref := weak.Make(ptr)
		s.owner = func() View {
			if live := ref.Value(); live != nil {
				return P(live)
			}
			return nil
		}
	}
	return s
}

// ID returns the identifier assigned to the style at construction.
func (s *Style) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// View returns the owning view, or nil once it has been reclaimed.
func (s *Style) View() View {
	if s == nil || s.owner == nil {
		return nil
	}
	return s.owner()
}

// String labels the style after its owner. An empty string is returned, and a
// warning traced, when the owner is gone.
func (s *Style) String() string {
	view := s.View()
	if view == nil {
		s.tracer().Write(TraceEntry{
			Message:  `String() of Style cannot execute correctly because the owning view has been reclaimed`,
			Category: CategoryAnimation,
			Severity: SeverityWarn,
		})
		return ""
	}
	return fmt.Sprintf("%s.style", view)
}

// Label names the owner for traces and events. Unlike String it never warns,
// falling back to the style id once the owner is gone.
func (s *Style) Label() string {
	if view := s.View(); view != nil {
		return view.String()
	}
	return "style/" + s.ID()
}

// PropertyBag holds free-form string properties that have no typed slot.
type PropertyBag map[string]string

// NewPropertyBag returns an empty bag owned by the caller. Bags are never
// shared between styles.
func (s *Style) NewPropertyBag() PropertyBag {
	return PropertyBag{}
}
