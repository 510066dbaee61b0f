package activity

import (
	"context"
	"strings"
	"time"
)

// Verbs and object types emitted by the style package and its theme resolver.
const (
	VerbPropertyUpdated  = "style.property.updated"
	VerbPropertiesReset  = "style.properties.reset"
	VerbVariablesApplied = "style.variables.applied"

	ObjectStyle    = "style"
	ObjectProperty = "style.property"
	ObjectTheme    = "style.theme"
)

// Actor identifies who triggered a change. All fields are optional.
type Actor struct {
	ActorID  string
	UserID   string
	TenantID string
}

// PropertyEventInput describes a change to one property slot.
type PropertyEventInput struct {
	Actor
	Owner      string
	Property   string
	OldValue   any
	NewValue   any
	Channel    string
	OccurredAt time.Time
}

// BuildPropertyUpdatedEvent constructs the event for a changed property slot.
func BuildPropertyUpdatedEvent(input PropertyEventInput) Event {
	metadata := map[string]any{"property": input.Property}
	if input.OldValue != nil {
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata["new_value"] = input.NewValue
	}
	return buildEvent(VerbPropertyUpdated, ObjectProperty, input.Owner, input.Actor, input.Channel, metadata, input.OccurredAt)
}

// BuildPropertiesResetEvent constructs the event for clearing every slot of a
// style. cleared is the number of slots that were set.
func BuildPropertiesResetEvent(owner string, cleared int, actor Actor) Event {
	metadata := map[string]any{"cleared": cleared}
	return buildEvent(VerbPropertiesReset, ObjectStyle, owner, actor, "", metadata, time.Time{})
}

// ThemeEventInput describes a theme snapshot written into a style.
type ThemeEventInput struct {
	Actor
	Owner      string
	Theme      string
	Scopes     []string
	Variables  int
	SnapshotID string
	Channel    string
	OccurredAt time.Time
}

// BuildVariablesAppliedEvent constructs the event for a theme application.
func BuildVariablesAppliedEvent(input ThemeEventInput) Event {
	metadata := map[string]any{
		"theme":     input.Theme,
		"variables": input.Variables,
	}
	if len(input.Scopes) > 0 {
		metadata["scopes"] = append([]string(nil), input.Scopes...)
	}
	if input.SnapshotID != "" {
		metadata["snapshot_id"] = input.SnapshotID
	}
	return buildEvent(VerbVariablesApplied, ObjectTheme, input.Owner, input.Actor, input.Channel, metadata, input.OccurredAt)
}

func buildEvent(verb, objectType, owner string, actor Actor, channel string, metadata map[string]any, at time.Time) Event {
	objectID := strings.TrimSpace(owner)
	if objectID == "" {
		objectID = objectType
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(actor.ActorID),
		UserID:     strings.TrimSpace(actor.UserID),
		TenantID:   strings.TrimSpace(actor.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(channel),
		Metadata:   metadata,
		OccurredAt: at,
	}
}

type actorKey struct{}

// ContextWithActor attaches actor to ctx so emitted events carry it.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by ContextWithActor.
func ActorFromContext(ctx context.Context) Actor {
	if ctx == nil {
		return Actor{}
	}
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}
