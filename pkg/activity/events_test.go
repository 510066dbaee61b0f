package activity

import (
	"context"
	"testing"
)

func TestBuildPropertyUpdatedEvent(t *testing.T) {
	evt := BuildPropertyUpdatedEvent(PropertyEventInput{
		Actor:    Actor{ActorID: " a "},
		Owner:    "button.style",
		Property: "color",
		OldValue: "red",
		NewValue: "blue",
	})

	if evt.Verb != VerbPropertyUpdated || evt.ObjectType != ObjectProperty {
		t.Fatalf("unexpected verb/type: %+v", evt)
	}
	if evt.ObjectID != "button.style" || evt.ActorID != "a" {
		t.Fatalf("unexpected ids: %+v", evt)
	}
	if evt.Metadata["property"] != "color" || evt.Metadata["old_value"] != "red" || evt.Metadata["new_value"] != "blue" {
		t.Fatalf("unexpected metadata: %+v", evt.Metadata)
	}
}

func TestBuildPropertyUpdatedEventOmitsNilValues(t *testing.T) {
	evt := BuildPropertyUpdatedEvent(PropertyEventInput{Property: "color", NewValue: "blue"})
	if _, ok := evt.Metadata["old_value"]; ok {
		t.Fatalf("expected old_value omitted: %+v", evt.Metadata)
	}
	if evt.ObjectID != ObjectProperty {
		t.Fatalf("expected object type fallback for empty owner, got %q", evt.ObjectID)
	}
}

func TestBuildVariablesAppliedEvent(t *testing.T) {
	evt := BuildVariablesAppliedEvent(ThemeEventInput{
		Owner:      "root.style",
		Theme:      "dark",
		Scopes:     []string{"global", "scoped"},
		Variables:  3,
		SnapshotID: "theme/dark/global",
	})
	if evt.Verb != VerbVariablesApplied || evt.ObjectType != ObjectTheme {
		t.Fatalf("unexpected verb/type: %+v", evt)
	}
	if evt.Metadata["theme"] != "dark" || evt.Metadata["variables"] != 3 {
		t.Fatalf("unexpected metadata: %+v", evt.Metadata)
	}
	if scopes, _ := evt.Metadata["scopes"].([]string); len(scopes) != 2 {
		t.Fatalf("unexpected scopes: %+v", evt.Metadata["scopes"])
	}
}

func TestActorContextRoundTrip(t *testing.T) {
	ctx := ContextWithActor(context.Background(), Actor{ActorID: "a1"})
	if got := ActorFromContext(ctx); got.ActorID != "a1" {
		t.Fatalf("unexpected actor %+v", got)
	}
	if got := ActorFromContext(context.Background()); got != (Actor{}) {
		t.Fatalf("expected zero actor, got %+v", got)
	}
}
