package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsAndClonesMetadata(t *testing.T) {
	meta := map[string]any{"property": "color"}
	evt := Event{
		Verb:       " style.property.updated ",
		ActorID:    " actor ",
		ObjectType: " style.property ",
		ObjectID:   " button.style ",
		Channel:    " style ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != VerbPropertyUpdated || got.ObjectType != ObjectProperty || got.ObjectID != "button.style" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.Channel != "style" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["property"] = "changed"
	if evt.Metadata["property"] != "color" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyDropsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	if err := (Hooks{capture}).Notify(context.Background(), Event{Verb: "x"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Snapshot()) != 0 {
		t.Fatalf("expected no events captured")
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	boom1 := errors.New("boom1")
	boom2 := errors.New("boom2")
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, _ Event) error {
			ctxSeen = ctx != nil
			return nil
		}),
		capture,
		HookFunc(func(context.Context, Event) error { return boom1 }),
		nil,
		HookFunc(func(context.Context, Event) error { return boom2 }),
	}

	//nolint:staticcheck // nil context falls back to Background
	err := hooks.Notify(nil, Event{Verb: VerbPropertiesReset, ObjectType: ObjectStyle, ObjectID: "label.style"})
	if !errors.Is(err, boom1) || !errors.Is(err, boom2) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if got := capture.Verbs(); len(got) != 1 || got[0] != VerbPropertiesReset {
		t.Fatalf("unexpected captured verbs: %v", got)
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}
	event := BuildPropertiesResetEvent("label.style", 2, Actor{})

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Snapshot()) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true})
	if err := enabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	events := capture.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(events))
	}
	if events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel applied, got %q", events[0].Channel)
	}
}

func TestEmitterPreservesExplicitChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "themes"})
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := emitter.Emit(context.Background(), BuildPropertyUpdatedEvent(PropertyEventInput{
		Owner:      "button.style",
		Property:   "opacity",
		NewValue:   0.5,
		Channel:    "custom",
		OccurredAt: at,
	}))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := capture.Snapshot()[0]
	if got.Channel != "custom" {
		t.Fatalf("expected explicit channel preserved, got %q", got.Channel)
	}
	if !got.OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at preserved, got %v", got.OccurredAt)
	}
}

func TestHooksCompactDropsNil(t *testing.T) {
	capture := &CaptureHook{}
	if got := (Hooks{nil, nil}).Compact(); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := (Hooks{nil, capture}).Compact(); len(got) != 1 {
		t.Fatalf("expected one hook, got %v", got)
	}
}

func TestEventSummary(t *testing.T) {
	event := BuildPropertyUpdatedEvent(PropertyEventInput{Owner: "label", Property: "color", NewValue: "red"})
	if got := event.Summary(); got != "style.property.updated label property=color" {
		t.Fatalf("unexpected summary %q", got)
	}
	reset := BuildPropertiesResetEvent("label", 2, Actor{})
	if got := reset.Summary(); got != "style.properties.reset label" {
		t.Fatalf("unexpected summary %q", got)
	}
}
