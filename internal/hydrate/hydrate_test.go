package hydrate

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

type slots struct {
	Color   *string  `json:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

func TestDecodeAppliesHooksInOrder(t *testing.T) {
	var calls []string
	decoder := NewDecoder[slots](
		WithPreHook[slots](func(_ Context, payload map[string]any) (map[string]any, error) {
			calls = append(calls, "pre")
			payload["opacity"] = 0.5
			return payload, nil
		}),
		WithPostHook[slots](func(_ Context, value *slots) error {
			calls = append(calls, "post")
			if value.Opacity == nil {
				return errors.New("opacity missing")
			}
			return nil
		}),
	)

	got, err := decoder.Decode(Context{Owner: "button"}, map[string]any{"color": "red"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Color == nil || *got.Color != "red" {
		t.Fatalf("expected color red, got %v", got.Color)
	}
	if got.Opacity == nil || *got.Opacity != 0.5 {
		t.Fatalf("expected opacity from pre-hook, got %v", got.Opacity)
	}
	if strings.Join(calls, ",") != "pre,post" {
		t.Fatalf("unexpected hook order: %v", calls)
	}
}

func TestDecodeDoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"color": "red"}
	decoder := NewDecoder[slots](WithPreHook[slots](func(_ Context, p map[string]any) (map[string]any, error) {
		delete(p, "color")
		return p, nil
	}))
	if _, err := decoder.Decode(Context{Owner: "button"}, payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["color"] != "red" {
		t.Fatalf("payload mutated: %v", payload)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	decoder := NewDecoder[slots](WithDisallowUnknownFields[slots]())
	_, err := decoder.Decode(Context{Owner: "label", Source: "apply"}, map[string]any{"colour": "red"})
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "label (apply)") {
		t.Fatalf("expected context in error, got %v", err)
	}
}

func TestDecodePreHookError(t *testing.T) {
	sentinel := errors.New("boom")
	decoder := NewDecoder[slots](WithPreHook[slots](func(Context, map[string]any) (map[string]any, error) {
		return nil, sentinel
	}))
	_, err := decoder.Decode(Context{Owner: "x"}, map[string]any{})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestDecodeNilPayload(t *testing.T) {
	if _, err := NewDecoder[slots]().Decode(Context{Owner: "x"}, nil); err == nil {
		t.Fatal("expected error for nil payload")
	}
}

func TestDecodeHookConvertsValues(t *testing.T) {
	trimPx := func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
			return data, nil
		}
		return strconv.ParseFloat(strings.TrimSuffix(data.(string), "px"), 64)
	}
	decoder := NewDecoder[slots](WithDecodeHook[slots](trimPx))

	got, err := decoder.Decode(Context{Owner: "x"}, map[string]any{"opacity": "1px"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Opacity == nil || *got.Opacity != 1 {
		t.Fatalf("expected opacity 1, got %v", got.Opacity)
	}
}
