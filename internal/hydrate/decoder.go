// Package hydrate decodes loosely typed declaration maps into typed structs
// with mapstructure, reading field names from json tags so one set of tags
// serves decoding, schemas and serialisation.
package hydrate

import (
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"
)

// Context identifies the payload being decoded.
type Context struct {
	Owner  string
	Source string
}

func (c Context) label() string {
	if c.Source == "" {
		return c.Owner
	}
	return c.Owner + " (" + c.Source + ")"
}

// PreHook rewrites or validates the payload before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook validates the decoded value.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts declaration payloads into T.
type Decoder[T any] struct {
	preHooks    []PreHook
	postHooks   []PostHook[T]
	decodeHooks []mapstructure.DecodeHookFunc
	errorUnused bool
}

// WithPreHook runs hook over the payload before decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook runs hook over the decoded value.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDecodeHook adds a mapstructure hook applied to every value decoded.
func WithDecodeHook[T any](hook mapstructure.DecodeHookFunc) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.decodeHooks = append(d.decodeHooks, hook)
	}
}

// WithDisallowUnknownFields rejects payload keys that T does not declare.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.errorUnused = true
	}
}

// NewDecoder builds a decoder from opts.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode runs the pre-hooks over a copy of payload, decodes it into T and
// runs the post-hooks over the result. The caller's map is never modified.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var result T
	if payload == nil {
		return result, fmt.Errorf("hydrate: payload is nil for %s", ctx.label())
	}

	current := maps.Clone(payload)
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return result, fmt.Errorf("hydrate: pre-hook for %s: %w", ctx.label(), err)
		}
		if next != nil {
			current = next
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &result,
		ErrorUnused: d.errorUnused,
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(d.decodeHooks...),
	})
	if err != nil {
		return result, fmt.Errorf("hydrate: configure decoder for %s: %w", ctx.label(), err)
	}
	if err := decoder.Decode(current); err != nil {
		var zero T
		return zero, fmt.Errorf("hydrate: decode %s: %w", ctx.label(), err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			var zero T
			return zero, fmt.Errorf("hydrate: post-hook for %s: %w", ctx.label(), err)
		}
	}
	return result, nil
}
