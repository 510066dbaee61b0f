package state

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	style "github.com/goliatone/go-style"
	"github.com/goliatone/go-style/pkg/activity"
)

var (
	ErrETagMismatch  = errors.New("state: etag mismatch")
	ErrThemeNotFound = errors.New("state: theme not found")
)

// Variables is the snapshot type persisted for one namespace of a theme:
// logical variable names mapped to their values.
type Variables map[string]string

// Ref identifies one persisted snapshot: one namespace of one theme.
type Ref struct {
	Theme string
	Scope style.VariableScope
}

// Identifier returns the canonical storage key for r.
func (r Ref) Identifier() (string, error) {
	theme := strings.TrimSpace(r.Theme)
	if theme == "" {
		return "", fmt.Errorf("state: theme is required")
	}
	if strings.Contains(theme, "/") {
		return "", fmt.Errorf("state: theme %q must not contain '/'", theme)
	}
	switch r.Scope {
	case style.ScopeGlobal, style.ScopeScoped:
		return fmt.Sprintf("theme/%s/%s", theme, r.Scope), nil
	default:
		return "", fmt.Errorf("state: unsupported scope %q", r.Scope)
	}
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one snapshot for a single reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Mutator edits a loaded snapshot in place.
type Mutator[T any] func(*T) error

// Resolver moves themes between a Store and styles.
type Resolver struct {
	Store   Store[Variables]
	Emitter *activity.Emitter
	Actor   activity.Actor
}

var themeScopes = []style.VariableScope{style.ScopeGlobal, style.ScopeScoped}

// Apply writes both namespaces of theme into s with SetVariable. Existing
// entries with other names are kept. It returns the number of variables
// written, or ErrThemeNotFound when neither namespace is stored.
func (r Resolver) Apply(ctx context.Context, s *style.Style, theme string) (int, error) {
	if r.Store == nil {
		return 0, fmt.Errorf("state: store is required")
	}
	if s == nil {
		return 0, fmt.Errorf("state: style is required")
	}

	written := 0
	var applied []string
	var snapshotID string
	for _, scope := range themeScopes {
		ref := Ref{Theme: theme, Scope: scope}
		snapshot, meta, ok, err := r.Store.Load(ctx, ref)
		if err != nil {
			return written, fmt.Errorf("state: load theme %q scope %q: %w", theme, scope, err)
		}
		if !ok {
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(snapshot)) {
			s.SetVariable(name, snapshot[name], scope.Scoped())
			written++
		}
		applied = append(applied, scope.String())
		if snapshotID == "" {
			snapshotID = meta.SnapshotID
		}
	}
	if len(applied) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}

	err := r.Emitter.Emit(ctx, activity.BuildVariablesAppliedEvent(activity.ThemeEventInput{
		Actor:      r.Actor,
		Owner:      s.Label(),
		Theme:      theme,
		Scopes:     applied,
		Variables:  written,
		SnapshotID: snapshotID,
	}))
	return written, err
}

// Capture saves the variables s declares locally as theme, one snapshot per
// non-empty namespace.
func (r Resolver) Capture(ctx context.Context, s *style.Style, theme string, meta Meta) error {
	if r.Store == nil {
		return fmt.Errorf("state: store is required")
	}
	if s == nil {
		return fmt.Errorf("state: style is required")
	}
	for _, scope := range themeScopes {
		snapshot := Variables(s.Variables(scope.Scoped()))
		if len(snapshot) == 0 {
			continue
		}
		ref := Ref{Theme: theme, Scope: scope}
		if _, err := r.Store.Save(ctx, ref, snapshot, meta); err != nil {
			return fmt.Errorf("state: save theme %q scope %q: %w", theme, scope, err)
		}
	}
	return nil
}

// Mutate loads one snapshot, applies fn and saves the result. When meta
// carries an ETag it must match the stored one.
func (r Resolver) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator[Variables]) (Variables, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("state: store is required")
	}
	if _, err := ref.Identifier(); err != nil {
		return nil, Meta{}, err
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("state: mutator is required")
	}

	snapshot, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load theme %q scope %q: %w", ref.Theme, ref.Scope, err)
	}
	if !ok {
		snapshot = Variables{}
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&snapshot); err != nil {
		return nil, loadedMeta, err
	}

	savedMeta, err := r.Store.Save(ctx, ref, snapshot, mergeMeta(loadedMeta, meta))
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("state: save theme %q scope %q: %w", ref.Theme, ref.Scope, err)
	}
	return snapshot, savedMeta, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
