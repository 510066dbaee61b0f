package style

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-style/internal/hydrate"
	"github.com/goliatone/go-style/layering"
	"github.com/goliatone/go-style/pkg/activity"
)

var (
	// ErrUnknownProperty is returned by Apply for a name with no slot.
	ErrUnknownProperty = errors.New("style: unknown property")
	// ErrInvalidPropertyValue is returned by Apply when a value cannot be
	// stored in its slot.
	ErrInvalidPropertyValue = errors.New("style: invalid property value")
)

// unsetKeyword clears a slot when used as a declaration value.
const unsetKeyword = "unset"

// PropertyChange describes one slot changed by Apply or ResetProperties. Old
// and New are nil for an unset slot.
type PropertyChange struct {
	Name string
	Old  any
	New  any
}

type propertyField struct {
	name  string
	index int
	elem  reflect.Type
	enum  []string
}

var propertyFields = sync.OnceValue(func() []propertyField {
	typ := reflect.TypeOf(Properties{})
	fields := make([]propertyField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		pf := propertyField{name: name, index: i, elem: field.Type.Elem()}
		if enum := field.Tag.Get("enum"); enum != "" {
			pf.enum = strings.Split(enum, ",")
		}
		fields = append(fields, pf)
	}
	return fields
})

var propertyByName = sync.OnceValue(func() map[string]propertyField {
	byName := make(map[string]propertyField)
	for _, field := range propertyFields() {
		byName[field.name] = field
	}
	return byName
})

// PropertyNames lists every property name in declaration order.
func PropertyNames() []string {
	fields := propertyFields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.name
	}
	return names
}

// Get returns the value stored under the property name. The second return
// value is false when the slot is unset or name is unknown.
func (p Properties) Get(name string) (any, bool) {
	field, ok := propertyByName()[name]
	if !ok {
		return nil, false
	}
	slot := reflect.ValueOf(p).Field(field.index)
	if slot.IsNil() {
		return nil, false
	}
	return slot.Elem().Interface(), true
}

// Set returns the names of the slots that hold a value.
func (p Properties) Set() []string {
	value := reflect.ValueOf(p)
	var names []string
	for _, field := range propertyFields() {
		if !value.Field(field.index).IsNil() {
			names = append(names, field.name)
		}
	}
	return names
}

// Apply writes declarations into the property slots. String values go through
// Resolve first, so var() and calc() are expanded with this style's
// variables; the "unset" keyword or a nil value clears a slot. Slots not named
// in decls are kept. Either every declaration is applied or none is.
func (s *Style) Apply(ctx context.Context, decls map[string]any) ([]PropertyChange, error) {
	if len(decls) == 0 {
		return nil, nil
	}

	payload := make(map[string]any, len(decls))
	var cleared []string
	for name, value := range decls {
		if _, ok := propertyByName()[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
		}
		text, isText := value.(string)
		if value == nil || (isText && strings.TrimSpace(text) == unsetKeyword) {
			cleared = append(cleared, name)
			continue
		}
		if !isText {
			payload[name] = value
			continue
		}
		resolved, err := s.resolveValue(name, text)
		if err != nil {
			return nil, fmt.Errorf("style: property %q: %w", name, err)
		}
		payload[name] = resolved
	}

	decoded, err := s.propertyDecoder().Decode(hydrate.Context{Owner: s.Label(), Source: "apply"}, payload)
	if err != nil {
		if !errors.Is(err, ErrInvalidPropertyValue) {
			err = fmt.Errorf("%w: %w", ErrInvalidPropertyValue, err)
		}
		return nil, err
	}

	next := layering.MergeLayers(decoded, s.Properties)
	nextValue := reflect.ValueOf(&next).Elem()
	for _, name := range cleared {
		field := propertyByName()[name]
		nextValue.Field(field.index).SetZero()
	}

	changes := diffProperties(s.Properties, next)
	s.Properties = next
	return changes, s.emitPropertyChanges(ctx, changes)
}

// ResetProperties clears every slot. The variable table is untouched.
func (s *Style) ResetProperties(ctx context.Context) error {
	cleared := len(s.Properties.Set())
	s.Properties = Properties{}
	if cleared == 0 {
		return nil
	}
	return s.emitter.Emit(ctx, activity.BuildPropertiesResetEvent(s.Label(), cleared, activity.ActorFromContext(ctx)))
}

func (s *Style) propertyDecoder() *hydrate.Decoder[Properties] {
	return hydrate.NewDecoder(
		hydrate.WithPreHook[Properties](coerceDeclarations),
		hydrate.WithPostHook[Properties](validateEnums),
		hydrate.WithDisallowUnknownFields[Properties](),
	)
}

// coerceDeclarations converts textual values into the kind their slot holds.
func coerceDeclarations(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	for name, value := range payload {
		field := propertyByName()[name]
		coerced, err := coerceValue(field.elem.Kind(), value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%v: %v", ErrInvalidPropertyValue, name, value, err)
		}
		payload[name] = coerced
	}
	return payload, nil
}

func coerceValue(kind reflect.Kind, value any) (any, error) {
	text, isText := value.(string)
	switch kind {
	case reflect.String:
		if isText {
			return strings.TrimSpace(text), nil
		}
		return fmt.Sprint(value), nil
	case reflect.Float64, reflect.Int:
		if !isText {
			if number, ok := toFloat(value); ok && kind == reflect.Int && number != math.Trunc(number) {
				return nil, fmt.Errorf("%v is not an integer", value)
			}
			return value, nil
		}
		number, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(text), "px"), 64)
		if err != nil {
			return nil, err
		}
		if kind == reflect.Int {
			if number != math.Trunc(number) {
				return nil, fmt.Errorf("%s is not an integer", text)
			}
			return int(number), nil
		}
		return number, nil
	case reflect.Bool:
		if !isText {
			return value, nil
		}
		return strconv.ParseBool(strings.TrimSpace(text))
	default:
		return value, nil
	}
}

func validateEnums(_ hydrate.Context, props *Properties) error {
	value := reflect.ValueOf(props).Elem()
	for _, field := range propertyFields() {
		slot := value.Field(field.index)
		if len(field.enum) == 0 || slot.IsNil() {
			continue
		}
		if got := slot.Elem().String(); !slices.Contains(field.enum, got) {
			return fmt.Errorf("%w: %s=%q, want one of %s", ErrInvalidPropertyValue, field.name, got, strings.Join(field.enum, "|"))
		}
	}
	return nil
}

func diffProperties(before, after Properties) []PropertyChange {
	var changes []PropertyChange
	for _, field := range propertyFields() {
		oldValue, _ := before.Get(field.name)
		newValue, _ := after.Get(field.name)
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		changes = append(changes, PropertyChange{Name: field.name, Old: oldValue, New: newValue})
	}
	return changes
}

func (s *Style) emitPropertyChanges(ctx context.Context, changes []PropertyChange) error {
	if !s.emitter.Enabled() {
		return nil
	}
	actor := activity.ActorFromContext(ctx)
	var errs []error
	for _, change := range changes {
		event := activity.BuildPropertyUpdatedEvent(activity.PropertyEventInput{
			Actor:    actor,
			Owner:    s.Label(),
			Property: change.Name,
			OldValue: change.Old,
			NewValue: change.New,
		})
		if err := s.emitter.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
