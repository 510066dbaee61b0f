// Package state persists variable tables as named themes and writes them back
// into styles.
//
// A theme is stored as up to two snapshots, one per variable namespace:
//
//	theme/<name>/global
//	theme/<name>/scoped
//
// Store[T] only loads and saves a single snapshot for a single Ref. Resolver
// moves snapshots between a Store and a *style.Style and reports each theme
// application through an activity.Emitter.
package state
