// Package aggregates owns the write boundary for aggregate persistence.
//
// Services run their uniqueness checks and saves through a Writer so that each
// command commits atomically, infrastructure errors are mapped onto domain error
// codes and every write is observed by Hooks.
package aggregates
