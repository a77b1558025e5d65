// Package helper provides test doubles for the observability hooks of the record store
// and the catalog loaders: a slog.Handler spy and a metrics collector spy.
package helper
