// Package shell connects the circulation domain events to the event journal.
//
// It converts core.DomainEvent values to eventjournal.StorableEvent DTOs and back,
// attaches event metadata, and provides a Recorder that journals each event in the
// stream of the member it concerns.
package shell
