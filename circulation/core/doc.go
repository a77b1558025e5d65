// Package core contains the domain events of the library circulation manager.
//
// Events describe what happened at the circulation desk (a member was
// registered, a book was issued or returned, issuing or returning was
// rejected) rather than generic create/update operations. The Record Store in
// package circulation emits them, package shell turns them into journal events.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
