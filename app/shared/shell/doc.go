// Package shell is the imperative shell around the lending rules in package core.
//
// It holds what every feature slice shares: the Command and Query contracts,
// the HandlerResult, retrying of writes that lost a concurrency race, the observability
// helpers for command and query handlers, and input sanitizing of free-text fields.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
