// Package handlers implements the business logic for CLI commands.
//
// Handlers are called by command definitions in the commands package. They
// are framework-agnostic; collaborators are reached through package-level
// factory variables so tests can replace them.
package handlers
