// Package mock provides test doubles for the ai package interfaces.
//
// The mock embedder produces deterministic unit vectors derived from the
// input text, so tests get repeatable similarity scores without an external
// embedding service. Behavior can be overridden per test via the exported
// function fields.
package mock
