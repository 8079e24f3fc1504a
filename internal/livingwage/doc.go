// Package livingwage answers questions about the living wage dataset: a state's
// annual living wage, states paying the federal minimum, the most expensive
// states and the states where two full-time minimum wage earners fall short of
// the living wage.
//
// The package-level functions are pure and keep input order unless they sort.
// Analyzer wraps them with logging and lookup metrics for the CLI.
package livingwage
