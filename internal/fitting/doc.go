// Package fitting manages named, reusable fit configurations and
// orchestrates their execution: a validated configuration entity, an
// ordered observable configuration set, a container tracking the single
// most recent fit result under a shared-state lock, and pure result
// formatting helpers.
package fitting
