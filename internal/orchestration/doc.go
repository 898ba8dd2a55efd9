// Package orchestration coordinates concurrent execution of fit
// configurations against a shared dataset and aggregates outcomes for
// comparison. It decouples coordination logic from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
