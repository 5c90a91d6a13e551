// Package metrics derives comparable numbers from device records.
//
// Aggregate fills in device scores and averages a collection into a
// Summary. The classifiers turn a value into a Tier, either relative to a
// baseline (Comparator) or against fixed score bands (PerformanceLevel).
// A Rater picks one of the two per table so columns are never rated with
// mixed conventions.
package metrics
