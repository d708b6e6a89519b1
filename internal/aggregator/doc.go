// Package aggregator turns student records into the percentage table the
// chart plots: for each financial factor and each of its statuses, the share
// of students in each academic outcome.
//
// Aggregation is a pure function of its input; groups without records
// produce no rows.
package aggregator
