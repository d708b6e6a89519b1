// Package shared holds helpers used across the report packages.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// structured logs and fixtures for student datasets:
//
//	logger, logs := testutil.NewTestLogger(t)
//	path := testutil.WriteStudentCSV(t, t.TempDir(), "students.csv", ",",
//	    testutil.StudentHeader, [][]string{testutil.StudentRow("Yes", "No", "Yes", "Dropout")})
package shared
