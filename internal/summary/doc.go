// Package summary prints the console report of a finished run.
package summary
