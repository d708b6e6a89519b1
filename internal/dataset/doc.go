// Package dataset loads the student table the report is computed from.
//
// Delimited text is parsed with encoding/csv and loaded into a gota
// DataFrame with every column typed as string; .xlsx workbooks are read with
// excelize. Only the Debtor, Scholarship holder, Tuition fees up to date and
// Target columns are kept. A file lacking any of them is rejected with a
// DataFormatError naming the absent columns.
package dataset
