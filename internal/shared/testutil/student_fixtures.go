package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finviz/pkg/contracts/domain"
)

// StudentHeader is the header of the cleaned student dataset, with a few
// unrelated columns the loader must ignore.
var StudentHeader = []string{
	"Marital status",
	"Debtor",
	"Tuition fees up to date",
	"Gender",
	"Scholarship holder",
	"Age at enrollment",
	"Target",
}

// StudentRow builds a row matching StudentHeader
func StudentRow(debtor, scholarship, tuition, target string) []string {
	return []string{"1", debtor, tuition, "0", scholarship, "20", target}
}

// WriteStudentCSV writes header and rows joined by sep into dir/name and returns the path
func WriteStudentCSV(t *testing.T, dir, name string, sep string, header []string, rows [][]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, sep))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, sep))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Record builds a StudentRecord with every factor set from the arguments
func Record(debtor, scholarship, tuition, target string) domain.StudentRecord {
	return domain.StudentRecord{
		Debtor:            debtor,
		ScholarshipHolder: scholarship,
		TuitionUpToDate:   tuition,
		Target:            target,
	}
}

// ScenarioA returns four records: debtors with two dropouts and one
// graduate, and one enrolled non-debtor. The other factors are left empty.
func ScenarioA() []domain.StudentRecord {
	return []domain.StudentRecord{
		{Debtor: "Yes", Target: "Dropout"},
		{Debtor: "Yes", Target: "Dropout"},
		{Debtor: "Yes", Target: "Graduate"},
		{Debtor: "No", Target: "Enrolled"},
	}
}
