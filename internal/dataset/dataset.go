package dataset

import (
	"finviz/pkg/contracts/domain"
)

// missingValue is how gota renders an empty or NA cell of a string series
const missingValue = "NaN"

// Dataset is the loaded student table
type Dataset struct {
	Records []domain.StudentRecord
	// Columns is the trimmed header of the source, in file order
	Columns []string
	Source  string
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// OutcomeCounts returns the frequency of every Target value, most frequent
// first. Ties keep the order in which the values first appear. Missing
// targets are not counted.
func (d *Dataset) OutcomeCounts() []domain.OutcomeCount {
	if d == nil {
		return nil
	}

	index := make(map[string]int)
	var counts []domain.OutcomeCount
	for _, r := range d.Records {
		if r.Target == "" || r.Target == missingValue {
			continue
		}
		i, ok := index[r.Target]
		if !ok {
			i = len(counts)
			index[r.Target] = i
			counts = append(counts, domain.OutcomeCount{Outcome: r.Target})
		}
		counts[i].Count++
	}

	// Insertion sort keeps equal counts in first-appearance order
	for i := 1; i < len(counts); i++ {
		for j := i; j > 0 && counts[j].Count > counts[j-1].Count; j-- {
			counts[j], counts[j-1] = counts[j-1], counts[j]
		}
	}
	return counts
}
