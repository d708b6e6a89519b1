package domain

// Factor names a binary financial-status column of the student dataset
type Factor string

const (
	FactorDebtor            Factor = "Debtor"
	FactorScholarshipHolder Factor = "Scholarship holder"
	FactorTuitionUpToDate   Factor = "Tuition fees up to date"
)

// Status is the value of a Factor
type Status string

const (
	StatusNo  Status = "No"
	StatusYes Status = "Yes"
)

// Outcome is the academic result stored in the Target column
type Outcome string

const (
	OutcomeGraduate Outcome = "Graduate"
	OutcomeEnrolled Outcome = "Enrolled"
	OutcomeDropout  Outcome = "Dropout"
)

// TargetColumn is the header of the outcome column
const TargetColumn = "Target"

// Factors returns the factor columns in report order.
func Factors() []Factor {
	return []Factor{FactorDebtor, FactorScholarshipHolder, FactorTuitionUpToDate}
}

// Statuses returns the status values in report order ("No" before "Yes").
func Statuses() []Status {
	return []Status{StatusNo, StatusYes}
}

// Outcomes returns the outcome labels in report order.
func Outcomes() []Outcome {
	return []Outcome{OutcomeGraduate, OutcomeEnrolled, OutcomeDropout}
}

// RequiredColumns lists every header the dataset must carry.
func RequiredColumns() []string {
	return []string{
		string(FactorDebtor),
		string(FactorScholarshipHolder),
		string(FactorTuitionUpToDate),
		TargetColumn,
	}
}

// StudentRecord is one row of the student dataset. Columns other than the
// three factors and the target are not retained.
type StudentRecord struct {
	Debtor            string `json:"debtor" csv:"Debtor"`
	ScholarshipHolder string `json:"scholarship_holder" csv:"Scholarship holder"`
	TuitionUpToDate   string `json:"tuition_up_to_date" csv:"Tuition fees up to date"`
	Target            string `json:"target" csv:"Target"`
}

// Value returns the raw value of the given factor column.
func (r StudentRecord) Value(f Factor) (string, bool) {
	switch f {
	case FactorDebtor:
		return r.Debtor, true
	case FactorScholarshipHolder:
		return r.ScholarshipHolder, true
	case FactorTuitionUpToDate:
		return r.TuitionUpToDate, true
	default:
		return "", false
	}
}
