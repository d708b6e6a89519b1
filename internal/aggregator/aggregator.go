package aggregator

import (
	"log/slog"

	"finviz/pkg/contracts/domain"
)

// Aggregator computes outcome percentages per factor status.
// Factors, Statuses and Outcomes fix both what is counted and the order of
// the emitted rows.
type Aggregator struct {
	logger   *slog.Logger
	Factors  []domain.Factor
	Statuses []domain.Status
	Outcomes []domain.Outcome
}

// New creates an aggregator over the report's factors, statuses and outcomes
func New(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger:   logger,
		Factors:  domain.Factors(),
		Statuses: domain.Statuses(),
		Outcomes: domain.Outcomes(),
	}
}

// Aggregate returns one row per (factor, status, outcome) for every
// non-empty (factor, status) group, ordered by factor, then status, then
// outcome. Each row's Percentage is the share of the group's records whose
// Target equals the outcome, so the rows of a group sum to 100 when every
// Target is one of the outcomes. Outcomes with no records are emitted with 0.
// Records whose factor value is not one of the statuses are ignored.
func (a *Aggregator) Aggregate(records []domain.StudentRecord) []domain.AggregationRow {
	rows := make([]domain.AggregationRow, 0, len(a.Factors)*len(a.Statuses)*len(a.Outcomes))

	for _, factor := range a.Factors {
		for _, status := range a.Statuses {
			total := 0
			counts := make(map[domain.Outcome]int, len(a.Outcomes))
			for _, r := range records {
				if v, ok := r.Value(factor); !ok || v != string(status) {
					continue
				}
				total++
				counts[domain.Outcome(r.Target)]++
			}

			if total == 0 {
				a.logger.Debug("Skipping empty group",
					slog.String("factor", string(factor)),
					slog.String("status", string(status)))
				continue
			}

			for _, outcome := range a.Outcomes {
				rows = append(rows, domain.AggregationRow{
					Factor:     factor,
					Status:     status,
					Outcome:    outcome,
					Percentage: 100.0 * float64(counts[outcome]) / float64(total),
				})
			}
		}
	}

	a.logger.Debug("Aggregated records",
		slog.Int("records", len(records)),
		slog.Int("rows", len(rows)))
	return rows
}

// Aggregate runs the default aggregator over records
func Aggregate(records []domain.StudentRecord) []domain.AggregationRow {
	return New(nil).Aggregate(records)
}
