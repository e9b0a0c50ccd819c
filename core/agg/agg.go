// Package agg has aggregation logic for defect reports.
package agg

import "github.com/huangsam/workbench/schema"

// AggregateDefects groups defect records by company in a single pass.
// Rows are created on first sight of a company and their derived fields are refreshed
// after every record, so the result is consistent at any prefix of the input.
func AggregateDefects(records []schema.DefectRecord) *schema.AggregateResult {
	result := schema.NewAggregateResult()
	for _, rec := range records {
		row := result.Row(rec.Company)
		row.TotalProduction += rec.TotalProduction
		row.DefectiveCount += rec.DefectiveCount
		refreshDerived(row)
	}
	return result
}

// Totals folds every company row into a single summary row with an empty company.
func Totals(result *schema.AggregateResult) schema.AggregateRow {
	var total schema.AggregateRow
	for _, row := range result.Rows() {
		total.TotalProduction += row.TotalProduction
		total.DefectiveCount += row.DefectiveCount
	}
	refreshDerived(&total)
	return total
}

// refreshDerived recomputes the OK count and percentages from the running totals.
// Zero production has no meaningful ratio, so both percentages are reported as 0.
func refreshDerived(row *schema.AggregateRow) {
	row.OKCount = row.TotalProduction - row.DefectiveCount
	if row.TotalProduction == 0 {
		row.OKPercent = 0
		row.ErrorPercent = 0
		return
	}
	row.OKPercent = row.OKCount * 100 / row.TotalProduction
	row.ErrorPercent = row.DefectiveCount * 100 / row.TotalProduction
}
