package schema

// EnrichedAggregateRow adds presentation data to an AggregateRow.
type EnrichedAggregateRow struct {
	Rank  int          `json:"rank"`
	Label QualityLabel `json:"label"`
	AggregateRow
}

// GetQualityLabel returns a plain label for the OK percentage of a company.
func GetQualityLabel(okPercent float64) QualityLabel {
	switch {
	case okPercent >= 99:
		return ExcellentQuality
	case okPercent >= 95:
		return GoodQuality
	case okPercent >= 90:
		return FairQuality
	default:
		return PoorQuality
	}
}

// EnrichAggregates adds rank and label to aggregate rows, keeping their order.
func EnrichAggregates(rows []AggregateRow) []EnrichedAggregateRow {
	output := make([]EnrichedAggregateRow, len(rows))
	for i, r := range rows {
		output[i] = EnrichedAggregateRow{
			Rank:         i + 1,
			Label:        GetQualityLabel(r.OKPercent),
			AggregateRow: r,
		}
	}
	return output
}
