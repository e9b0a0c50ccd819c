package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefectRecord is one production report of a company. The JSON keys follow the
// defects data file format.
type DefectRecord struct {
	Company         string  `json:"Empresa"`
	TotalProduction float64 `json:"ProduccionTotal"`
	DefectiveCount  float64 `json:"CantidaPiezasConFallas"`
}

// AggregateRow holds the per-company totals and derived percentages.
type AggregateRow struct {
	Company         string  `json:"Empresa" parquet:"company"`
	TotalProduction float64 `json:"ProduccionTotal" parquet:"total_production"`
	DefectiveCount  float64 `json:"CantidaPiezasConFallas" parquet:"defective_count"`
	OKCount         float64 `json:"CantidadPiezasOk" parquet:"ok_count"`
	OKPercent       float64 `json:"PPiezasOk" parquet:"ok_percent"`
	ErrorPercent    float64 `json:"PPiezasError" parquet:"error_percent"`
}

// AggregateResult maps company names to rows while remembering first-seen order.
type AggregateResult struct {
	order []string
	rows  map[string]*AggregateRow
}

// NewAggregateResult returns an empty result.
func NewAggregateResult() *AggregateResult {
	return &AggregateResult{rows: make(map[string]*AggregateRow)}
}

// Row returns the row for a company, creating a zeroed one when it is first seen.
func (r *AggregateResult) Row(company string) *AggregateRow {
	if row, ok := r.rows[company]; ok {
		return row
	}
	row := &AggregateRow{Company: company}
	r.rows[company] = row
	r.order = append(r.order, company)
	return row
}

// Get returns the row for a company without creating it.
func (r *AggregateResult) Get(company string) (AggregateRow, bool) {
	row, ok := r.rows[company]
	if !ok {
		return AggregateRow{}, false
	}
	return *row, true
}

// Len returns the number of companies.
func (r *AggregateResult) Len() int {
	return len(r.order)
}

// Companies returns company names in first-seen order.
func (r *AggregateResult) Companies() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Rows returns copies of all rows in first-seen order.
func (r *AggregateResult) Rows() []AggregateRow {
	out := make([]AggregateRow, 0, len(r.order))
	for _, company := range r.order {
		out = append(out, *r.rows[company])
	}
	return out
}

// MarshalJSON renders the result as a JSON object keyed by company, in first-seen order.
func (r *AggregateResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, company := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(company)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.rows[company])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keyed by company, keeping the key order of the input.
func (r *AggregateResult) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("aggregate result must be a JSON object, got %v", tok)
	}
	out := NewAggregateResult()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		company, _ := tok.(string)
		var row AggregateRow
		if err := dec.Decode(&row); err != nil {
			return err
		}
		*out.Row(company) = row
	}
	*r = *out
	return nil
}
