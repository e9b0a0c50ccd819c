package iostore

import (
	"io"
	"strconv"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"github.com/olekukonko/tablewriter"
)

// maxLocationWidth keeps long file paths and DSNs from stretching the table.
const maxLocationWidth = 60

// PrintStoreStatus writes store status information as a two-column table.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Property", "Value"})

	rows := [][]string{
		{"Backend", status.Backend},
		{"Location", contract.TruncatePath(status.Location, maxLocationWidth)},
		{"Connected", strconv.FormatBool(status.Connected)},
	}
	if status.Connected {
		rows = append(rows,
			[]string{"Total Records", strconv.Itoa(status.TotalRecords)},
			[]string{"Max ID", strconv.FormatInt(status.MaxID, 10)},
		)
		if status.DocumentVersion > 0 {
			rows = append(rows, []string{"Document Version", strconv.Itoa(status.DocumentVersion)})
		}
		if !status.LastWriteTime.IsZero() {
			rows = append(rows, []string{"Last Write", status.LastWriteTime.Format("2006-01-02 15:04:05")})
		}
		rows = append(rows, []string{"Size", strconv.FormatInt(status.SizeBytes, 10) + " bytes"})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
