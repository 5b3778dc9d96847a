package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xavierca1/coachflow/internal/entity"
)

var leadHeader = []string{"Name", "Email", "Phone", "Source", "Status", "Temperature", "Created At"}

// WriteLeadsCSV writes one row per lead after the header. Quoting of
// commas, quotes and newlines is left to encoding/csv.
func WriteLeadsCSV(w io.Writer, leads []entity.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(leadHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, l := range leads {
		created := ""
		if !l.CreatedAt.IsZero() {
			created = l.CreatedAt.UTC().Format(dateLayout)
		}
		row := []string{l.Name, l.Email, l.Phone, l.Source, l.Status, l.Temperature, created}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", l.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
