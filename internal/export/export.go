// Package export renders dashboard records as downloadable files.
package export

import "time"

const (
	dateLayout = "2006-01-02"

	CSVContentType = "text/csv; charset=utf-8"
	ICSContentType = "text/calendar; charset=utf-8"
)

func LeadsFilename(now time.Time) string {
	return "leads_export_" + now.UTC().Format(dateLayout) + ".csv"
}

func BookingsFilename(now time.Time) string {
	return "bookings_calendar_" + now.UTC().Format(dateLayout) + ".ics"
}
