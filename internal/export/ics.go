package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/xavierca1/coachflow/internal/entity"
)

const productID = "-//CoachFlow//Bookings//EN"

// BookingCalendar builds a VCALENDAR with one VEVENT per booking. An empty
// slice still yields a valid calendar.
func BookingCalendar(bookings []entity.Booking, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)

	for i := range bookings {
		b := &bookings[i]
		ev := cal.AddEvent(b.ID + "@coachflow")
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(b.ScheduledAt.UTC())
		ev.SetEndAt(b.EndsAt().UTC())
		ev.SetSummary(bookingSummary(b))
		ev.SetDescription(fmt.Sprintf("Booking Type: %s\nDuration: %d minutes", b.BookingType, b.DurationMinutes))
	}
	return cal
}

func WriteBookingsICS(w io.Writer, bookings []entity.Booking, stamp time.Time) error {
	if _, err := io.WriteString(w, BookingCalendar(bookings, stamp).Serialize()); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

func bookingSummary(b *entity.Booking) string {
	client := b.ClientName
	if client == "" {
		client = "Client"
	}
	return b.BookingType + " with " + client
}
