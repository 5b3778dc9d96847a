package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/export"
	"github.com/xavierca1/coachflow/internal/presenter"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

type BookingHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
	now     func() time.Time
}

func NewBookingHandler(records *usecase.Records, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{Records: records, Log: log, now: time.Now}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Records.Bookings.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeBookings(bookings, h.now())
	writeJSON(w, http.StatusOK, listResponse{
		Records: bookings,
		Section: presenter.List(entity.KindBookings, len(bookings), sum, presenter.BookingCards(sum)),
	})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateBookingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	booking, err := h.Records.CreateBooking(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateBookingInput
	if !decodeJSON(w, r, &input) {
		return
	}

	booking, err := h.Records.UpdateBooking(r.Context(), session.FromContext(r.Context()).Principal(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Records.Bookings.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := export.WriteBookingsICS(&buf, bookings, now); err != nil {
		writeError(w, h.Log, err)
		return
	}
	attachment(w, export.ICSContentType, export.BookingsFilename(now))
	w.Write(buf.Bytes())
}
