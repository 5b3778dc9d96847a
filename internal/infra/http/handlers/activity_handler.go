package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/presenter"
	"github.com/xavierca1/coachflow/internal/session"
	"github.com/xavierca1/coachflow/internal/usecase"
)

// CallHandler serves voice-agent calls. Calls are written by the voice
// agent, never from the dashboard.
type CallHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
	now     func() time.Time
}

func NewCallHandler(records *usecase.Records, log zerolog.Logger) *CallHandler {
	return &CallHandler{Records: records, Log: log, now: time.Now}
}

func (h *CallHandler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.Records.Calls.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeCalls(calls)
	writeJSON(w, http.StatusOK, listResponse{
		Records: presenter.CallViews(calls, h.now()),
		Section: presenter.List(entity.KindVoiceCalls, len(calls), sum, presenter.CallCards(sum)),
	})
}

type MessageHandler struct {
	Records *usecase.Records
	Log     zerolog.Logger
	now     func() time.Time
}

func NewMessageHandler(records *usecase.Records, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{Records: records, Log: log, now: time.Now}
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Records.Messages.List(r.Context(), session.FromContext(r.Context()).Principal())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	sum := aggregate.SummarizeMessages(messages)
	writeJSON(w, http.StatusOK, listResponse{
		Records: presenter.MessageViews(messages, h.now()),
		Section: presenter.List(entity.KindMessages, len(messages), sum, presenter.MessageCards(sum)),
	})
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateMessageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	msg, err := h.Records.CreateMessage(r.Context(), session.FromContext(r.Context()).Principal(), input)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
