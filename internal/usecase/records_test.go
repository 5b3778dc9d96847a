package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/usecase"
)

var alice = usecase.Principal{UserID: "user-alice", AccessToken: "token"}

func newRecords(t *testing.T, events usecase.EventPublisher) (*usecase.Records, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	return usecase.NewRecords(store, cache.NewMemory(time.Minute), events, zerolog.Nop()), store
}

func TestCreateLeadThenListIncludesItOnce(t *testing.T) {
	records, _ := newRecords(t, nil)
	ctx := context.Background()

	// Warm the cache so the create has something to invalidate.
	before, err := records.Leads.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, before)

	lead, err := records.CreateLead(ctx, alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadSourceWebsite, lead.Source)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.Equal(t, entity.TemperatureCold, lead.Temperature)

	after, err := records.Leads.List(ctx, alice)
	require.NoError(t, err)

	count := 0
	for _, l := range after {
		if l.ID == lead.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestWriteDuringListFillIsNotMaskedByStaleRows(t *testing.T) {
	qc := &writeBeforeFill{Memory: cache.NewMemory(time.Minute)}
	records := usecase.NewRecords(database.NewMemoryStore(), qc, nil, zerolog.Nop())
	ctx := context.Background()

	var created *entity.Lead
	qc.write = func() {
		lead, err := records.CreateLead(ctx, alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})
		assert.NoError(t, err)
		created = lead
	}

	first, err := records.Leads.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, first, "fetched before the lead existed")
	require.NotNil(t, created)

	after, err := records.Leads.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, created.ID, after[0].ID)
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	store := newGatedStore()
	qc := cache.NewMemory(time.Minute)
	records := usecase.NewRecords(store, qc, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := records.Leads.List(ctx, alice)
		errc <- err
	}()

	<-store.started
	cancel()
	err := <-errc
	assert.True(t, usecase.IsFetchError(err))
	assert.ErrorIs(t, err, context.Canceled)

	close(store.release)
	assert.Eventually(t, func() bool {
		_, ok := qc.Get(context.Background(), alice.UserID, entity.KindLeads)
		return ok
	}, time.Second, 10*time.Millisecond, "the shared fetch finishes and fills the cache")

	leads, err := records.Leads.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestCreateLeadValidationErrorSkipsBackend(t *testing.T) {
	records, store := newRecords(t, nil)

	_, err := records.CreateLead(context.Background(), alice, usecase.CreateLeadInput{Name: "", Email: "not-an-email"})

	var verr *usecase.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, 0, store.Rows("leads"))
}

func TestCreateRejectedByBackendIsValidationError(t *testing.T) {
	records, store := newRecords(t, nil)
	store.InsertErr["leads"] = &database.RejectedError{Code: "23505", Message: "duplicate email"}

	_, err := records.CreateLead(context.Background(), alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})

	var verr *usecase.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "duplicate email")
}

func TestCreateTransportFailureIsFetchError(t *testing.T) {
	records, store := newRecords(t, nil)
	store.InsertErr["bookings"] = errors.New("connection refused")

	_, err := records.CreateBooking(context.Background(), alice, usecase.CreateBookingInput{
		ClientName:  "Bruno",
		BookingType: entity.BookingTypeDiscovery,
		ScheduledAt: "2026-06-01T10:00:00Z",
	})

	var ferr *usecase.FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, entity.KindBookings, ferr.Kind)
}

func TestListFailureIsFetchError(t *testing.T) {
	records, store := newRecords(t, nil)
	store.ListErr["voice_calls"] = errors.New("timeout")

	_, err := records.Calls.List(context.Background(), alice)

	assert.True(t, usecase.IsFetchError(err))
}

func TestCreatePublishesEvent(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishRecordCreated", mock.Anything, entity.KindMessages, alice.UserID, mock.AnythingOfType("*entity.Message")).Return(nil)
	records, _ := newRecords(t, pub)

	msg, err := records.CreateMessage(context.Background(), alice, usecase.CreateMessageInput{
		Platform: entity.PlatformWhatsApp, MessageType: entity.MessageOutgoing, Content: "hello",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	pub.AssertExpectations(t)
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishRecordCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	records, _ := newRecords(t, pub)

	_, err := records.CreateWorkflow(context.Background(), alice, usecase.CreateWorkflowInput{Name: "Nurture", TriggerType: "new_lead"})

	assert.NoError(t, err)
}

func TestBookingDefaultsAndTerminalStatus(t *testing.T) {
	records, _ := newRecords(t, nil)
	ctx := context.Background()

	b, err := records.CreateBooking(ctx, alice, usecase.CreateBookingInput{
		ClientName:  "Bruno",
		BookingType: entity.BookingTypeCoaching,
		ScheduledAt: "2026-06-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultBookingMinutes, b.DurationMinutes)
	assert.Equal(t, entity.BookingStatusScheduled, b.Status)

	done, err := records.UpdateBooking(ctx, alice, b.ID, usecase.UpdateBookingInput{Status: entity.BookingStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCompleted, done.Status)

	_, err = records.UpdateBooking(ctx, alice, b.ID, usecase.UpdateBookingInput{Status: entity.BookingStatusScheduled})
	var derr *usecase.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeInvalidTransition, derr.Code)
}

func TestUpdateLeadStatusAnyOrder(t *testing.T) {
	records, _ := newRecords(t, nil)
	ctx := context.Background()

	lead, err := records.CreateLead(ctx, alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	converted := entity.LeadStatusConverted
	updated, err := records.UpdateLead(ctx, alice, lead.ID, usecase.UpdateLeadInput{Status: &converted})
	require.NoError(t, err)
	assert.Equal(t, converted, updated.Status)

	bogus := "won"
	_, err = records.UpdateLead(ctx, alice, lead.ID, usecase.UpdateLeadInput{Status: &bogus})
	var verr *usecase.ValidationError
	assert.True(t, errors.As(err, &verr))

	leads, err := records.Leads.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, converted, leads[0].Status)
}

func TestUpdateUnknownRecordIsNotFound(t *testing.T) {
	records, _ := newRecords(t, nil)

	_, err := records.UpdateWorkflow(context.Background(), alice, "missing", usecase.UpdateWorkflowInput{Status: entity.WorkflowPaused})

	var derr *usecase.DomainError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, usecase.CodeNotFound, derr.Code)
}

func TestWorkflowCannotBeSetFailedFromDashboard(t *testing.T) {
	records, _ := newRecords(t, nil)

	_, err := records.UpdateWorkflow(context.Background(), alice, "wf-1", usecase.UpdateWorkflowInput{Status: entity.WorkflowFailed})

	var verr *usecase.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestOwnersDoNotSeeEachOther(t *testing.T) {
	records, _ := newRecords(t, nil)
	ctx := context.Background()
	bob := usecase.Principal{UserID: "user-bob"}

	_, err := records.CreateLead(ctx, alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	leads, err := records.Leads.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestEmailLoadsAllCollections(t *testing.T) {
	records, _ := newRecords(t, nil)
	ctx := context.Background()

	_, err := records.CreateEmailTemplate(ctx, alice, usecase.CreateEmailTemplateInput{Name: "Welcome", Subject: "Hi"})
	require.NoError(t, err)
	_, err = records.CreateEmailRule(ctx, alice, usecase.CreateEmailRuleInput{Name: "On signup", TriggerType: "lead_created"})
	require.NoError(t, err)

	d, err := records.Email(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, d.Templates, 1)
	assert.Len(t, d.Rules, 1)
	assert.NotNil(t, d.Campaigns)
	assert.NotNil(t, d.Queue)
}
