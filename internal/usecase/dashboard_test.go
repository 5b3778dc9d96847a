package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/usecase"
)

func TestDashboardOneKindFailingDoesNotBlockOthers(t *testing.T) {
	records, store := newRecords(t, nil)
	ctx := context.Background()
	store.ListErr["voice_calls"] = errors.New("upstream unavailable")

	_, err := records.CreateLead(ctx, alice, usecase.CreateLeadInput{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	snap := usecase.NewDashboard(records, zerolog.Nop()).Load(ctx, alice)

	assert.Len(t, snap.Records.Leads, 1)
	assert.NotNil(t, snap.Records.Bookings)
	assert.Nil(t, snap.Records.Calls)
	assert.Error(t, snap.Err(entity.KindVoiceCalls))
	assert.NoError(t, snap.Err(entity.KindLeads))
	assert.Len(t, snap.Failed, 1)
}
