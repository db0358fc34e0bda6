package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderx/thunder/internal/domain"
)

func TestLoadState_StartsPending(t *testing.T) {
	var zero domain.LoadState
	assert.True(t, zero.Pending())
	assert.Equal(t, domain.LoadPending, domain.PendingLoad().Status())
	assert.Empty(t, zero.Items())
	assert.Empty(t, zero.Endorsements())
	assert.NoError(t, zero.Reason())
}

func TestLoadState_Succeed(t *testing.T) {
	items := []domain.Item{{ID: "1", Name: "Watch"}}
	ends := []domain.Endorsement{{ID: "1", AuthorName: "Carlos Mendoza", Rating: 5}}

	s, err := domain.PendingLoad().Succeed(items, ends)
	require.NoError(t, err)

	assert.True(t, s.Succeeded())
	assert.False(t, s.Failed())
	assert.Equal(t, items, s.Items())
	assert.Equal(t, ends, s.Endorsements())

	// Mutating the returned copy does not leak into the state
	got := s.Items()
	got[0].Name = "changed"
	assert.Equal(t, "Watch", s.Items()[0].Name)
}

func TestLoadState_FailClearsCollections(t *testing.T) {
	cause := errors.New("boom")
	s, err := domain.PendingLoad().Fail(cause)
	require.NoError(t, err)

	assert.True(t, s.Failed())
	assert.False(t, s.Succeeded())
	assert.Empty(t, s.Items())
	assert.Empty(t, s.Endorsements())
	assert.ErrorIs(t, s.Reason(), cause)
}

func TestLoadState_FailWithoutReason(t *testing.T) {
	s, err := domain.PendingLoad().Fail(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Reason(), domain.ErrLoadFailed)
}

func TestLoadState_TerminalStatesRejectTransitions(t *testing.T) {
	succeeded, err := domain.PendingLoad().Succeed(nil, nil)
	require.NoError(t, err)
	failed, err := domain.PendingLoad().Fail(errors.New("x"))
	require.NoError(t, err)

	for name, s := range map[string]domain.LoadState{"succeeded": succeeded, "failed": failed} {
		t.Run(name, func(t *testing.T) {
			next, err := s.Succeed([]domain.Item{{ID: "9"}}, nil)
			assert.ErrorIs(t, err, domain.ErrLoadSettled)
			assert.Equal(t, s.Status(), next.Status())

			next, err = s.Fail(errors.New("late"))
			assert.ErrorIs(t, err, domain.ErrLoadSettled)
			assert.Equal(t, s.Status(), next.Status())
			assert.False(t, next.Succeeded() && next.Failed())
		})
	}
}

func TestEndorsement_DisplayInitials(t *testing.T) {
	assert.Equal(t, "MG", domain.Endorsement{Initials: "MG"}.DisplayInitials())
	assert.Equal(t, "SH", domain.Endorsement{AuthorName: "sofía herrera"}.DisplayInitials())
	assert.Equal(t, "D", domain.Endorsement{AuthorName: "Diego"}.DisplayInitials())
	assert.Equal(t, "", domain.Endorsement{}.DisplayInitials())
}

func TestCategory_Normalized(t *testing.T) {
	assert.Equal(t, "watches", domain.Category("  Watches ").Normalized())
	assert.Equal(t, "RELOJES", domain.Category("relojes").Label())
}
