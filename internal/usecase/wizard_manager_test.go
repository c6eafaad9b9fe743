package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *WizardManager {
	interviews := NewInterviewUsecase(&fakeStore{}, time.Second)
	return NewWizardManager(&fakeUploader{}, &fakeExtractor{}, interviews, time.Second, ttl)
}

func TestWizardManager_OpenAndGet(t *testing.T) {
	m := newTestManager(time.Hour)

	w := m.Open("user-7")
	require.NotEmpty(t, w.ID())
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(w.ID(), "user-7")
	require.NoError(t, err)
	assert.Same(t, w, got)

	_, err = m.Get("missing", "user-7")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardManager_OwnerBinding(t *testing.T) {
	m := newTestManager(time.Hour)

	owned := m.Open("user-7")
	_, err := m.Get(owned.ID(), "user-8")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(owned.ID(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	anonymous := m.Open("")
	_, err = m.Get(anonymous.ID(), "user-8")
	assert.NoError(t, err)
}

func TestWizardManager_Remove(t *testing.T) {
	m := newTestManager(time.Hour)
	w := m.Open("")
	m.Remove(w.ID())

	_, err := m.Get(w.ID(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestWizardManager_EvictsIdleSessions(t *testing.T) {
	m := newTestManager(time.Hour)
	stale := m.Open("")
	require.Equal(t, 1, m.Len())

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err := m.Get(stale.ID(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestWizardManager_KeepsBusySessions(t *testing.T) {
	m := newTestManager(time.Hour)
	w := m.Open("")
	require.NoError(t, w.enter(StageCreating))

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	got, err := m.Get(w.ID(), "")
	require.NoError(t, err)
	assert.Same(t, w, got)
}

func TestWizardManager_NoTTL(t *testing.T) {
	m := newTestManager(0)
	w := m.Open("")

	m.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, err := m.Get(w.ID(), "")
	assert.NoError(t, err)
}
