package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// WizardManager keeps wizard sessions in memory and drops the ones left idle
// for longer than the TTL.
type WizardManager struct {
	uploader   Uploader
	extractor  Extractor
	interviews *InterviewUsecase
	timeout    time.Duration
	ttl        time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Wizard
}

func NewWizardManager(uploader Uploader, extractor Extractor, interviews *InterviewUsecase, timeout, ttl time.Duration) *WizardManager {
	return &WizardManager{
		uploader:   uploader,
		extractor:  extractor,
		interviews: interviews,
		timeout:    timeout,
		ttl:        ttl,
		now:        time.Now,
		sessions:   make(map[string]*Wizard),
	}
}

// Open starts a wizard. A non-empty owner binds the session to that user.
func (m *WizardManager) Open(owner string) *Wizard {
	w := NewWizard(uuid.NewString(), owner, m.uploader, m.extractor, m.interviews, m.timeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	m.sessions[w.ID()] = w
	return w
}

// Get returns the session if it exists and the requester may use it.
func (m *WizardManager) Get(id, requester string) (*Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()

	w, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if w.Owner() != "" && w.Owner() != requester {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

func (m *WizardManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *WizardManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *WizardManager) evictLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, w := range m.sessions {
		// a session with a request in flight is never evicted
		if last, idle := w.idleSince(); idle && last.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
