// Package session owns the in-memory tracker state keyed by session ID.
// The host guarantees one turn in flight per session; the mutex here only
// protects the map against turns arriving on different sessions at once.
package session

import (
	"sync"
	"time"

	"github.com/ppiankov/turnwatch/internal/counter"
	"github.com/ppiankov/turnwatch/internal/model"
)

// Manager tracks per-session violation state across turns.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*model.SessionState
	carryOver bool
}

// NewManager creates a session manager. When carryOver is true, user profile
// slots survive a session restart; the violation count is never reset by a
// restart either way, only by an explicit Reset.
func NewManager(carryOver bool) *Manager {
	return &Manager{
		sessions:  make(map[string]*model.SessionState),
		carryOver: carryOver,
	}
}

// Start begins a session. For a known session with carry-over enabled, the
// user profile slots and violation count are preserved; with carry-over
// disabled the tracker is cleared and CountReset is always reported, even
// for sessions this process has never seen — the host's tracker may still
// hold stale slot values that need explicit clearing. A new session starts
// from a zero tracker. The result always instructs the host to resume
// listening.
func (m *Manager) Start(sessionID string) model.StartResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := model.StartResult{SessionID: sessionID, Listen: true}

	prev, known := m.sessions[sessionID]
	if known && m.carryOver {
		res.CarriedOver = prev.UserName != "" || prev.UserSegment != ""
		res.UserName = prev.UserName
		res.UserSegment = prev.UserSegment
		res.ViolationCount = prev.ViolationCount
		prev.StartedAt = time.Now().UTC()
		return res
	}

	res.CountReset = !m.carryOver
	m.sessions[sessionID] = &model.SessionState{
		SessionID: sessionID,
		StartedAt: time.Now().UTC(),
	}
	return res
}

// SetCarryOver changes the carry-over behavior for subsequent session
// starts. Used by configuration hot reload.
func (m *Manager) SetCarryOver(carryOver bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carryOver = carryOver
}

// RecordViolation applies a standard +1 increment for a moderate violation
// and returns the updated state.
func (m *Manager) RecordViolation(sessionID, intent string) model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.get(sessionID)
	st.ViolationCount = counter.RecordStandard(st.ViolationCount)
	st.LastViolationType = intent
	return *st
}

// RecordSevere applies the weighted increment for a severe violation and
// returns the updated state. Non-positive weight falls back to the default.
func (m *Manager) RecordSevere(sessionID, intent string, weight int) model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.get(sessionID)
	st.ViolationCount = counter.RecordSevere(st.ViolationCount, weight)
	st.LastViolationType = intent
	return *st
}

// SetLastViolation records the violating intent on the tracker without
// touching the count.
func (m *Manager) SetLastViolation(sessionID, intent string) model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.get(sessionID)
	st.LastViolationType = intent
	return *st
}

// Reset clears the violation count after sustained positive interaction.
// The prior count is returned so callers can skip audit noise for no-ops.
func (m *Manager) Reset(sessionID string) model.ResetResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.get(sessionID)
	prior := st.ViolationCount
	st.ViolationCount = counter.Reset(st.ViolationCount)
	st.LastViolationType = ""
	return model.ResetResult{SessionID: sessionID, PriorCount: prior, Count: st.ViolationCount}
}

// SetProfile stores the user profile slots on the session tracker.
func (m *Manager) SetProfile(sessionID, name, segment string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.get(sessionID)
	st.UserName = name
	st.UserSegment = segment
}

// Snapshot returns a copy of the current tracker state for a session.
// An unknown session yields a zero tracker without creating one.
func (m *Manager) Snapshot(sessionID string) model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.sessions[sessionID]; ok {
		return *st
	}
	return model.SessionState{SessionID: sessionID}
}

// get returns the tracker for a session, creating it on first touch.
// Callers hold m.mu.
func (m *Manager) get(sessionID string) *model.SessionState {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &model.SessionState{
			SessionID: sessionID,
			StartedAt: time.Now().UTC(),
		}
		m.sessions[sessionID] = st
	}
	return st
}
