package liveness

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/registry"
)

// Transition is a change of a server's state detected by one sweep.
type Transition struct {
	Server        api.ServerRecord
	State         api.ServerState
	LastHeartbeat time.Time
	Silence       time.Duration
}

// Store keeps the last heartbeat of every registered server and the set of servers currently
// considered down. Both are guarded by the same mutex, so a sweep decides every transition from
// one consistent view.
type Store struct {
	mux      sync.Mutex
	registry *registry.Registry
	lastSeen map[uuid.UUID]time.Time
	down     mapset.Set[uuid.UUID]
}

// NewStore returns a store in which every registered server is up and was last seen at now.
func NewStore(reg *registry.Registry, now time.Time) *Store {
	lastSeen := make(map[uuid.UUID]time.Time, reg.Len())
	for _, id := range reg.IDs() {
		lastSeen[id] = now
	}
	return &Store{
		registry: reg,
		lastSeen: lastSeen,
		down:     mapset.NewThreadUnsafeSet[uuid.UUID](),
	}
}

// Touch records a heartbeat of id at now. It returns false, and changes nothing, when id is not
// a registered server.
func (s *Store) Touch(id uuid.UUID, now time.Time) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, found := s.lastSeen[id]; !found {
		return false
	}
	s.lastSeen[id] = now
	return true
}

// Sweep classifies every registered server at now. A server silent for strictly longer than
// threshold is down. Servers whose classification differs from their down-set membership are
// flipped and returned in registry order. Callers notify after Sweep returns, outside the lock.
func (s *Store) Sweep(now time.Time, threshold time.Duration) []Transition {
	s.mux.Lock()
	defer s.mux.Unlock()

	var transitions []Transition
	for _, record := range s.registry.Records() {
		last := s.lastSeen[record.ID]
		silence := now.Sub(last)
		isDown := silence > threshold
		wasDown := s.down.Contains(record.ID)

		switch {
		case isDown && !wasDown:
			s.down.Add(record.ID)
			transitions = append(transitions, Transition{Server: record, State: api.ServerStateDown, LastHeartbeat: last, Silence: silence})
		case !isDown && wasDown:
			s.down.Remove(record.ID)
			transitions = append(transitions, Transition{Server: record, State: api.ServerStateUp, LastHeartbeat: last, Silence: silence})
		}
	}
	return transitions
}

// Snapshot returns the state of every registered server as of the last sweep.
func (s *Store) Snapshot(now time.Time) api.ServerStatusList {
	s.mux.Lock()
	defer s.mux.Unlock()

	statuses := make(api.ServerStatusList, 0, len(s.lastSeen))
	for _, record := range s.registry.Records() {
		last := s.lastSeen[record.ID]
		state := api.ServerStateUp
		if s.down.Contains(record.ID) {
			state = api.ServerStateDown
		}
		silence := now.Sub(last)
		statuses = append(statuses, api.ServerStatus{
			ID:            record.ID,
			Name:          record.Name,
			State:         state,
			LastHeartbeat: last,
			Silence:       silence,
			SilenceSecs:   silence.Seconds(),
		})
	}
	return statuses
}

func (s *Store) IsDown(id uuid.UUID) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.down.Contains(id)
}

// LastHeartbeat returns when id was last heard from, or false for an unknown server.
func (s *Store) LastHeartbeat(id uuid.UUID) (time.Time, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	last, found := s.lastSeen[id]
	return last, found
}

func (s *Store) DownCount() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.down.Cardinality()
}

// Len returns the number of tracked servers.
func (s *Store) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.lastSeen)
}
