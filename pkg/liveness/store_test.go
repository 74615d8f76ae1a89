package liveness

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/registry"
)

var (
	alphaID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	betaID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	epoch   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestRegistry(t *testing.T) *registry.Registry {
	reg, err := registry.Load([]config.ServerEntry{
		{Name: "alpha", UUID: alphaID.String()},
		{Name: "beta", UUID: betaID.String()},
	})
	if err != nil {
		t.Fatalf("unable to load registry: %v", err)
	}
	return reg
}

func TestNewStore(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	Expect(store.Len()).To(Equal(2))
	Expect(store.DownCount()).To(Equal(0))
	for _, id := range []uuid.UUID{alphaID, betaID} {
		Expect(store.IsDown(id)).To(BeFalse())
		last, found := store.LastHeartbeat(id)
		Expect(found).To(BeTrue())
		Expect(last).To(Equal(epoch))
	}

	for _, status := range store.Snapshot(epoch) {
		Expect(status.State).To(Equal(api.ServerStateUp))
	}
}

func TestTouch(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	Expect(store.Touch(alphaID, epoch.Add(3*time.Second))).To(BeTrue())
	last, _ := store.LastHeartbeat(alphaID)
	Expect(last).To(Equal(epoch.Add(3 * time.Second)))

	// beta untouched
	last, _ = store.LastHeartbeat(betaID)
	Expect(last).To(Equal(epoch))
}

func TestTouchUnknown(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	unknown := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	Expect(store.Touch(unknown, epoch.Add(time.Second))).To(BeFalse())
	Expect(store.Len()).To(Equal(2))
	_, found := store.LastHeartbeat(unknown)
	Expect(found).To(BeFalse())
	Expect(store.Snapshot(epoch)).To(HaveLen(2))
}

func TestSweepThreshold(t *testing.T) {
	threshold := 10 * time.Second

	cases := []struct {
		name     string
		elapsed  time.Duration
		expected []api.ServerState
	}{
		{
			name:    "fresh",
			elapsed: 0,
		},
		{
			name:    "within threshold",
			elapsed: 9 * time.Second,
		},
		{
			name:    "exactly the threshold is still up",
			elapsed: threshold,
		},
		{
			name:     "one nanosecond past the threshold",
			elapsed:  threshold + time.Nanosecond,
			expected: []api.ServerState{api.ServerStateDown, api.ServerStateDown},
		},
		{
			name:     "long silence",
			elapsed:  time.Hour,
			expected: []api.ServerState{api.ServerStateDown, api.ServerStateDown},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)
			store := NewStore(newTestRegistry(t), epoch)
			transitions := store.Sweep(epoch.Add(tc.elapsed), threshold)

			states := []api.ServerState{}
			for _, transition := range transitions {
				states = append(states, transition.State)
			}
			if tc.expected == nil {
				Expect(states).To(BeEmpty())
				Expect(store.DownCount()).To(Equal(0))
				return
			}
			Expect(states).To(Equal(tc.expected))
			Expect(store.DownCount()).To(Equal(2))
		})
	}
}

func TestSweepTransitions(t *testing.T) {
	RegisterTestingT(t)

	threshold := 10 * time.Second
	store := NewStore(newTestRegistry(t), epoch)

	// beta keeps sending, alpha goes silent
	store.Touch(betaID, epoch.Add(8*time.Second))
	transitions := store.Sweep(epoch.Add(11*time.Second), threshold)
	Expect(transitions).To(HaveLen(1))
	Expect(transitions[0].Server).To(Equal(api.ServerRecord{ID: alphaID, Name: "alpha"}))
	Expect(transitions[0].State).To(Equal(api.ServerStateDown))
	Expect(transitions[0].LastHeartbeat).To(Equal(epoch))
	Expect(transitions[0].Silence).To(Equal(11 * time.Second))
	Expect(store.IsDown(alphaID)).To(BeTrue())
	Expect(store.IsDown(betaID)).To(BeFalse())

	// steady state down produces nothing
	store.Touch(betaID, epoch.Add(15*time.Second))
	Expect(store.Sweep(epoch.Add(16*time.Second), threshold)).To(BeEmpty())
	Expect(store.Sweep(epoch.Add(21*time.Second), threshold)).To(BeEmpty())
	Expect(store.IsDown(alphaID)).To(BeTrue())

	// alpha is back
	store.Touch(alphaID, epoch.Add(22*time.Second))
	transitions = store.Sweep(epoch.Add(24*time.Second), threshold)
	Expect(transitions).To(HaveLen(1))
	Expect(transitions[0].Server.ID).To(Equal(alphaID))
	Expect(transitions[0].State).To(Equal(api.ServerStateUp))
	Expect(store.IsDown(alphaID)).To(BeFalse())

	// steady state up produces nothing
	Expect(store.Sweep(epoch.Add(25*time.Second), threshold)).To(BeEmpty())
}

func TestSweepOrder(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	transitions := store.Sweep(epoch.Add(time.Minute), 10*time.Second)
	Expect(transitions).To(HaveLen(2))
	Expect(transitions[0].Server.Name).To(Equal("alpha"))
	Expect(transitions[1].Server.Name).To(Equal("beta"))
}

func TestSnapshot(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	store.Touch(betaID, epoch.Add(10*time.Second))
	store.Sweep(epoch.Add(12*time.Second), 10*time.Second)

	statuses := store.Snapshot(epoch.Add(12 * time.Second))
	Expect(statuses).To(HaveLen(2))
	Expect(statuses[0].Name).To(Equal("alpha"))
	Expect(statuses[0].State).To(Equal(api.ServerStateDown))
	Expect(statuses[0].Silence).To(Equal(12 * time.Second))
	Expect(statuses[0].SilenceSecs).To(Equal(12.0))
	Expect(statuses[1].Name).To(Equal("beta"))
	Expect(statuses[1].State).To(Equal(api.ServerStateUp))
	Expect(statuses[1].LastHeartbeat).To(Equal(epoch.Add(10 * time.Second)))
}

func TestConcurrentTouchAndSweep(t *testing.T) {
	RegisterTestingT(t)

	store := NewStore(newTestRegistry(t), epoch)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Touch(alphaID, epoch.Add(time.Duration(i*100+j)*time.Millisecond))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Sweep(epoch.Add(5*time.Second), 10*time.Second)
			}
		}()
	}
	wg.Wait()

	Expect(store.DownCount()).To(Equal(0))
	Expect(store.Len()).To(Equal(2))
}
