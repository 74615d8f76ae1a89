package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/notifier"
)

var _ notifier.Notifier = &NotifierMock{}

// Notification is one recorded call of the mock.
type Notification struct {
	State api.ServerState
	ID    uuid.UUID
	Name  string
}

// NotifierMock records every call. When Err is set each call is recorded and then fails with it.
type NotifierMock struct {
	mux           sync.RWMutex
	notifications []Notification
	Err           error
}

func NewNotifier() *NotifierMock {
	return &NotifierMock{}
}

func (n *NotifierMock) Down(ctx context.Context, id uuid.UUID, name string) error {
	return n.record(api.ServerStateDown, id, name)
}

func (n *NotifierMock) Up(ctx context.Context, id uuid.UUID, name string) error {
	return n.record(api.ServerStateUp, id, name)
}

func (n *NotifierMock) record(state api.ServerState, id uuid.UUID, name string) error {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.notifications = append(n.notifications, Notification{State: state, ID: id, Name: name})
	return n.Err
}

// SetErr changes the error returned by subsequent calls.
func (n *NotifierMock) SetErr(err error) {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.Err = err
}

func (n *NotifierMock) Notifications() []Notification {
	n.mux.RLock()
	defer n.mux.RUnlock()
	notifications := make([]Notification, len(n.notifications))
	copy(notifications, n.notifications)
	return notifications
}

// Count returns how many notifications of state were sent for id.
func (n *NotifierMock) Count(id uuid.UUID, state api.ServerState) int {
	n.mux.RLock()
	defer n.mux.RUnlock()
	count := 0
	for _, notification := range n.notifications {
		if notification.ID == id && notification.State == state {
			count++
		}
	}
	return count
}

func (n *NotifierMock) Reset() {
	n.mux.Lock()
	defer n.mux.Unlock()
	n.notifications = nil
}
