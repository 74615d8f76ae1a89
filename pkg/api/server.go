package api

import (
	"time"

	"github.com/google/uuid"
)

// ServerState is the liveness classification of a monitored server.
type ServerState string

const (
	ServerStateUp   ServerState = "up"
	ServerStateDown ServerState = "down"
)

// ServerRecord is one entry of the monitored fleet. The ID is what the server puts in its heartbeat
// datagrams; the Name is only used in notifications and logs.
type ServerRecord struct {
	ID   uuid.UUID
	Name string
}

type ServerRecordList []ServerRecord

// String returns the identifier of the server.
func (r ServerRecord) String() string {
	return r.ID.String()
}

// ServerStatus is a point-in-time view of one server, served by the status endpoint.
type ServerStatus struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	State         ServerState   `json:"state"`
	LastHeartbeat time.Time     `json:"last_heartbeat"`
	Silence       time.Duration `json:"-"`
	SilenceSecs   float64       `json:"silence_seconds"`
}

type ServerStatusList []ServerStatus
