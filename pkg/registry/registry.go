package registry

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/openshift-online/heartbeat/pkg/api"
	"github.com/openshift-online/heartbeat/pkg/config"
	"github.com/openshift-online/heartbeat/pkg/errors"
)

// Registry is the fixed fleet of monitored servers. It is built once at startup and never
// mutated afterwards, so it is safe for concurrent readers without locking.
type Registry struct {
	names map[uuid.UUID]string
	ids   []uuid.UUID
}

// Load builds a Registry from the configured roster. Every entry needs a name and a valid uuid in
// any of the usual spellings (hyphenated, 32 hex digits, braced or urn:uuid:). When the same uuid
// is listed twice the last entry wins.
func Load(entries []config.ServerEntry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.ConfigError("the server roster is empty")
	}

	names := make(map[uuid.UUID]string, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return nil, errors.ConfigError("server #%d has no name", i)
		}
		if entry.UUID == "" {
			return nil, errors.ConfigError("server %q has no uuid", entry.Name)
		}
		id, err := uuid.Parse(entry.UUID)
		if err != nil {
			return nil, errors.ConfigError("server %q has a malformed uuid %q: %v", entry.Name, entry.UUID, err)
		}
		if previous, found := names[id]; found {
			klog.V(2).Infof("server %s is listed more than once, %q replaces %q", id, entry.Name, previous)
		}
		names[id] = entry.Name
	}

	ids := make([]uuid.UUID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	return &Registry{names: names, ids: ids}, nil
}

// Get returns the record of a registered server.
func (r *Registry) Get(id uuid.UUID) (api.ServerRecord, bool) {
	name, found := r.names[id]
	if !found {
		return api.ServerRecord{}, false
	}
	return api.ServerRecord{ID: id, Name: name}, true
}

// Name returns the display name of id, or an empty string for an unknown server.
func (r *Registry) Name(id uuid.UUID) string {
	return r.names[id]
}

// Contains reports whether id is part of the fleet.
func (r *Registry) Contains(id uuid.UUID) bool {
	_, found := r.names[id]
	return found
}

// IDs returns the registered identifiers in a stable order.
func (r *Registry) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// Records returns every registered server in the same order as IDs.
func (r *Registry) Records() api.ServerRecordList {
	records := make(api.ServerRecordList, 0, len(r.ids))
	for _, id := range r.ids {
		records = append(records, api.ServerRecord{ID: id, Name: r.names[id]})
	}
	return records
}

func (r *Registry) Len() int {
	return len(r.ids)
}
