package activity

import (
	"strings"
	"time"
)

// Registry lifecycle verbs emitted by the event builders.
const (
	VerbInjected        = "registry.record.injected"
	VerbSnapshotTaken   = "registry.snapshot.taken"
	VerbSnapshotCleared = "registry.snapshot.cleared"
	VerbReverted        = "registry.record.reverted"
	VerbMerged          = "registry.record.merged"
	VerbEjected         = "registry.record.ejected"
)

// RegistryEventInput describes the common fields for registry lifecycle
// events.
type RegistryEventInput struct {
	Kind       string
	RecordID   string
	SnapshotID string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildInjectedEvent constructs a normalized event for a record entering a
// registry.
func BuildInjectedEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbInjected, input)
}

// BuildSnapshotTakenEvent constructs an event for a snapshot being captured.
func BuildSnapshotTakenEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbSnapshotTaken, input)
}

// BuildSnapshotClearedEvent constructs an event for a snapshot being
// discarded.
func BuildSnapshotClearedEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbSnapshotCleared, input)
}

// BuildRevertedEvent constructs an event for a record restored from its
// snapshot.
func BuildRevertedEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbReverted, input)
}

// BuildMergedEvent constructs an event for a partial update applied over a
// record.
func BuildMergedEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbMerged, input)
}

// BuildEjectedEvent constructs an event for a record leaving a registry.
func BuildEjectedEvent(input RegistryEventInput) Event {
	return buildRegistryEvent(VerbEjected, input)
}

func buildRegistryEvent(verb string, input RegistryEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.SnapshotID != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata["snapshot_id"] = input.SnapshotID
	}

	recordID := strings.TrimSpace(input.RecordID)
	if recordID == "" {
		recordID = strings.TrimSpace(input.SnapshotID)
	}

	return Event{
		Verb:       verb,
		Kind:       strings.TrimSpace(input.Kind),
		RecordID:   recordID,
		SnapshotID: strings.TrimSpace(input.SnapshotID),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
