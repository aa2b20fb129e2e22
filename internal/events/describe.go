package events

import (
	"encoding/json"
	"fmt"
)

// Describe renders a received message as a single human-readable line.
// Payloads on unknown topics are shown verbatim.
func Describe(m Message) (string, error) {
	switch m.Topic {
	case TopicRecordUpserted:
		var e RecordUpserted
		if err := json.Unmarshal(m.Data, &e); err != nil {
			return "", fmt.Errorf("decoding %s: %w", m.Topic, err)
		}
		if e.Record == nil {
			return "", fmt.Errorf("decoding %s: missing record", m.Topic)
		}
		verb := "updated"
		if e.Created {
			verb = "created"
		}
		return fmt.Sprintf("%s %s/%s", verb, e.Record.Kind, e.Record.ID), nil
	case TopicRecordRemoved:
		var e RecordRemoved
		if err := json.Unmarshal(m.Data, &e); err != nil {
			return "", fmt.Errorf("decoding %s: %w", m.Topic, err)
		}
		return fmt.Sprintf("removed %s/%s", e.Kind, e.ID), nil
	case TopicLawyerVerified:
		var e LawyerVerified
		if err := json.Unmarshal(m.Data, &e); err != nil {
			return "", fmt.Errorf("decoding %s: %w", m.Topic, err)
		}
		if e.Lawyer == nil {
			return "", fmt.Errorf("decoding %s: missing lawyer", m.Topic)
		}
		return fmt.Sprintf("verified %s (%s)", e.Lawyer.ID, e.Lawyer.String("name")), nil
	case TopicLawyerRejected:
		var e LawyerRejected
		if err := json.Unmarshal(m.Data, &e); err != nil {
			return "", fmt.Errorf("decoding %s: %w", m.Topic, err)
		}
		if e.Name != "" {
			return fmt.Sprintf("rejected %s (%s)", e.LawyerID, e.Name), nil
		}
		return "rejected " + e.LawyerID, nil
	}
	return fmt.Sprintf("%s %s", m.Topic, m.Data), nil
}
