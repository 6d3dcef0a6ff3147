package reminder

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
)

// reminderSpec mirrors one entry of a task's reminders blob as written by
// the client: an absolute RFC 3339 timestamp plus an opaque repeat tag.
type reminderSpec struct {
	Date   string `json:"date"`
	Repeat string `json:"repeat"`
}

// Extract parses a task's reminder blob into normalized occurrences.
//
// The blob is treated as untrusted input: an entry without a parseable date
// is inert and skipped, and a blob that fails to decode at all yields no
// occurrences. Neither case is an error; a single malformed task must never
// abort scanning of the remaining tasks. The caller is responsible for
// excluding completed tasks before extraction.
func Extract(task domain.Task) []domain.ReminderOccurrence {
	if strings.TrimSpace(task.Reminders) == "" {
		return nil
	}

	// Decode the list loosely so one malformed entry doesn't poison the
	// rest of the blob.
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(task.Reminders), &entries); err != nil {
		return nil
	}

	var occurrences []domain.ReminderOccurrence
	for _, raw := range entries {
		var spec reminderSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			continue
		}
		if spec.Date == "" {
			continue
		}

		when, err := time.Parse(time.RFC3339, spec.Date)
		if err != nil {
			continue
		}

		repeat := spec.Repeat
		if repeat == "" {
			repeat = "none"
		}

		occurrences = append(occurrences, domain.ReminderOccurrence{
			TaskID:       task.ID,
			TaskTitle:    task.Title,
			ReminderTime: when.Unix(),
			Repeat:       repeat,
		})
	}

	return occurrences
}
