package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Delivery record validation errors
var (
	// ErrDeliveryRecordIDEmpty is returned when a delivery record ID is empty.
	ErrDeliveryRecordIDEmpty = errors.New("delivery record ID cannot be empty")

	// ErrDeliveryRecordTaskIDEmpty is returned when a delivery record has no task ID.
	ErrDeliveryRecordTaskIDEmpty = errors.New("delivery record task ID cannot be empty")

	// ErrDeliveryRecordTimeZero is returned when a delivery record has no reminder time.
	ErrDeliveryRecordTimeZero = errors.New("delivery record reminder time cannot be zero")
)

// ReminderOccurrence is one concrete due instance of a reminder, derived from
// a task's reminder blob. Its identity for deduplication is exactly the pair
// (TaskID, ReminderTime): two occurrences with the same pair are the same
// delivery unit, even when extracted in different scan cycles. There is no
// independent occurrence identifier.
type ReminderOccurrence struct {
	TaskID       string
	TaskTitle    string
	ReminderTime int64  // epoch seconds
	Repeat       string // opaque repeat tag, passed through unchanged
}

// DeliveryRecord is the durable proof that an occurrence was dispatched.
// Created once per delivered occurrence and immutable afterwards; removed
// only by age-based cleanup or when the owning task is deleted.
type DeliveryRecord struct {
	ID           string `json:"id"`
	TaskID       string `json:"task_id"`
	ReminderTime int64  `json:"reminder_time"`
	SentAt       int64  `json:"sent_at"`
	Payload      string `json:"payload"`
}

// deliverySnapshot is the audit payload stored alongside a delivery record.
type deliverySnapshot struct {
	Date   string `json:"date"`
	Repeat string `json:"repeat"`
	Title  string `json:"title"`
}

// NewDeliveryRecord builds the ledger record for a dispatched occurrence,
// snapshotting the normalized date and repeat tag for audit.
func NewDeliveryRecord(occ ReminderOccurrence, sentAt time.Time) (*DeliveryRecord, error) {
	snapshot, err := json.Marshal(deliverySnapshot{
		Date:   time.Unix(occ.ReminderTime, 0).UTC().Format(time.RFC3339),
		Repeat: occ.Repeat,
		Title:  occ.TaskTitle,
	})
	if err != nil {
		return nil, err
	}

	rec := &DeliveryRecord{
		ID:           uuid.New().String(),
		TaskID:       occ.TaskID,
		ReminderTime: occ.ReminderTime,
		SentAt:       sentAt.Unix(),
		Payload:      string(snapshot),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the DeliveryRecord has valid data.
func (r *DeliveryRecord) Validate() error {
	if r.ID == "" {
		return ErrDeliveryRecordIDEmpty
	}

	if r.TaskID == "" {
		return ErrDeliveryRecordTaskIDEmpty
	}

	if r.ReminderTime == 0 {
		return ErrDeliveryRecordTimeZero
	}

	return nil
}
