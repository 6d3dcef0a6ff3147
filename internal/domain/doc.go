// Package domain defines the core entities of the task manager: tasks and
// task lists, the reminder occurrences derived from them, the delivery
// records that deduplicate notifications, and the user settings blobs.
// Entities validate themselves; persistence and transport live elsewhere.
package domain
