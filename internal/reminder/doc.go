// Package reminder implements the reminder scheduling and notification
// dispatch engine.
//
// On a fixed tick the Scheduler reloads notification settings, asks the
// Resolver for reminder occurrences that are due and not yet delivered, and
// hands each one to the Dispatcher, which attempts every configured channel
// and then commits a delivery record to the ledger. Dedup identity is the
// pair (task_id, reminder_time); the durable ledger is what keeps
// overlapping scans, restarts, and long-lived repeats from double-notifying.
//
// The engine favors never missing a reminder over precise timing: an
// undelivered past reminder stays due indefinitely, and delivery marking
// means "attempted", not "confirmed by every channel", so an unreachable
// webhook cannot cause a re-notification storm. Every failure mode degrades
// to "skip this item" or "retry next tick"; nothing here is allowed to take
// the host process down.
package reminder
