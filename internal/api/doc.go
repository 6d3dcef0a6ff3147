// Package api implements the HTTP interface of the task server: task and
// list CRUD, settings, WebDAV backup operations, and the manual reminder
// check trigger. Handlers translate store and service errors into sanitized
// JSON error responses; they never expose internal error strings to clients.
package api
