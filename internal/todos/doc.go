// Package todos holds the Work/Travel to-do list state.
//
// Store owns the id -> record mapping and writes the whole mapping to the
// persistence backend after every change. ModeStore owns the active
// category, persisted under its own key. Both hydrate once from the
// backend; a missing or unreadable value loads as empty (records) or Work
// (mode), with a warning logged for the unreadable case.
//
// The editing flag a front end toggles while a row is being rewritten is
// kept in memory only and never reaches the backend.
package todos
