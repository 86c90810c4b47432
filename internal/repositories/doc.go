// Package repositories implements SQLite persistence for the development task store.
//
// Key Implementations:
//   - [TodoRepository] : todo records with integer ids and soft deletes
//
// Ids are allocated by [NextSequence], which atomically increments a per-table counter kept in a
// dedicated sequence table. Soft-deleted rows keep their id, so ids are never reused.
package repositories
