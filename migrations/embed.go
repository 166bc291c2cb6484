package migrations

import "embed"

// Files holds the forward-only SQL schema shared by the SQLite and Postgres
// user stores.
//
//go:embed *.sql
var Files embed.FS
