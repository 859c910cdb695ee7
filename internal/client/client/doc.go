// Package client contains the client-side building blocks that reach outside
// the process.
//
// # Overview
//
//  1. The backend API contract (Client) and its JSON/HTTP implementation
//     (HTTPClient). The bearer token is pulled from a TokenSource on every
//     call, so the session store stays the single owner of the credential.
//  2. Local database bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying the embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError;
// errors.Is matches ErrUnauthorized (401), ErrForbidden (403) and
// ErrNotFound (404) against them. ServerMessage extracts the server's text.
//
// No call is retried.
package client
