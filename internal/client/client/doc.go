// Package client contains the request layer of the member client.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, the unauthenticated request client: one attempt per call,
//     a per-request timeout, JSON bodies and a request id header.
//  2. AuthClient, which reads the stored session, attaches the bearer token
//     and clears the session when the backend answers 401.
//  3. API, routing a request to one of the two by its Authenticated flag.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations), wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind (timeout, network, server-4xx,
// server-5xx, auth-expired) and a user-facing message. Kinds are matched with
// errors.Is against ErrTimeout, ErrNetwork, ErrClient, ErrServer and
// ErrAuthExpired.
//
// Both clients are safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
