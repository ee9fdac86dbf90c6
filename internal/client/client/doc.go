// Package client contains the transport layer of the moneyflow client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the users, transactions and reference-data endpoints of the Money Flow
//     REST API.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that attaches
//     bearer credentials and request IDs, and classifies every failure.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns an *APIError whose Kind is one of a closed set:
// KindUnauthorized, KindNotFound, KindValidation, KindNetwork, KindUnknown.
// Callers switch on KindOf(err) or match sentinels with errors.Is:
// ErrUnauthorized, ErrNotFound, ErrValidation, ErrUnavailable.
//
// The client never refreshes tokens itself; that policy lives in the
// session service, which wraps authenticated calls.
package client
