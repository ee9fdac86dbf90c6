// Package models defines the wire and domain types shared by the moneyflow
// client: the user profile, transactions, reference data, list filters and
// the result envelope returned by login and registration.
package models
