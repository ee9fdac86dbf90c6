// Package routes names the navigation targets shared by the session, the
// guard and the front-ends.
package routes

import "strings"

const (
	// AuthPrefix marks the section reachable without a session.
	AuthPrefix = "/auth"

	Login     = AuthPrefix + "/login"
	Register  = AuthPrefix + "/register"
	Dashboard = "/dashboard"
)

// IsAuth reports whether path lies in the auth section.
func IsAuth(path string) bool {
	return strings.HasPrefix(path, AuthPrefix)
}
