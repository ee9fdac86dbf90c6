// Package cli provides the interactive Money Flow shell.
//
// App drives a session and a transactions store from a line-oriented REPL.
// Every command names a route, and the route guard decides whether it may
// run: anonymous users are sent to the login prompt, signed-in users typing
// login or register land on the dashboard instead. A background watcher
// pings the API and shows online/offline in the prompt.
//
// The shell is started with App.Run, which blocks until the user exits.
package cli
