// Package cli provides the interactive recipebox command-line client.
//
// The App owns the REPL. Every command resolves to a route path
// (see package router); the route guard decides whether the requested
// screen is shown or the user is redirected, and screens may hand back a
// follow-up route (for example the list after a successful save).
//
// Key features:
//   - Login / Register / Logout, with the session persisted between runs
//   - Recipe list with owner-only actions, optional user and category filters
//   - Recipe view, create and edit
//   - Profiles of the signed-in user and of other users
//
// Authentication state is read from the session store at start and then
// follows its change notifications, including changes made by another
// terminal sharing the same data directory.
package cli
