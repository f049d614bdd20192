// Package tracker implements the page-visit counter.
//
// Each session owns a Counter stored in its SessionData. Every GET or POST
// of the visit page increments the counter of the caller's session by one and
// renders the count together with the session metadata, the caller's address,
// the environment variables matching a configured prefix and runtime details.
//
// Handler works on a copy of the session data and hands the updated session
// back to the session middleware, which persists it once the handler returns.
// Concurrent requests in the same session read the same stored value, so
// their increments can overwrite each other.
package tracker
