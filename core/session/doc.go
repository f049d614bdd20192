// Package session provides generic, store-agnostic session management.
//
// A Session[Data] carries application-defined data next to its identity
// (ID and rotatable Token), client metadata and lifecycle timestamps. Sessions
// are values: handlers mutate a copy and hand it back to the Manager, which
// decides whether the store must be written.
//
// # Core Components
//
//   - Session[Data]: session value with typed application data
//   - Manager[Data]: lifecycle operations (create, load, store, cleanup)
//   - Store[Data]: persistence interface
//   - MemoryStore[Data]: concurrent in-process Store implementation
//
// # Basic Usage
//
//	type Data struct {
//		Theme string `json:"theme"`
//	}
//
//	manager := session.NewManager[Data](
//		session.NewMemoryStore[Data](),
//		session.WithTTL(24*time.Hour),
//		session.WithTouchInterval(5*time.Minute),
//	)
//
//	sess, err := manager.New(ctx, session.NewSessionParams{IP: ip})
//	if err != nil {
//		return err
//	}
//	sess.SetData(Data{Theme: "dark"})
//	sess, err = manager.Store(ctx, sess)
//
// # Expiration
//
// Expiry is sliding: Manager.Store extends ExpiresAt to now+TTL once at least
// TouchInterval has passed since the last extension. Expired sessions are
// rejected by GetByID and GetByToken with ErrExpired and removed from the
// store by CleanupExpired, which RunCleanup calls periodically.
//
// # Data Isolation
//
// Data types holding references should implement Cloner so MemoryStore can
// deep-copy them on the way in and out.
package session
