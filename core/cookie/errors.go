package cookie

import (
	"errors"
	"fmt"
)

var (
	ErrNoSecret         = errors.New("cookie: at least one signing secret is required")
	ErrSecretTooShort   = errors.New("cookie: signing secret is too short")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: malformed signed value")
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
)

// ErrCookieTooLarge is returned by Set when the serialized cookie would
// exceed the manager's size limit. Browsers drop such cookies silently.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie: %q is %d bytes, limit is %d", e.Name, e.Size, e.Max)
}
