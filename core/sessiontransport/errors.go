package sessiontransport

import "errors"

// ErrExpiredSession is returned when saving a session whose expiry has passed.
var ErrExpiredSession = errors.New("sessiontransport: cannot save expired session")
