// Package cookie writes and reads HTTP cookies, optionally signed with
// HMAC-SHA256 so the client cannot alter them.
//
//	cookies, err := cookie.New([]string{secret})
//	if err != nil {
//		return err
//	}
//	err = cookies.SetSigned(w, "__session", token, cookie.WithMaxAge(3600))
//	token, err := cookies.GetSigned(r, "__session")
//
// Secrets rotate by prepending: the first one signs, all of them verify.
// From the environment:
//
//	COOKIE_SECRETS="new-secret-at-least-32-characters,old-secret-at-least-32-characters"
//
// Set fails with ErrCookieTooLarge rather than emit a cookie the browser
// would discard.
package cookie
