// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are checked first, in this order: CF-Connecting-IP,
// DO-Connecting-IP, X-Forwarded-For (leftmost entry) and X-Real-IP. Values
// that do not parse as an IP are skipped. Without a usable header the host
// part of RemoteAddr is returned.
//
//	ip := clientip.GetIP(r)
//
// Headers are trusted as sent. Deploy behind a proxy that overwrites them.
package clientip
