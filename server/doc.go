// Package server exposes a form over HTTP with gin.
//
// Routes:
//
//	GET  /form        rendered HTML form
//	POST /form        urlencoded submission of the whole form
//	GET  /form/value  current value as JSON
//
// A submission is decoded as a complete set. If the host rejects it the
// response is 422: browsers (Accept: text/html) get the previous form with
// the error message, other clients get a JSON error carrying its phase,
// kind and path.
package server
