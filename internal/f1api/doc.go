// Package f1api is a read-only client for the F1 statistics HTTP API.
//
// Every fetch validates the top-level JSON shape before decoding. A non-2xx
// response yields a *StatusError carrying the code; a 2xx response whose body
// has the wrong form yields a *ShapeError, which matches ErrShape.
package f1api
