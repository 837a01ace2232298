// Package dateinput exposes the date segment validator over HTTP so server
// rendered forms can validate day, month and year fields without a client
// runtime.
//
// The handler answers GET and POST requests on /api/date-input/validate. The
// day, month and year parameters are read from the query string or a form
// body. The response is JSON ({"value","valid","errors"}) with status 200
// when the date is valid and 422 when it is not. Passing format=html renders
// the widget fragment instead when a Renderer is configured.
//
// Every request builds a fresh widget. Bounds should be literal or linked;
// a dateinput.Feed can be passed as a linked bound to follow its latest
// value across requests.
package dateinput
