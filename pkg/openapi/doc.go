// Package openapi discovers date input widgets declared in OpenAPI 3
// documents. Request body properties with `format: date` become widgets; the
// `x-date-input` extension carries bounds and messages.
package openapi
