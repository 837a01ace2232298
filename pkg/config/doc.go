// Package config loads the date input settings shared by the CLI, the HTTP
// component and the renderers.
//
// Sources are applied in order, later ones winning:
//
//  1. struct defaults (`default` tags)
//  2. an optional YAML file
//  3. .env files, which only fill variables that are not already set
//  4. environment variables prefixed with DATEINPUT_
//
// The result is checked with Validate before it is returned by Load.
package config
