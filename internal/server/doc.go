// Package server is the HTTP surface of the service: the JSON API used by the
// browser UI, the server-sent event download stream and the static UI files.
package server
