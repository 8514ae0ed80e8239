// Package progress turns engine progress callbacks into the ordered event
// sequence streamed to the browser over server-sent events.
package progress
