// Package auth resolves the cookie credential handed to the engine, probes
// whether it is good enough for a video, and recognizes engine failures that
// mean the viewer has to sign in.
package auth
