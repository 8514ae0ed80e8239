package model

// Package model defines the data shared between the engine adapter, the
// orchestration services and the HTTP layer: video references, engine stream
// descriptors, quality tiers, credentials, download sessions and progress
// payloads.
