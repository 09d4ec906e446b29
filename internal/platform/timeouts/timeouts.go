// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between handlers and the
// server lifecycle and makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOpen caps the time spent opening and migrating the prefs store.
const StoreOpen = 10 * time.Second

// TutorialSettle is the pause between the two flips of the tutorial's
// settle step.
const TutorialSettle = 800 * time.Millisecond
