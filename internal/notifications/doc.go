// Package notifications publishes run outcomes to ntfy.
//
// NewService returns a no-op implementation when no topic is configured so the
// pipeline can call the Service unconditionally.
package notifications
