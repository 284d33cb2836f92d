// Package model defines domain entities for the application.
package model

import "time"

// Click represents a single link click event.
// Events are append-only: rows are immutable after insert.
type Click struct {
	ID string `json:"id"` // ULID (time-sortable)

	// Link reference
	LinkName string `json:"link_name"` // Label of the clicked link
	LinkURL  string `json:"link_url"`  // Destination URL

	// Request metadata (client-supplied, unsanitized)
	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"` // Valid IPv4/IPv6 literal or empty, never a placeholder
	Referrer  string `json:"referrer,omitempty"`

	OccurredAt time.Time `json:"occurred_at"` // Server receipt time, never client-supplied
}

// Visit represents a single page load event.
type Visit struct {
	ID string `json:"id"` // ULID (time-sortable)

	// Request metadata (client-supplied, unsanitized)
	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"` // Valid IPv4/IPv6 literal or empty
	Referrer  string `json:"referrer,omitempty"`

	// ReferrerPlatform is derived from Referrer at insert time.
	// Empty iff Referrer is empty.
	ReferrerPlatform string `json:"referrer_platform,omitempty"`

	OccurredAt time.Time `json:"occurred_at"` // Server receipt time
}
