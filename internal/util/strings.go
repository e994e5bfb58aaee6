// Package util provides common helpers and constants used across paccu.
// It imports no other internal/* package so everything else can depend on it.
package util

import "strings"

// DefaultString returns the fallback value if v is empty or consists entirely
// of whitespace; otherwise it returns v unchanged.
//
// Examples:
//
//	DefaultString("Speakers", "N/A") → "Speakers"
//	DefaultString("",         "N/A") → "N/A"
//	DefaultString("  ",       "N/A") → "N/A"
func DefaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// OrNA substitutes the Missing placeholder for absent server metadata.
//
// PulseAudio leaves optional sink and port fields empty rather than omitting
// them, so an empty string is treated as "not reported".
func OrNA(s string) string {
	return DefaultString(s, Missing)
}
