// Package domain holds the values Sift passes between layers: search
// results and their file types, palette actions, integration credentials,
// history entries and settings, plus the sentinel errors callers match
// with errors.Is.
//
// It imports the standard library only.
package domain
