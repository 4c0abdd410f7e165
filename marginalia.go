// Package marginalia is a content-annotation engine for a personal
// publishing site. It scans rendered prose for capitalized Defined Terms,
// rewrites matches into glossary links carrying hover-preview data, and
// computes the layout of marginal annotations (definition popups and
// Tufte-style sidenotes) for desktop and mobile viewports.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, yaml/).
package marginalia
