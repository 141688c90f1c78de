// Package parsecompare fetches a web page and runs it through two independent
// content extraction engines, returning both outcomes side by side so their
// results can be compared.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, trafilatura/, http/).
package parsecompare
