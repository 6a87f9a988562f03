// Package html provides an allow-list driven.ContentSanitiser for the
// HTML content field of search results.
//
// Sanitise keeps a small set of formatting elements and safe link targets.
// PlainText flattens the same markup into terminal-friendly text.
package html
