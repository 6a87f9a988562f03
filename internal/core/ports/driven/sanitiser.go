package driven

// ContentSanitiser makes untrusted result content safe to render.
type ContentSanitiser interface {
	// Sanitise returns content reduced to an allow-list of tags and attributes.
	Sanitise(content string) string

	// PlainText returns the readable text of content with all markup removed.
	PlainText(content string) string
}
