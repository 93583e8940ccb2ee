package typedoc

import "strings"

// Comment is the documentation attached to a reflection. A plain string
// comment lands in Text.
type Comment struct {
	ShortText string
	Text      string
	Returns   string
	Tags      []CommentTag
}

// CommentTag is a block tag such as @param or @deprecated.
type CommentTag struct {
	Tag       string
	Text      string
	ParamName string
}

// String returns the free-form text: the short text, then the body.
func (c *Comment) String() string {
	if c == nil {
		return ""
	}
	var parts []string
	for _, s := range []string{c.ShortText, c.Text} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Tag returns the first tag named name, without the leading "@".
func (c *Comment) Tag(name string) (CommentTag, bool) {
	if c == nil {
		return CommentTag{}, false
	}
	name = strings.TrimPrefix(name, "@")
	for _, t := range c.Tags {
		if strings.TrimPrefix(t.Tag, "@") == name {
			return t, true
		}
	}
	return CommentTag{}, false
}
