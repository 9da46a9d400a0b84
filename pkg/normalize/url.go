package normalize

import "regexp"

// markdownLink matches "[label](target)" anywhere in the value and captures
// the target.
var markdownLink = regexp.MustCompile(`\[.*?\]\((.*?)\)`)

// CleanURL returns the target of a markdown link, or raw unchanged when it is
// not markdown-wrapped. The result is not validated as a URL.
func CleanURL(raw string) string {
	if raw == "" {
		return ""
	}

	if m := markdownLink.FindStringSubmatch(raw); len(m) > 1 && m[1] != "" {
		return m[1]
	}

	return raw
}
