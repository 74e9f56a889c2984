// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

import (
	"regexp"
	"strings"
)

var codeBlockPattern = regexp.MustCompile(`(?is)<pre><code(?: class="([^"]+)")?>(.*?)</code></pre>`)

// bbcodeEscapes lists literal/escaped pairs for strings.NewReplacer.
var bbcodeEscapes = []string{
	"[", "&#91;",
	"]", "&#93;",
}

var bbcodeEscaper = strings.NewReplacer(bbcodeEscapes...)

// EscapeBBCode replaces square brackets with HTML character references so a
// forum renders them as text instead of parsing them as tags.
func EscapeBBCode(s string) string {
	return bbcodeEscaper.Replace(s)
}

// replaceCodeBlocks rewrites every <pre><code> block in text. Blocks without
// a closing </code></pre> are left untouched.
func replaceCodeBlocks(text string) string {
	matches := codeBlockPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		var lang string
		if m[2] >= 0 {
			lang = text[m[2]:m[3]]
		}
		b.WriteString(renderCodeBlock(lang, text[m[4]:m[5]]))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// renderCodeBlock wraps body in [CODE] tags. The inner [code=lang] and
// [/code] markers are escaped so they show up literally; the body is not.
func renderCodeBlock(lang, body string) string {
	open := "[code]"
	if lang != "" {
		open = "[code=" + strings.ToLower(lang) + "]"
	}
	return strings.Join([]string{
		"[CODE]",
		EscapeBBCode(open),
		strings.Trim(body, "\n"),
		EscapeBBCode("[/code]"),
		"[/CODE]",
	}, "\n")
}
