// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textile converts Textile markup into BBCode.
//
// The conversion understands hN. headings, @inline code@, <pre><code> blocks
// and nested # / * lists. Everything else is copied through unchanged, so
// Convert is total over its input: it never fails and never rejects markup.
//
// Processing runs in one pass per stage: code blocks are rewritten over the
// whole text first, then each line is classified and dispatched while a
// stack of open list levels keeps the BBCode list tags balanced.
package textile

import "strings"

// Converter converts Textile to BBCode. The zero value is ready to use and
// is safe for concurrent use.
type Converter struct{}

// Convert returns the BBCode rendering of text.
func (Converter) Convert(text string) string {
	return Convert(text)
}

// Convert returns the BBCode rendering of the Textile text. The empty string
// converts to the empty string.
func Convert(text string) string {
	text = replaceCodeBlocks(normalizeNewlines(text))

	var b builder
	for _, raw := range splitLines(text) {
		ln := classify(raw)
		switch {
		case ln.kind == lineListItem:
			b.syncLists(ln.markers)
			b.emit("[*]" + convertInlineCode(strings.TrimSpace(ln.text)))
		case b.inList() && ln.kind == lineBlank:
			b.closeAll()
		case b.inList():
			b.continueLast(convertInlineCode(strings.TrimSpace(raw)))
		case ln.kind == lineHeading:
			b.emit(renderHeading(ln.level, ln.text))
		default:
			b.emit(convertInlineCode(raw))
		}
	}
	b.closeAll()

	return strings.Join(b.lines, "\n")
}

// builder accumulates output lines together with the stack of list levels
// that are currently open.
type builder struct {
	lines []string
	stack []marker
}

func (b *builder) emit(line string) {
	b.lines = append(b.lines, line)
}

// continueLast joins text onto the previous output line, keeping it part of
// the same list item.
func (b *builder) continueLast(text string) {
	last := len(b.lines) - 1
	b.lines[last] += "\n" + text
}

func (b *builder) inList() bool {
	return len(b.stack) > 0
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// splitLines splits text on "\n". A single trailing newline terminates the
// last line rather than starting an empty one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
