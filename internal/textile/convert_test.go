// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestConvert_Headings(t *testing.T) {
	sizes := []string{"18pt", "16pt", "14pt", "12pt", "10pt", "8pt"}
	for i, size := range sizes {
		level := i + 1
		t.Run(fmt.Sprintf("h%d", level), func(t *testing.T) {
			got := Convert(fmt.Sprintf("h%d.   Release notes  ", level))
			assert.Equal(t, fmt.Sprintf("[SIZE=%s][B]Release notes[/B][/SIZE]", size), got)
		})
	}
}

func TestConvert_Lines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty input", in: "", want: ""},
		{name: "plain text untouched", in: "just some text", want: "just some text"},
		{name: "heading keeps inline code markers", in: "h2. Use @go test@", want: "[SIZE=16pt][B]Use @go test@[/B][/SIZE]"},
		{name: "heading level out of range", in: "h7. Title", want: "h7. Title"},
		{name: "heading without space", in: "h1.Title", want: "h1.Title"},
		{name: "two inline spans", in: "text @X@ more @Y@", want: "text [code]X[/code] more [code]Y[/code]"},
		{name: "empty inline span", in: "a @@ b", want: "a [code][/code] b"},
		{name: "unpaired at sign", in: "mail me @ home", want: "mail me @ home"},
		{name: "odd at signs", in: "@a@b@", want: "[code]a[/code]b@"},
		{name: "blank lines outside lists kept", in: lines("a", "", "b"), want: lines("a", "", "b")},
		{name: "trailing newline dropped", in: "h1. Title\n", want: "[SIZE=18pt][B]Title[/B][/SIZE]"},
		{name: "only a newline", in: "\n", want: ""},
		{name: "hashtag is not a list", in: "#hashtag", want: "#hashtag"},
		{name: "bold-looking stars are not a list", in: "**bold** words", want: "**bold** words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.in))
		})
	}
}

func TestConvert_CodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "with language",
			in:   "<pre><code class=\"python\">\nprint('hi')\n</code></pre>",
			want: lines("[CODE]", "&#91;code=python&#93;", "print('hi')", "&#91;/code&#93;", "[/CODE]"),
		},
		{
			name: "without language",
			in:   "<pre><code>\nx = 1\n</code></pre>",
			want: lines("[CODE]", "&#91;code&#93;", "x = 1", "&#91;/code&#93;", "[/CODE]"),
		},
		{
			name: "tags are case-insensitive and language is lowered",
			in:   `<PRE><CODE class="Go">fmt.Println()</CODE></PRE>`,
			want: lines("[CODE]", "&#91;code=go&#93;", "fmt.Println()", "&#91;/code&#93;", "[/CODE]"),
		},
		{
			name: "indentation inside body preserved",
			in:   "<pre><code>\n\n    indented\n    more\n\n</code></pre>",
			want: lines("[CODE]", "&#91;code&#93;", "    indented", "    more", "&#91;/code&#93;", "[/CODE]"),
		},
		{
			name: "surrounding text",
			in:   lines("before", "<pre><code>x</code></pre>", "after"),
			want: lines("before", "[CODE]", "&#91;code&#93;", "x", "&#91;/code&#93;", "[/CODE]", "after"),
		},
		{
			name: "two blocks",
			in:   `<pre><code class="sh">ls</code></pre> and <pre><code>pwd</code></pre>`,
			want: lines("[CODE]", "&#91;code=sh&#93;", "ls", "&#91;/code&#93;", "[/CODE] and [CODE]", "&#91;code&#93;", "pwd", "&#91;/code&#93;", "[/CODE]"),
		},
		{
			name: "unterminated block left verbatim",
			in:   "<pre><code>x = 1",
			want: "<pre><code>x = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.in))
		})
	}
}

func TestConvert_Lists(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested ordered list then plain line",
			in:   lines("# A", "## B", "# C", "", "D"),
			want: lines("[list=1]", "[*]A", "[list=1]", "[*]B", "[/list]", "[*]C", "[/list]", "D"),
		},
		{
			name: "unordered list closed at end of input",
			in:   lines("* a", "* b"),
			want: lines("[list]", "[*]a", "[*]b", "[/list]"),
		},
		{
			name: "kind change at same depth reopens",
			in:   lines("# a", "* b"),
			want: lines("[list=1]", "[*]a", "[/list]", "[list]", "[*]b", "[/list]"),
		},
		{
			name: "deep jump opens intermediate levels",
			in:   lines("# a", "### b"),
			want: lines("[list=1]", "[*]a", "[list=1]", "[list=1]", "[*]b", "[/list]", "[/list]", "[/list]"),
		},
		{
			name: "mixed markers nest unordered in ordered",
			in:   lines("# a", "#* b", "# c"),
			want: lines("[list=1]", "[*]a", "[list]", "[*]b", "[/list]", "[*]c", "[/list]"),
		},
		{
			name: "continuation joins previous item",
			in:   lines("# a", "continued @x@", "# b"),
			want: lines("[list=1]", "[*]a", "continued [code]x[/code]", "[*]b", "[/list]"),
		},
		{
			name: "heading inside list is a continuation",
			in:   lines("* a", "h1. T"),
			want: lines("[list]", "[*]a", "h1. T", "[/list]"),
		},
		{
			name: "item content trimmed and inline converted",
			in:   "*   use @go vet@   ",
			want: lines("[list]", "[*]use [code]go vet[/code]", "[/list]"),
		},
		{
			name: "empty item",
			in:   "# ",
			want: lines("[list=1]", "[*]", "[/list]"),
		},
		{
			name: "whitespace-only line closes list",
			in:   lines("* a", "   ", "b"),
			want: lines("[list]", "[*]a", "[/list]", "b"),
		},
		{
			name: "blank line closes every level",
			in:   lines("* a", "** b", "*** c", "", "text"),
			want: lines("[list]", "[*]a", "[list]", "[*]b", "[list]", "[*]c", "[/list]", "[/list]", "[/list]", "text"),
		},
		{
			name: "crlf line endings",
			in:   "* a\r\n* b\r\n",
			want: lines("[list]", "[*]a", "[*]b", "[/list]"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.in))
		})
	}
}

func TestConvert_ContinuationDoesNotOpenLevel(t *testing.T) {
	got := Convert(lines("* a", "more text", "still more"))
	assert.Equal(t, 1, strings.Count(got, "[list]"))
	assert.Equal(t, 1, strings.Count(got, "[/list]"))
	assert.Equal(t, lines("[list]", "[*]a", "more text", "still more", "[/list]"), got)
}

func TestConvert_NoInlineCodeWithoutAtSign(t *testing.T) {
	for _, in := range []string{"plain", "h3. Title", "* item", "# one\n## two", "a\n\nb"} {
		assert.NotContains(t, Convert(in), "[code]", "input %q", in)
	}
}

func TestConvert_OutputIsStable(t *testing.T) {
	inputs := []string{
		lines("# A", "## B", "# C", "", "D"),
		"h1. Title",
		"text @X@ more @Y@",
		"<pre><code class=\"python\">\nprint('hi')\n</code></pre>",
	}
	for _, in := range inputs {
		out := Convert(in)
		assert.Equal(t, out, Convert(out), "converting %q twice", in)
	}
}

// TestConvert_ListNestingProperty feeds random sequences of list items,
// blank lines and plain text through Convert and checks that every [*] sits
// at exactly the nesting its markers ask for, and that every list is closed.
func TestConvert_ListNestingProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 200; round++ {
		var (
			in       []string
			expected [][]marker
		)
		n := 1 + rng.IntN(25)
		for i := 0; i < n; i++ {
			switch rng.IntN(6) {
			case 0:
				in = append(in, "")
			case 1:
				in = append(in, "plain text")
			default:
				run := make([]byte, 1+rng.IntN(4))
				for j := range run {
					run[j] = "#*"[rng.IntN(2)]
				}
				in = append(in, fmt.Sprintf("%s item-%d", run, len(expected)))
				expected = append(expected, parseMarkers(string(run)))
			}
		}

		out := Convert(lines(in...))

		var open []marker
		item := 0
		for _, l := range strings.Split(out, "\n") {
			switch {
			case l == "[list=1]":
				open = append(open, markerOrdered)
			case l == "[list]":
				open = append(open, markerUnordered)
			case l == "[/list]":
				require.NotEmpty(t, open, "close without open in %q", out)
				open = open[:len(open)-1]
			case strings.HasPrefix(l, "[*]"):
				require.Less(t, item, len(expected))
				assert.Equal(t, fmt.Sprintf("[*]item-%d", item), l)
				assert.Equal(t, expected[item], open, "nesting for item %d in %q", item, out)
				item++
			}
		}
		assert.Empty(t, open, "unclosed lists in %q", out)
		assert.Equal(t, len(expected), item)
	}
}

func TestEscapeBBCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"no brackets", "no brackets"},
		{"[b]x[/b]", "&#91;b&#93;x&#91;/b&#93;"},
		{"[code=go]", "&#91;code=go&#93;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeBBCode(tt.in))
	}
}

func TestConverter_ZeroValue(t *testing.T) {
	var c Converter
	assert.Equal(t, "[code]x[/code]", c.Convert("@x@"))
}
