// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textile

import "regexp"

var inlineCodePattern = regexp.MustCompile(`@(.*?)@`)

// convertInlineCode wraps every @...@ span in [code] tags, left to right.
// An unpaired @ is left as is.
func convertInlineCode(text string) string {
	return inlineCodePattern.ReplaceAllString(text, "[code]${1}[/code]")
}
