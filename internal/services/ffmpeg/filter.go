package ffmpeg

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// EscapeDrawtext escapes the characters that terminate or delimit values in
// ffmpeg's filter mini-language. Quotes and colons are both meaningful there;
// leaving them unescaped corrupts the invocation or misrenders the caption.
func EscapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
	)
	return replacer.Replace(text)
}

// BuildDrawtext assembles the caption overlay filter: fixed font, white text
// on a semi-transparent box, centered horizontally with a fixed offset from
// the bottom. The caption is NFC-normalized before escaping so combining
// sequences render consistently across sources.
func BuildDrawtext(fontFile string, fontSize int, text string) string {
	normalized := norm.NFC.String(strings.TrimSpace(text))
	return fmt.Sprintf(
		"drawtext=fontfile=%s:text='%s':fontsize=%d:fontcolor=white:box=1:boxcolor=black@0.5:boxborderw=10:x=(w-text_w)/2:y=h-150",
		fontFile,
		EscapeDrawtext(normalized),
		fontSize,
	)
}
