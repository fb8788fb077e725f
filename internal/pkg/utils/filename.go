package utils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// DownloadFilename turns a display name into a save-as name: every whitespace run
// becomes one underscore, the result is lower-cased and ext is appended.
// "My Demo Clip" + ".mp4" -> "my_demo_clip.mp4".
func DownloadFilename(name, ext string) string {
	base := strings.ToLower(whitespaceRun.ReplaceAllString(name, "_"))
	if base == "" {
		base = "download"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + ext
}
