package bridge

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

const (
	maxFilenameLen    = 64
	maxCaptionLen     = 200
	captionTimeLayout = "2006-01-02 15:04:05"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// EstimateSizeMB approximates the decoded size of a base64 payload in MiB
// without decoding it: four encoded characters carry three raw bytes.
// Padding is ignored, so the result can be off by up to two bytes, which
// does not matter at whole-MiB granularity.
func EstimateSizeMB(encoded string) int {
	return int(math.Round(float64(len(encoded)) * 3 / 4 / 1024 / 1024))
}

// SanitizeFilename normalizes a user-supplied filename into a safe token:
// characters outside [A-Za-z0-9._-] become underscores and the result is
// capped at 64 characters. An empty name gets a generated placeholder.
func SanitizeFilename(name string) string {
	if name == "" {
		return fmt.Sprintf("media_%d.bin", time.Now().UnixMilli())
	}
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(safe) > maxFilenameLen {
		safe = safe[:maxFilenameLen]
	}
	return safe
}

// BuildCaption derives the two-line forward caption from the sender
// address and the message timestamp (whole seconds since epoch),
// truncated to 200 characters.
func BuildCaption(sender string, timestamp int64) string {
	when := time.Unix(timestamp, 0).Format(captionTimeLayout)
	caption := fmt.Sprintf("Media from %s\nReceived %s", sender, when)
	if len(caption) > maxCaptionLen {
		caption = caption[:maxCaptionLen]
	}
	return caption
}
