// Package subtitle parses SRT documents into timed lyric cues.
package subtitle

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cue is one timed line of lyric text. Times are seconds from the start
// of the video, rounded to millisecond precision.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

var (
	blockSplitRe = regexp.MustCompile(`\n\s*\n`)
	timestampRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{3})`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
)

// Parse extracts cues from SRT content. Malformed blocks are dropped,
// never reported: the worst case for garbage input is an empty result.
// Cues come back in source order.
func Parse(content string) []Cue {
	var cues []Cue

	for _, block := range blockSplitRe.Split(strings.TrimSpace(content), -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// Everything before the arrow line is the block index, everything
		// after it is cue text.
		var textLines []string
		timestampLine := ""
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timestampLine = line
				textLines = lines[i+1:]
				break
			}
		}
		if timestampLine == "" {
			continue
		}

		m := timestampRe.FindStringSubmatch(strings.TrimSpace(timestampLine))
		if m == nil {
			continue
		}

		text := strings.TrimSpace(tagRe.ReplaceAllString(strings.Join(textLines, " "), ""))
		if text == "" {
			continue
		}

		cues = append(cues, Cue{
			Start: toSeconds(m[1], m[2], m[3], m[4]),
			End:   toSeconds(m[5], m[6], m[7], m[8]),
			Text:  text,
		})
	}

	return cues
}

func toSeconds(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)

	total := float64(hours*3600+minutes*60+seconds) + float64(millis)/1000

	return math.Round(total*1000) / 1000
}
