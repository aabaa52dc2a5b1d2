// Package description turns the markup of mobile.de ad descriptions into
// structured blocks.
//
// The markup knows four tokens: "\\" is a line break, a run of four or
// more hyphens separates blocks, a line starting with "* " is a bullet
// and "**text**" is bold.
package description

import (
	"iter"
	"regexp"
	"strings"
)

// Segment is a run of text with uniform weight
type Segment struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Line is one rendered line of segments
type Line []Segment

// Block groups the plain lines and bullet lines between two separators
type Block struct {
	Lines   []Line `json:"lines"`
	Bullets []Line `json:"bullets"`
}

var separator = regexp.MustCompile(`\n?-{4,}\n?`)

// Parse returns the blocks of text as a lazy sequence. Each range over the
// result re-reads text from the start; blocks are split only as far as the
// consumer iterates.
func Parse(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}
		rest := strings.ReplaceAll(text, `\\`, "\n")
		for rest != "" {
			var raw string
			loc := separator.FindStringIndex(rest)
			if loc == nil {
				raw, rest = rest, ""
			} else {
				raw, rest = rest[:loc[0]], rest[loc[1]:]
			}

			block, ok := parseBlock(raw)
			if !ok {
				continue
			}
			if !yield(block) {
				return
			}
		}
	}
}

// Blocks collects Parse(text) into a slice
func Blocks(text string) []Block {
	blocks := []Block{}
	for b := range Parse(text) {
		blocks = append(blocks, b)
	}
	return blocks
}

func parseBlock(raw string) (Block, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Block{}, false
	}

	block := Block{Lines: []Line{}, Bullets: []Line{}}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "* ") {
			block.Bullets = append(block.Bullets, ParseInline(strings.TrimSpace(line[2:])))
			continue
		}
		block.Lines = append(block.Lines, ParseInline(line))
	}
	return block, true
}

// ParseInline splits text on "**" pairs. An opening marker without a
// closing one leaves the rest of the text literal, marker included.
func ParseInline(text string) Line {
	line := Line{}
	i := 0
	for i < len(text) {
		start := strings.Index(text[i:], "**")
		if start < 0 {
			line = appendSegment(line, text[i:], false)
			break
		}
		start += i

		end := strings.Index(text[start+2:], "**")
		if end < 0 {
			line = appendSegment(line, text[i:], false)
			break
		}
		end += start + 2

		line = appendSegment(line, text[i:start], false)
		line = appendSegment(line, text[start+2:end], true)
		i = end + 2
	}
	return line
}

func appendSegment(line Line, text string, bold bool) Line {
	if text == "" {
		return line
	}
	return append(line, Segment{Text: text, Bold: bold})
}

// PlainText flattens a line back to its text without markers
func (l Line) PlainText() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}
