package description

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML renders blocks as an HTML fragment. Text is always emitted as
// text nodes, so provider markup can never inject tags.
func RenderHTML(blocks []Block) (string, error) {
	var buf bytes.Buffer
	for _, b := range blocks {
		if err := html.Render(&buf, blockNode(b)); err != nil {
			return "", fmt.Errorf("failed to render description block: %w", err)
		}
	}
	return buf.String(), nil
}

func blockNode(b Block) *html.Node {
	div := element(atom.Div, "description-block")

	for _, line := range b.Lines {
		p := element(atom.P, "")
		appendLine(p, line)
		div.AppendChild(p)
	}

	if len(b.Bullets) > 0 {
		ul := element(atom.Ul, "")
		for _, line := range b.Bullets {
			li := element(atom.Li, "")
			appendLine(li, line)
			ul.AppendChild(li)
		}
		div.AppendChild(ul)
	}
	return div
}

func appendLine(parent *html.Node, line Line) {
	for _, seg := range line {
		text := &html.Node{Type: html.TextNode, Data: seg.Text}
		if !seg.Bold {
			parent.AppendChild(text)
			continue
		}
		strong := element(atom.Strong, "")
		strong.AppendChild(text)
		parent.AppendChild(strong)
	}
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
