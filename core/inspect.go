package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageSummary is what a rendered placeholder actually says, read back from
// its HTML.
type PageSummary struct {
	Heading   string
	Command   string
	DocsURL   string
	DocsTitle string
}

func InspectPage(body []byte) (PageSummary, error) {
	var summary PageSummary

	z := html.NewTokenizer(bytes.NewReader(body))
	var current atom.Atom
	var text strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				if summary.Heading == "" {
					return summary, fmt.Errorf("no heading found: %w", ErrInvalidPage)
				}
				return summary, nil
			}
			return summary, z.Err()
		case html.StartTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.H1, atom.Code:
				current = tok.DataAtom
				text.Reset()
			case atom.A:
				current = tok.DataAtom
				text.Reset()
				for _, attr := range tok.Attr {
					if attr.Key == "href" && summary.DocsURL == "" {
						summary.DocsURL = attr.Val
					}
				}
			}
		case html.TextToken:
			if current != 0 {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom != current {
				continue
			}
			switch current {
			case atom.H1:
				if summary.Heading == "" {
					summary.Heading = text.String()
				}
			case atom.Code:
				if summary.Command == "" {
					summary.Command = text.String()
				}
			case atom.A:
				if summary.DocsTitle == "" {
					summary.DocsTitle = text.String()
				}
			}
			current = 0
		}
	}
}
