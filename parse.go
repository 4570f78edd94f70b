package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RowExtractor turns the raw status page into channel rows. Rows that
// don't look like channel data (headers, separators, vendor chrome) are
// dropped silently; extraction never fails on malformed input.
type RowExtractor interface {
	Extract(body []byte) []ChannelRow
}

func newRowExtractor(name string) (RowExtractor, error) {
	switch name {
	case "pattern":
		return patternExtractor{}, nil
	case "dom":
		return domExtractor{}, nil
	}
	return nil, fmt.Errorf("unknown parser %q", name)
}

// Pairs of adjacent row/cell tags act as the field delimiter, so a line
// like <tr><td>a</td><td>b</td></tr> splits into "", "a", "b", "".
var cellSep = regexp.MustCompile(`</?t[rd]></?t[rd]>`)

// patternExtractor splits each line of the page on adjacent table tags.
// The status page puts one channel per line; the 3rd field is the lock
// status, the 4th the modulation, and the codeword counters sit at the
// end of the row. These indices are coupled to one vendor's layout and
// are not validated against the page's header row.
type patternExtractor struct{}

func (patternExtractor) Extract(body []byte) []ChannelRow {
	var rows []ChannelRow
	for _, line := range strings.Split(string(body), "\n") {
		fields := cellSep.Split(line, -1)
		if len(fields) <= 5 {
			continue
		}
		correctable, err := strconv.ParseUint(fields[len(fields)-3], 10, 64)
		if err != nil {
			continue
		}
		uncorrectable, err := strconv.ParseUint(fields[len(fields)-2], 10, 64)
		if err != nil {
			continue
		}
		rows = append(rows, ChannelRow{
			LockStatus:    fields[2],
			Modulation:    fields[3],
			Correctable:   correctable,
			Uncorrectable: uncorrectable,
		})
	}
	return rows
}

// domExtractor walks a structural parse of the page and applies the
// same column mapping to every table row, wherever the row sits in the
// document. Cell text is whitespace-trimmed, which the pattern
// extractor does not do.
type domExtractor struct{}

func (domExtractor) Extract(body []byte) []ChannelRow {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var rows []ChannelRow
	walkRows(doc, func(cells []string) {
		if row, ok := rowFromCells(cells); ok {
			rows = append(rows, row)
		}
	})
	return rows
}

func rowFromCells(cells []string) (ChannelRow, bool) {
	if len(cells) < 4 {
		return ChannelRow{}, false
	}
	correctable, err := strconv.ParseUint(cells[len(cells)-2], 10, 64)
	if err != nil {
		return ChannelRow{}, false
	}
	uncorrectable, err := strconv.ParseUint(cells[len(cells)-1], 10, 64)
	if err != nil {
		return ChannelRow{}, false
	}
	return ChannelRow{
		LockStatus:    cells[1],
		Modulation:    cells[2],
		Correctable:   correctable,
		Uncorrectable: uncorrectable,
	}, true
}

func walkRows(n *html.Node, emit func([]string)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectCells(c, &cells)
		}
		emit(cells)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkRows(c, emit)
	}
}

func collectCells(n *html.Node, cells *[]string) {
	if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
		*cells = append(*cells, strings.TrimSpace(textContent(n)))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCells(c, cells)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
