// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songlist parses markdown song lists into fetchable entries.
//
// Two list shapes are accepted: a numbered list whose items carry a bold
// "Title - Artist" followed by the lyric page URL, and a pipe table with
// index, name, and URL columns.
package songlist

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yakirbe/lyricdeck/pkg/types"
)

var urlPattern = regexp.MustCompile(`https?://[^\s|)]+`)

// ParseFile reads a markdown song list from path.
func ParseFile(path string) ([]types.ListEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading song list: %w", err)
	}
	return Parse(data)
}

// Parse extracts song entries from markdown content. Table rows and
// numbered list items can coexist; entries without an http(s) URL are
// skipped. Entries come back sorted by number.
func Parse(content []byte) ([]types.ListEntry, error) {
	entries := parseListItems(content)
	entries = append(entries, parseTableRows(content)...)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Number < entries[j].Number
	})
	return entries, nil
}

// parseListItems walks the goldmark AST for ordered-list items shaped like
// "N. **Title - Artist**" with a URL somewhere in the item text.
func parseListItems(content []byte) []types.ListEntry {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(content))

	var entries []types.ListEntry
	number := 0
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		list, ok := n.(*gmast.List)
		if !ok || !list.IsOrdered() {
			return gmast.WalkContinue, nil
		}

		number = list.Start
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			title, artist := boldTitle(item, content)
			url := firstURL(item, content)
			if title != "" && url != "" {
				entries = append(entries, types.ListEntry{
					Number: number,
					Title:  title,
					Artist: artist,
					URL:    url,
				})
			}
			number++
		}
		return gmast.WalkSkipChildren, nil
	})
	return entries
}

// boldTitle returns the first emphasized (level 2) text inside a list
// item, split into title and artist on " - ".
func boldTitle(item gmast.Node, content []byte) (title, artist string) {
	var bold string
	_ = gmast.Walk(item, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || bold != "" {
			return gmast.WalkContinue, nil
		}
		if em, ok := n.(*gmast.Emphasis); ok && em.Level == 2 {
			bold = string(nodeText(em, content))
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})

	bold = strings.TrimSpace(bold)
	if bold == "" {
		return "", ""
	}
	if idx := strings.Index(bold, " - "); idx >= 0 {
		return strings.TrimSpace(bold[:idx]), strings.TrimSpace(bold[idx+3:])
	}
	return bold, ""
}

// firstURL returns the first http(s) URL inside a list item, whether it
// appears as an autolink, a link destination, or bare text.
func firstURL(item gmast.Node, content []byte) string {
	var url string
	_ = gmast.Walk(item, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering || url != "" {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			url = string(node.URL(content))
			return gmast.WalkStop, nil
		case *gmast.Link:
			url = string(node.Destination)
			return gmast.WalkStop, nil
		case *gmast.Text:
			if m := urlPattern.FindString(string(node.Segment.Value(content))); m != "" {
				url = m
				return gmast.WalkStop, nil
			}
		}
		return gmast.WalkContinue, nil
	})
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ""
	}
	return url
}

// nodeText concatenates the text segments under a node.
func nodeText(n gmast.Node, content []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*gmast.Text); ok {
				sb.Write(t.Segment.Value(content))
			}
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}

// parseTableRows scans pipe-table lines: | idx | name | url |. Header and
// separator rows are skipped, as are rows without a URL.
func parseTableRows(content []byte) []types.ListEntry {
	var entries []types.ListEntry
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.HasPrefix(line, "|") || strings.Contains(line, "---") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			continue
		}
		idx := strings.TrimSpace(parts[1])
		name := strings.TrimSpace(parts[2])
		rawURL := strings.TrimSpace(parts[3])

		url := urlPattern.FindString(rawURL)
		if name == "" || url == "" {
			continue
		}
		number, err := strconv.Atoi(idx)
		if err != nil {
			continue // header row or malformed index
		}
		entries = append(entries, types.ListEntry{Number: number, Title: name, URL: url})
	}
	return entries
}
