package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"rsift/app/cfg"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run serializes the channel metadata and items back into an RSS 2.0
// document. The output is deterministic for a given input: no wall-clock
// timestamps are introduced, so filtering an already-filtered feed
// reproduces it byte for byte.
func (g *Generator) Run(metadata *Metadata, items []Item) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", metadata.Title, 4)
	g.writeElement(&buf, "link", metadata.Link, 4)
	g.writeElement(&buf, "description", metadata.Description, 4)

	// Self link only when the published URL is known; a localhost fallback
	// would leak into the published document.
	if feedUrl := cfg.Get().FeedUrl; feedUrl != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(feedUrl)))
	}

	g.writeElement(&buf, "copyright", metadata.Copyright, 4)
	g.writeElement(&buf, "managingEditor", metadata.ManagingEditor, 4)
	g.writeElement(&buf, "webMaster", metadata.WebMaster, 4)

	if metadata.FeedPublishedAt != nil {
		g.writeElement(&buf, "pubDate", metadata.FeedPublishedAt.Format(time.RFC1123Z), 4)
	}

	if lastBuildDate := g.lastBuildDate(metadata, items); lastBuildDate != nil {
		g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	}

	for _, category := range metadata.Categories {
		g.writeElement(&buf, "category", category, 4)
	}

	// The input's own generator tag survives; this tool only signs feeds
	// that carried none.
	g.writeElement(&buf, "generator", cmp.Or(metadata.Generator, fmt.Sprintf("rsift/%s", cfg.Get().Version)), 4)

	g.writeElement(&buf, "docs", metadata.Docs, 4)
	g.writeElement(&buf, "rating", metadata.Rating, 4)
	g.writeElement(&buf, "ttl", metadata.TTL, 4)

	if metadata.Language != "" {
		g.writeElement(&buf, "language", metadata.Language, 4)
	}

	if metadata.ImageURL != "" {
		buf.WriteString("    <image>\n")
		g.writeElement(&buf, "url", metadata.ImageURL, 6)
		g.writeElement(&buf, "title", cmp.Or(metadata.ImageTitle, metadata.Title), 6)
		g.writeElement(&buf, "link", cmp.Or(metadata.ImageLink, metadata.Link), 6)
		buf.WriteString("    </image>\n")
	}

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

// lastBuildDate prefers the feed's own updated timestamp and falls back to
// the newest item. Nil when the feed carries no dates at all.
func (g *Generator) lastBuildDate(metadata *Metadata, items []Item) *time.Time {
	if metadata.FeedUpdatedAt != nil {
		return metadata.FeedUpdatedAt
	}

	var newest *time.Time
	for _, item := range items {
		if item.PublishedAt != nil && (newest == nil || item.PublishedAt.After(*newest)) {
			newest = item.PublishedAt
		}
	}
	return newest
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	if item.GUID != "" {
		// The isPermaLink attribute is carried verbatim; when the input had
		// none the element stays bare so the RSS default (true) still applies.
		if item.GUIDIsPermaLink != "" {
			buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%s\">", html.EscapeString(item.GUIDIsPermaLink)))
		} else {
			buf.WriteString("      <guid>")
		}
		xml.EscapeText(buf, []byte(item.GUID))
		buf.WriteString("</guid>\n")
	}

	if item.Title != "" {
		g.writeElement(buf, "title", item.Title, 6)
	}

	if item.Link != "" {
		g.writeElement(buf, "link", item.Link, 6)
	}

	g.writeElement(buf, "description", item.Description, 6)

	if item.Content != "" && item.Content != item.Description {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(item.Content)
		buf.WriteString("]]></content:encoded>\n")
	}

	g.writeElement(buf, "comments", item.Comments, 6)

	if item.PublishedAt != nil {
		g.writeElement(buf, "pubDate", item.PublishedAt.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "author", item.Author, 6)

	for _, creator := range item.Creators {
		g.writeElement(buf, "dc:creator", creator, 6)
	}

	for _, category := range item.Categories {
		g.writeElement(buf, "category", category, 6)
	}

	if item.SourceURL != "" || item.SourceTitle != "" {
		buf.WriteString(fmt.Sprintf("      <source url=\"%s\">", html.EscapeString(item.SourceURL)))
		xml.EscapeText(buf, []byte(item.SourceTitle))
		buf.WriteString("</source>\n")
	}

	if item.EnclosureURL != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"%s\" type=\"%s\" />\n",
			html.EscapeString(item.EnclosureURL),
			html.EscapeString(item.EnclosureLength),
			html.EscapeString(item.EnclosureType)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
