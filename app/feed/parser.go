package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed/rss"
)

// Parser reads a raw RSS document into Metadata plus an ordered item list.
// It uses gofeed's format-specific RSS parser rather than the universal one:
// the universal feed model flattens RSS-only structure (guid permalink flag,
// comments, source, channel copyright/editor/ttl) that the output must carry
// through unchanged.
type Parser struct {
	rssParser *rss.Parser
}

func NewParser() *Parser {
	return &Parser{
		rssParser: &rss.Parser{},
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.rssParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:          feed.Title,
		Link:           feed.Link,
		Description:    feed.Description,
		Language:       feed.Language,
		Copyright:      feed.Copyright,
		ManagingEditor: feed.ManagingEditor,
		WebMaster:      feed.WebMaster,
		Generator:      feed.Generator,
		Docs:           feed.Docs,
		Rating:         feed.Rating,
		TTL:            feed.TTL,
		Categories:     categoryValues(feed.Categories),
	}

	if feed.Image != nil {
		metadata.ImageURL = feed.Image.URL
		metadata.ImageTitle = feed.Image.Title
		metadata.ImageLink = feed.Image.Link
	}

	if feed.PubDateParsed != nil {
		metadata.FeedPublishedAt = feed.PubDateParsed
	}

	if feed.LastBuildDateParsed != nil {
		metadata.FeedUpdatedAt = feed.LastBuildDateParsed
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, p.normalizeItem(item))
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *rss.Item) Item {
	normalized := Item{
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Content:     item.Content,
		Comments:    item.Comments,
		Author:      item.Author,
		Categories:  categoryValues(item.Categories),
	}

	if item.GUID != nil {
		normalized.GUID = item.GUID.Value
		normalized.GUIDIsPermaLink = item.GUID.IsPermalink
	}
	normalized.GUID = cmp.Or(normalized.GUID, item.Link)

	if item.PubDateParsed != nil {
		normalized.PublishedAt = item.PubDateParsed
	}

	if item.DublinCoreExt != nil {
		normalized.Creators = item.DublinCoreExt.Creator
	}

	if item.Source != nil {
		normalized.SourceURL = item.Source.URL
		normalized.SourceTitle = item.Source.Title
	}

	if item.Enclosure != nil {
		normalized.EnclosureURL = item.Enclosure.URL
		normalized.EnclosureLength = item.Enclosure.Length
		normalized.EnclosureType = item.Enclosure.Type
	}

	return normalized
}

func categoryValues(categories []*rss.Category) []string {
	if len(categories) == 0 {
		return nil
	}

	values := make([]string, 0, len(categories))
	for _, category := range categories {
		if category != nil {
			values = append(values, category.Value)
		}
	}
	return values
}
