package feed

import (
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example Blog</title>
    <link>https://blog.example.com</link>
    <description>Notes on data analysis</description>
    <language>en-us</language>
    <copyright>CC BY-SA 4.0</copyright>
    <managingEditor>jane@example.com (Jane Doe)</managingEditor>
    <webMaster>ops@example.com (Ops)</webMaster>
    <ttl>60</ttl>
    <category>Statistics</category>
    <generator>Hugo 0.125</generator>
    <pubDate>Mon, 03 Jul 2023 10:00:00 +0000</pubDate>
    <image>
      <url>https://blog.example.com/logo.png</url>
      <title>Example Blog</title>
      <link>https://blog.example.com</link>
    </image>
    <item>
      <guid isPermaLink="false">https://blog.example.com/post-1</guid>
      <title>Plotting residuals</title>
      <link>https://blog.example.com/post-1</link>
      <description>Residual plots explained</description>
      <comments>https://blog.example.com/post-1#comments</comments>
      <pubDate>Mon, 03 Jul 2023 10:00:00 +0000</pubDate>
      <author>jane@example.com (Jane Doe)</author>
      <dc:creator>John Doe</dc:creator>
      <category>R</category>
      <category>code</category>
      <source url="https://aggregator.example.com/rss">Aggregator</source>
      <enclosure url="https://blog.example.com/audio.mp3" length="1024" type="audio/mpeg" />
    </item>
    <item>
      <guid>https://blog.example.com/post-2</guid>
      <title>List comprehensions</title>
      <link>https://blog.example.com/post-2</link>
      <description>A short tour</description>
      <category>Python</category>
    </item>
  </channel>
</rss>`

func TestParser_Run_ChannelMetadata(t *testing.T) {
	parser := NewParser()

	metadata, items, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if metadata.Title != "Example Blog" {
		t.Errorf("Expected title 'Example Blog', got '%s'", metadata.Title)
	}
	if metadata.Link != "https://blog.example.com" {
		t.Errorf("Expected link 'https://blog.example.com', got '%s'", metadata.Link)
	}
	if metadata.Description != "Notes on data analysis" {
		t.Errorf("Expected description 'Notes on data analysis', got '%s'", metadata.Description)
	}
	if metadata.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got '%s'", metadata.Language)
	}
	if metadata.Copyright != "CC BY-SA 4.0" {
		t.Errorf("Expected copyright 'CC BY-SA 4.0', got '%s'", metadata.Copyright)
	}
	if metadata.ManagingEditor != "jane@example.com (Jane Doe)" {
		t.Errorf("Unexpected managingEditor: '%s'", metadata.ManagingEditor)
	}
	if metadata.WebMaster != "ops@example.com (Ops)" {
		t.Errorf("Unexpected webMaster: '%s'", metadata.WebMaster)
	}
	if metadata.TTL != "60" {
		t.Errorf("Expected ttl '60', got '%s'", metadata.TTL)
	}
	if len(metadata.Categories) != 1 || metadata.Categories[0] != "Statistics" {
		t.Errorf("Unexpected channel categories: %v", metadata.Categories)
	}
	if metadata.Generator != "Hugo 0.125" {
		t.Errorf("Expected generator 'Hugo 0.125', got '%s'", metadata.Generator)
	}
	if metadata.ImageURL != "https://blog.example.com/logo.png" {
		t.Errorf("Expected image URL, got '%s'", metadata.ImageURL)
	}
	if metadata.FeedPublishedAt == nil {
		t.Error("Expected channel pubDate to be parsed")
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
}

func TestParser_Run_ItemFields(t *testing.T) {
	parser := NewParser()

	_, items, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	first := items[0]
	if first.GUID != "https://blog.example.com/post-1" {
		t.Errorf("Unexpected GUID: %s", first.GUID)
	}
	if first.GUIDIsPermaLink != "false" {
		t.Errorf("Expected isPermaLink 'false' to be carried, got '%s'", first.GUIDIsPermaLink)
	}
	if first.Title != "Plotting residuals" {
		t.Errorf("Unexpected title: %s", first.Title)
	}
	if first.Comments != "https://blog.example.com/post-1#comments" {
		t.Errorf("Unexpected comments: %s", first.Comments)
	}
	if first.PublishedAt == nil {
		t.Error("Expected item pubDate to be parsed")
	}
	if first.Author != "jane@example.com (Jane Doe)" {
		t.Errorf("Unexpected author: %s", first.Author)
	}
	if len(first.Creators) != 1 || first.Creators[0] != "John Doe" {
		t.Errorf("Unexpected dc:creator authors: %v", first.Creators)
	}
	if len(first.Categories) != 2 || first.Categories[0] != "R" || first.Categories[1] != "code" {
		t.Errorf("Unexpected categories: %v", first.Categories)
	}
	if first.SourceURL != "https://aggregator.example.com/rss" || first.SourceTitle != "Aggregator" {
		t.Errorf("Unexpected source: %s (%s)", first.SourceTitle, first.SourceURL)
	}
	if first.EnclosureURL != "https://blog.example.com/audio.mp3" {
		t.Errorf("Unexpected enclosure URL: %s", first.EnclosureURL)
	}
	if first.EnclosureLength != "1024" {
		t.Errorf("Expected enclosure length '1024', got '%s'", first.EnclosureLength)
	}
	if first.EnclosureType != "audio/mpeg" {
		t.Errorf("Unexpected enclosure type: %s", first.EnclosureType)
	}

	second := items[1]
	if second.GUIDIsPermaLink != "" {
		t.Errorf("Expected no isPermaLink attribute on second item, got '%s'", second.GUIDIsPermaLink)
	}
	if len(second.Categories) != 1 || second.Categories[0] != "Python" {
		t.Errorf("Unexpected categories on second item: %v", second.Categories)
	}
	if second.PublishedAt != nil {
		t.Error("Second item has no pubDate, expected nil")
	}
}

func TestParser_Run_GUIDFallsBackToLink(t *testing.T) {
	parser := NewParser()

	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>No guid here</title>
      <link>https://blog.example.com/post</link>
    </item>
  </channel>
</rss>`

	_, items, err := parser.Run([]byte(rss))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].GUID != "https://blog.example.com/post" {
		t.Errorf("Expected GUID to fall back to link, got '%s'", items[0].GUID)
	}
}

func TestParser_Run_EmptyFeed(t *testing.T) {
	parser := NewParser()

	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Empty Blog</title>
    <link>https://blog.example.com</link>
    <description>Nothing published yet</description>
  </channel>
</rss>`

	metadata, items, err := parser.Run([]byte(rss))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if metadata.Title != "Empty Blog" {
		t.Errorf("Unexpected title: %s", metadata.Title)
	}
	if len(items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(items))
	}
}

func TestParser_Run_InvalidInput(t *testing.T) {
	parser := NewParser()

	_, _, err := parser.Run([]byte("this is not a feed"))
	if err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
