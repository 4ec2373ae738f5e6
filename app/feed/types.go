package feed

import (
	"time"
)

// Feed processing types

type Metadata struct {
	Title           string
	Link            string
	Description     string
	Language        string
	Copyright       string
	ManagingEditor  string
	WebMaster       string
	Generator       string
	Docs            string
	Rating          string
	TTL             string
	Categories      []string
	ImageURL        string
	ImageTitle      string
	ImageLink       string
	FeedPublishedAt *time.Time
	FeedUpdatedAt   *time.Time
}

type Item struct {
	GUID            string
	GUIDIsPermaLink string // raw isPermaLink attribute value, empty when absent
	Title           string
	Link            string
	Description     string
	Content         string
	Comments        string
	SourceURL       string
	SourceTitle     string
	PublishedAt     *time.Time
	Author          string   // RSS author element, usually "email (name)"
	Creators        []string // dc:creator authors
	Categories      []string

	EnclosureURL    string // RSS enclosure URL
	EnclosureLength string // RSS enclosure length in bytes
	EnclosureType   string // RSS enclosure MIME type
}
