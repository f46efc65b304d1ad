package parser

import (
	"testing"
)

const podcastRSS = `<?xml version="1.0"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Test Podcast</title>
    <link>https://example.com</link>
    <description>A test podcast</description>
    <itunes:author>Feed Author</itunes:author>
    <category>Technology</category>
    <category>News</category>
    <item>
      <title>Episode One</title>
      <guid>ep-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <description>First episode summary</description>
      <itunes:subtitle>The first one</itunes:subtitle>
      <enclosure url="https://example.com/audio/ep1.mp3" length="1234" type="audio/mpeg"/>
    </item>
    <item>
      <title>Episode Two</title>
      <pubDate>Mon, 10 Jul 2023 10:00:00 GMT</pubDate>
      <description>Second episode summary</description>
      <enclosure url="https://example.com/audio/ep2.mp3" length="5678" type="audio/mpeg"/>
      <enclosure url="https://example.com/images/ep2.jpg" length="99" type="image/jpeg"/>
    </item>
  </channel>
</rss>`

func TestParsePodcastFeed(t *testing.T) {
	parser := NewParser()
	metadata, entries, err := parser.Parse([]byte(podcastRSS))
	if err != nil {
		t.Fatal(err)
	}

	if metadata.Title != "Test Podcast" {
		t.Errorf("Expected title 'Test Podcast', got '%s'", metadata.Title)
	}
	if metadata.Author != "Feed Author" {
		t.Errorf("Expected author 'Feed Author', got '%s'", metadata.Author)
	}
	if len(metadata.Categories) == 0 || metadata.Categories[0] != "Technology" {
		t.Errorf("Expected first category 'Technology', got %v", metadata.Categories)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	ep1 := entries[0]
	if ep1.GUID != "ep-1" {
		t.Errorf("Expected GUID 'ep-1', got '%s'", ep1.GUID)
	}
	if ep1.Subtitle != "The first one" {
		t.Errorf("Expected subtitle 'The first one', got '%s'", ep1.Subtitle)
	}
	if ep1.Published == "" {
		t.Error("Expected raw published date text to be preserved")
	}
	if ep1.PublishedParsed == nil {
		t.Error("Expected published date to be parsed")
	}
	if len(ep1.Enclosures) != 1 {
		t.Fatalf("Expected 1 enclosure, got %d", len(ep1.Enclosures))
	}
	if ep1.Enclosures[0].Type != "audio/mpeg" {
		t.Errorf("Expected enclosure type 'audio/mpeg', got '%s'", ep1.Enclosures[0].Type)
	}

	ep2 := entries[1]
	if ep2.GUID != "" {
		t.Errorf("Expected empty GUID when feed omits it, got '%s'", ep2.GUID)
	}
	if len(ep2.Enclosures) != 2 {
		t.Fatalf("Expected 2 enclosures, got %d", len(ep2.Enclosures))
	}
}

func TestParseInvalidData(t *testing.T) {
	parser := NewParser()
	_, _, err := parser.Parse([]byte("this is not a feed"))
	if err == nil {
		t.Error("Expected error for invalid feed data")
	}
}
