package feed

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/oklog/ulid/v2"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
	"github.com/thinkscotty/newsdesk/internal/models"
)

// Parser turns RSS, Atom or JSON feed documents into articles.
type Parser struct {
	newID func() string
}

func NewParser() *Parser {
	return &Parser{newID: func() string { return ulid.Make().String() }}
}

// Parse decodes raw and returns one article per item/entry in document order.
// SourceName is left empty; the caller knows which source produced the bytes.
func (p *Parser) Parse(raw []byte) ([]models.Article, error) {
	// gofeed parsers keep per-document state, so one per call.
	fp := gofeed.NewParser()
	doc, err := fp.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, deskerr.NewParse(err)
	}

	articles := make([]models.Article, 0, len(doc.Items))
	for _, item := range doc.Items {
		if item == nil {
			continue
		}
		link := strings.TrimSpace(itemLink(item))
		date := postDate(item)
		articles = append(articles, models.Article{
			ID:          p.articleID(item, link, date),
			Title:       strings.TrimSpace(item.Title),
			Link:        link,
			Thumbnail:   thumbnail(item),
			PostDate:    date,
			Content:     joinContent(item.Description, item.Content),
			Description: item.Description,
		})
	}
	return articles, nil
}

// articleID hashes the item's GUID, else its link, else its title and date,
// so the same item keeps its ID across fetches. Items with none of these get
// a random ULID.
func (p *Parser) articleID(item *gofeed.Item, link string, date *time.Time) string {
	key := strings.TrimSpace(item.GUID)
	if key == "" {
		key = link
	}
	if key == "" {
		if title := strings.TrimSpace(item.Title); title != "" {
			key = title
			if date != nil {
				key += "|" + date.UTC().Format(time.RFC3339)
			}
		}
	}
	if key == "" {
		return p.newID()
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:16])
}

// joinContent concatenates description and full content into one buffer.
func joinContent(description, content string) string {
	if description == "" || content == "" {
		return description + content
	}
	return description + "\n" + content
}

func itemLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}
	if len(item.Links) > 0 {
		return item.Links[0]
	}
	return ""
}

func postDate(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		return &t
	}
	if item.UpdatedParsed != nil {
		t := *item.UpdatedParsed
		return &t
	}
	return nil
}

// thumbnail prefers media:thumbnail, then the item image, then an image enclosure.
func thumbnail(item *gofeed.Item) string {
	if u := mediaURL(item.Extensions, "thumbnail"); u != "" {
		return u
	}
	if item.Image != nil && item.Image.URL != "" {
		return strings.TrimSpace(item.Image.URL)
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return strings.TrimSpace(enc.URL)
		}
	}
	if u := mediaURL(item.Extensions, "content"); u != "" {
		return u
	}
	return ""
}

func mediaURL(exts ext.Extensions, name string) string {
	media, ok := exts["media"]
	if !ok {
		return ""
	}
	if u := firstURL(media[name]); u != "" {
		return u
	}
	// Thumbnails are frequently nested under media:group.
	for _, group := range media["group"] {
		if u := firstURL(group.Children[name]); u != "" {
			return u
		}
	}
	return ""
}

func firstURL(elems []ext.Extension) string {
	for _, e := range elems {
		if m := e.Attrs["medium"]; m != "" && m != "image" {
			continue
		}
		if typ := e.Attrs["type"]; typ != "" && !strings.HasPrefix(typ, "image/") {
			continue
		}
		if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
			return u
		}
	}
	return ""
}
