// Package feed renders the post listing as an RSS 2.0 document.
package feed

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"

	"gopher-blog/internal/app"
	"gopher-blog/internal/model"
)

type Channel struct {
	Title       string
	SiteURL     string
	Description string
}

func Build(ch Channel, posts []app.PostDetail) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	channel := rss.CreateElement("channel")
	base := strings.TrimRight(ch.SiteURL, "/")
	channel.CreateElement("title").SetText(ch.Title)
	channel.CreateElement("link").SetText(base + "/")
	channel.CreateElement("description").SetText(ch.Description)

	// newest first
	for i := len(posts) - 1; i >= 0; i-- {
		addItem(channel, base, posts[i])
	}
	doc.Indent(2)
	return doc
}

func Write(w io.Writer, ch Channel, posts []app.PostDetail) error {
	if _, err := Build(ch, posts).WriteTo(w); err != nil {
		return fmt.Errorf("write feed failed: %w", err)
	}
	return nil
}

func addItem(channel *etree.Element, base string, p app.PostDetail) {
	link := fmt.Sprintf("%s/post/%d", base, p.ID)

	item := channel.CreateElement("item")
	item.CreateElement("title").SetText(p.Title)
	item.CreateElement("link").SetText(link)
	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "true")
	guid.SetText(link)
	item.CreateElement("description").SetText(p.Subtitle)
	if p.Author != nil {
		item.CreateElement("dc:creator").SetText(p.Author.Name)
	}
	if published, err := time.Parse(model.PostDateLayout, p.Date); err == nil {
		item.CreateElement("pubDate").SetText(published.Format(time.RFC1123Z))
	}
}
