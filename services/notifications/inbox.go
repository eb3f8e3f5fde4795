// Package notifications categorizes the admin notification feed.
package notifications

import (
	"context"
	"sort"

	"tincadia/catalog"
	"tincadia/models"
	"tincadia/utils"
)

type Source interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
}

type Item struct {
	models.Notification
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Color         string `json:"color"`
}

type Page struct {
	Items      []Item           `json:"items"`
	Counts     map[string]int   `json:"counts"` // per category, before category filtering
	Unread     int              `json:"unread"`
	Pagination utils.Pagination `json:"pagination"`
}

type Inbox struct {
	source  Source
	catalog *catalog.Catalog
}

func NewInbox(source Source, c *catalog.Catalog) *Inbox {
	return &Inbox{source: source, catalog: c}
}

// Categorize tags each notification with the category its type maps to
func Categorize(list []models.Notification, c *catalog.Catalog) []Item {
	out := make([]Item, 0, len(list))
	for _, n := range list {
		cat := c.CategoryFor(n.Type)
		out = append(out, Item{Notification: n, Category: cat.Key, CategoryLabel: cat.Label, Color: cat.Color})
	}
	return out
}

// List returns one page of notifications, newest first, optionally restricted to a category
func (i *Inbox) List(ctx context.Context, category string, unreadOnly bool, page, limit int) (*Page, error) {
	list, err := i.source.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}
	items := Categorize(list, i.catalog)
	sort.SliceStable(items, func(a, b int) bool { return items[a].CreatedAt.After(items[b].CreatedAt) })

	counts := map[string]int{}
	unread := 0
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		counts[it.Category]++
		if !it.Read {
			unread++
		}
		if category != "" && it.Category != category {
			continue
		}
		if unreadOnly && it.Read {
			continue
		}
		filtered = append(filtered, it)
	}

	slice, meta := utils.Paginate(filtered, page, limit)
	return &Page{Items: slice, Counts: counts, Unread: unread, Pagination: meta}, nil
}
