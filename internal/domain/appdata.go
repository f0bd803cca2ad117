package domain

import (
	"strconv"
	"time"
)

// AppData is the single document holding every link and category.
// It is always read and written whole.
type AppData struct {
	Links      []Link     `json:"links"`
	Categories []Category `json:"categories"`
}

// Link is one bookmark entry.
type Link struct {
	// ID is the creation timestamp in milliseconds, as a decimal string.
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId"`
	// CreatedAt is the creation timestamp in milliseconds.
	CreatedAt int64  `json:"createdAt"`
	Pinned    bool   `json:"pinned"`
	Icon      string `json:"icon,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Normalize replaces nil slices so the document always serializes with
// arrays, never null.
func (d *AppData) Normalize() {
	if d.Links == nil {
		d.Links = []Link{}
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
}

// EmptyAppData returns the document served when nothing has been stored yet.
func EmptyAppData() *AppData {
	return &AppData{Links: []Link{}, Categories: []Category{}}
}

// FindCategory returns the category with the given id.
func (d *AppData) FindCategory(id string) (*Category, bool) {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

// HasURL reports whether a link with exactly this URL exists.
func (d *AppData) HasURL(url string) bool {
	for _, l := range d.Links {
		if l.URL == url {
			return true
		}
	}
	return false
}

// PrependLink inserts l in front of the existing links.
func (d *AppData) PrependLink(l Link) {
	d.Links = append([]Link{l}, d.Links...)
}

// NewLink builds a link stamped with now. The id is the millisecond
// timestamp, so two links created in the same millisecond collide.
func NewLink(title, url, description, categoryID, icon string, now time.Time) Link {
	ms := now.UnixMilli()
	return Link{
		ID:          strconv.FormatInt(ms, 10),
		Title:       title,
		URL:         url,
		Description: description,
		CategoryID:  categoryID,
		CreatedAt:   ms,
		Pinned:      false,
		Icon:        icon,
	}
}
