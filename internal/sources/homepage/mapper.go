package homepage

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MrSnakeDoc/navstash/internal/domain"
)

// Import is the result of mapping Homepage files: one category per group,
// one link per entry.
type Import struct {
	Categories []domain.Category
	Links      []domain.Link
}

// Mapper converts Homepage configs to navstash categories and links.
// Link ids follow the millisecond-timestamp convention, offset by one per
// link so a single import never produces duplicates.
type Mapper struct {
	now  func() time.Time
	next int64
}

func NewMapper(now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}
	return &Mapper{now: now}
}

func (m *Mapper) newLink(title, href, description, categoryID, icon string) domain.Link {
	if m.next == 0 {
		m.next = m.now().UnixMilli()
	}
	l := domain.NewLink(title, href, description, categoryID, icon, time.UnixMilli(m.next))
	m.next++
	return l
}

// MapBookmarks converts a bookmarks.yaml config.
func (m *Mapper) MapBookmarks(cfg BookmarksConfig) Import {
	var out Import
	for _, group := range cfg {
		for _, groupName := range sortedKeys(group) {
			cat := domain.Category{ID: slug(groupName), Name: groupName}
			out.Categories = append(out.Categories, cat)

			for _, bookmark := range group[groupName] {
				for _, name := range sortedKeys(bookmark) {
					entries := bookmark[name]
					if len(entries) == 0 || !validHref(entries[0].Href) {
						continue
					}
					e := entries[0]
					out.Links = append(out.Links, m.newLink(name, e.Href, e.Description, cat.ID, e.Icon))
				}
			}
		}
	}
	return out
}

// MapServices converts a services.yaml config.
func (m *Mapper) MapServices(cfg ServicesConfig) Import {
	var out Import
	for _, group := range cfg {
		for _, groupName := range sortedKeys(group) {
			cat := domain.Category{ID: slug(groupName), Name: groupName}
			out.Categories = append(out.Categories, cat)

			for _, service := range group[groupName] {
				for _, name := range sortedKeys(service) {
					props := service[name]
					if !validHref(props.Href) {
						continue
					}
					out.Links = append(out.Links, m.newLink(name, props.Href, props.Description, cat.ID, props.Icon))
				}
			}
		}
	}
	return out
}

// Merge adds imported categories and links to data. Categories already
// present (same id) and links whose URL already exists are skipped.
// Returns the number of categories and links added.
func Merge(data *domain.AppData, imp Import) (categories, links int) {
	data.Normalize()
	for _, c := range imp.Categories {
		if _, ok := data.FindCategory(c.ID); ok {
			continue
		}
		data.Categories = append(data.Categories, c)
		categories++
	}
	for _, l := range imp.Links {
		if data.HasURL(l.URL) {
			continue
		}
		data.Links = append(data.Links, l)
		links++
	}
	return categories, links
}

func validHref(href string) bool {
	if href == "" {
		return false
	}
	u, err := url.Parse(href)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// slug lowercases a group name and collapses anything that is not a letter
// or digit into single dashes. "Media & Stuff" -> "media-stuff".
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return "group-" + strconv.Itoa(len(name))
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
