package domain

import "strings"

const (
	// DefaultCategoryID is used when a link is inserted into an empty document.
	DefaultCategoryID   = "common"
	DefaultCategoryName = "常用推荐"
)

// FallbackKeywords are matched against category names and ids, in order of
// appearance in the category list, when a link arrives without a usable
// category.
var FallbackKeywords = []string{
	"常用",
	"common",
	"default",
	"未分类",
	"uncategorized",
	"other",
	"其他",
	"inbox",
}

// ResolveCategory picks the category a new link goes into.
//
//  1. the requested id, if it exists
//  2. the first category whose name or id contains a fallback keyword
//  3. the first category
//  4. a freshly created default category (appended to d)
//
// created reports whether case 4 happened.
func ResolveCategory(d *AppData, requestedID string) (cat Category, created bool) {
	if requestedID != "" {
		if c, ok := d.FindCategory(requestedID); ok {
			return *c, false
		}
	}

	for _, c := range d.Categories {
		if matchesFallback(c) {
			return c, false
		}
	}

	if len(d.Categories) > 0 {
		return d.Categories[0], false
	}

	c := Category{ID: DefaultCategoryID, Name: DefaultCategoryName}
	d.Categories = append(d.Categories, c)
	return c, true
}

func matchesFallback(c Category) bool {
	name := strings.ToLower(c.Name)
	id := strings.ToLower(c.ID)
	for _, kw := range FallbackKeywords {
		if strings.Contains(name, kw) || strings.Contains(id, kw) {
			return true
		}
	}
	return false
}
