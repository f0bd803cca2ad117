package domain

import (
	"testing"
	"time"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name        string
		categories  []Category
		requested   string
		expectedID  string
		wantCreated bool
	}{
		{
			name: "requested category exists",
			categories: []Category{
				{ID: "dev", Name: "Development"},
				{ID: "common", Name: "常用推荐"},
			},
			requested:  "dev",
			expectedID: "dev",
		},
		{
			name: "requested category missing falls back to keyword",
			categories: []Category{
				{ID: "dev", Name: "Development"},
				{ID: "c1", Name: "常用工具"},
			},
			requested:  "ghost",
			expectedID: "c1",
		},
		{
			name: "keyword matched on id",
			categories: []Category{
				{ID: "news", Name: "News"},
				{ID: "inbox", Name: "Later"},
			},
			expectedID: "inbox",
		},
		{
			name: "keyword matching is case insensitive",
			categories: []Category{
				{ID: "a", Name: "Tools"},
				{ID: "b", Name: "Other Stuff"},
			},
			expectedID: "b",
		},
		{
			name: "first keyword match in list order wins",
			categories: []Category{
				{ID: "x", Name: "Misc other"},
				{ID: "y", Name: "Common"},
			},
			expectedID: "x",
		},
		{
			name: "no keyword match uses first category",
			categories: []Category{
				{ID: "a", Name: "Tools"},
				{ID: "b", Name: "Reading"},
			},
			expectedID: "a",
		},
		{
			name:        "no categories creates default",
			categories:  nil,
			expectedID:  DefaultCategoryID,
			wantCreated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &AppData{Categories: tt.categories}
			cat, created := ResolveCategory(data, tt.requested)

			if cat.ID != tt.expectedID {
				t.Errorf("ResolveCategory() id = %q, want %q", cat.ID, tt.expectedID)
			}
			if created != tt.wantCreated {
				t.Errorf("ResolveCategory() created = %v, want %v", created, tt.wantCreated)
			}
			if tt.wantCreated {
				if _, ok := data.FindCategory(DefaultCategoryID); !ok {
					t.Error("default category was not added to the document")
				}
			}
		})
	}
}

func TestNewLinkUsesMillisecondID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	l := NewLink("Go", "https://go.dev", "", "dev", "", now)

	if l.ID != "1700000000123" {
		t.Errorf("ID = %q, want 1700000000123", l.ID)
	}
	if l.CreatedAt != 1700000000123 {
		t.Errorf("CreatedAt = %d, want 1700000000123", l.CreatedAt)
	}
	if l.Pinned {
		t.Error("new links must not be pinned")
	}
}

func TestPrependLink(t *testing.T) {
	data := EmptyAppData()
	data.PrependLink(Link{ID: "1", URL: "https://a"})
	data.PrependLink(Link{ID: "2", URL: "https://b"})

	if data.Links[0].ID != "2" {
		t.Errorf("newest link should be first, got %q", data.Links[0].ID)
	}
	if !data.HasURL("https://a") {
		t.Error("HasURL() = false for existing url")
	}
}
