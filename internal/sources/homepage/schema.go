package homepage

// ServicesConfig is the top-level structure of Homepage's services.yaml:
// a list of groups, each mapping a group name to a list of single-key maps
// (service name -> properties).
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps holds the service fields navstash imports.
type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// BookmarkEntry is a single bookmark in bookmarks.yaml.
type BookmarkEntry struct {
	Icon        string `yaml:"icon"`
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
}

// BookmarkGroup maps a group name to its bookmarks. Each bookmark name maps
// to a one-element list holding the entry, as in
// {Developer: [{Github: [{abbr: GH, href: "https://github.com/"}]}]}.
type BookmarkGroup map[string][]map[string][]BookmarkEntry

// BookmarksConfig is the root structure of bookmarks.yaml.
type BookmarksConfig []BookmarkGroup
