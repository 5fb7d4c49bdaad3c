package search

import (
	"regexp"
	"strings"
)

// Recognized scoping filters
const (
	// FilterGroup restricts a search to a process group and everything nested in it
	FilterGroup = "group"

	// FilterKind restricts a search to one component kind
	FilterKind = "kind"
)

// QueryParser parses the raw text typed into the search box
type QueryParser struct {
	// Filter pattern: key:value or key:"quoted value"
	filterPattern *regexp.Regexp
}

// NewQueryParser creates a new query parser
func NewQueryParser() *QueryParser {
	filterPattern := regexp.MustCompile(`(?i)(^|\s)(group|kind):(?:"([^"]*)"|(\S+))`)

	return &QueryParser{
		filterPattern: filterPattern,
	}
}

var defaultParser = NewQueryParser()

// ParseQuery parses raw search text with the default parser
func ParseQuery(raw string) (*Query, error) {
	return defaultParser.Parse(raw)
}

// Parse extracts scoping filters from raw and uses the remaining words, joined
// by single spaces, as the term. Unrecognized key:value pairs such as URLs stay
// part of the term. Text consisting only of filters is an invalid query.
func (p *QueryParser) Parse(raw string) (*Query, error) {
	filters := make(map[string]string)

	cleaned := p.filterPattern.ReplaceAllStringFunc(raw, func(match string) string {
		sub := p.filterPattern.FindStringSubmatch(match)
		key := strings.ToLower(sub[2])
		value := sub[3] // Quoted value
		if value == "" {
			value = sub[4] // Unquoted value
		}
		filters[key] = value
		return sub[1]
	})

	term := strings.Join(strings.Fields(cleaned), " ")
	return NewQuery(term, filters)
}
