package content

import "strings"

// Search returns visible items whose name, description, category, or tags
// contain the query, case-insensitively. An empty query matches nothing.
func (s *Store) Search(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []Item
	for _, item := range s.List() {
		if matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item Item, query string) bool {
	if strings.Contains(strings.ToLower(item.Name), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.Category), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
