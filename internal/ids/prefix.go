package ids

import "strings"

// MatchPrefix finds the ID with the given case-insensitive prefix.
// An exact match always wins over a longer ID sharing the prefix.
// found is false when nothing matches; ambiguous is true when the
// prefix matches more than one ID.
func MatchPrefix(ids []string, prefix string) (match string, found bool, ambiguous bool) {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	if needle == "" {
		return "", false, false
	}

	for _, id := range ids {
		if strings.ToLower(id) == needle {
			return id, true, false
		}
	}

	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), needle) {
			if found {
				return "", false, true
			}
			match = id
			found = true
		}
	}

	return match, found, false
}

// UniquePrefixLengths returns the shortest unique prefix length for
// each ID.
func UniquePrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}

	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
