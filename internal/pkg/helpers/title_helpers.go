package helpers

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeTitle converts a question set title into a filesystem-safe token.
// Non word/space/hyphen characters are stripped and runs of whitespace are
// collapsed into single underscores. The operation is idempotent.
func SanitizeTitle(title string) string {
	s := nonWordPattern.ReplaceAllString(title, "")
	s = strings.TrimSpace(s)
	return whitespacePattern.ReplaceAllString(s, "_")
}

// ParseIDList parses a comma separated list of numeric IDs, as used by the
// combine-download and download-bundle query parameters.
func ParseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// JoinIDs renders an ID list back into its compact csv form, used when
// deriving download filenames from the requested question sets.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "-")
}
