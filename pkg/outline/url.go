package outline

import "strings"

const upperhex = "0123456789ABCDEF"

// BuildArticleURL appends the percent-encoded country to baseURL. No case or
// whitespace normalization is applied; a slug that does not exist fails later
// at fetch time.
func BuildArticleURL(baseURL, country string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + escapeSlug(country)
}

// escapeSlug percent-encodes every byte outside the unreserved set plus '/'.
// url.PathEscape leaves sub-delimiters such as ' ( ) , ; = alone, which the
// upstream treats as distinct titles, so the encoding is done by hand.
func escapeSlug(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '/':
		return true
	}
	return false
}
