package preprocess

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// 닫는 태그나 흔한 단독 태그가 있을 때만 HTML 로 본다. "a<b" 같은 부등호는 본문이다.
	markupTag = regexp.MustCompile(`(?i)</[a-zA-Z][^>]*>|<(br|p|div|span|b|i|u|em|strong|li|ul|ol|table|tr|td)(\s[^>]*)?/?>`)
	lineBreak = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</tr>`)
	entity    = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z]+);`)
	spaceRun  = regexp.MustCompile(`[\t\f\v\r \x{00A0}]+`)
)

// CleanText 요약문에 섞인 HTML 태그와 엔티티를 평문으로 바꾸고 줄 안의 공백을 정리한다.
// 마크업이 없으면 본문을 건드리지 않고 줄바꿈은 유지한다.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	switch {
	case markupTag.MatchString(s):
		s = lineBreak.ReplaceAllStringFunc(s, func(m string) string { return m + "\n" })
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	case entity.MatchString(s):
		s = html.UnescapeString(s)
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
