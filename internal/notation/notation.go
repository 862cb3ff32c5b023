// Package notation renders firing rules in the two textual grammars read by
// downstream simulators. The grammars are independent and must stay that way.
package notation

import (
	"regexp"
	"strconv"
	"strings"

	"snpgen/internal/model"
)

const wildcard = `\ast`

var powerOfA = regexp.MustCompile(`a\^(\d+)`)

// Tree renders r in the v3 grammar: <language>/a[^c]\to a[^p];<delay>.
func Tree(r model.Rule) string {
	var b strings.Builder
	b.WriteString(r.Language)
	b.WriteString("/a")
	b.WriteString(superscript(r.Consume))
	b.WriteString(`\to a`)
	b.WriteString(superscript(r.Produce))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(r.Delay))
	return b.String()
}

// Flat renders r in the v2 grammar: <language>/<c>-><p>;<delay>, where the
// language is rewritten by NormalizeLanguage.
func Flat(r model.Rule) string {
	var b strings.Builder
	b.WriteString(NormalizeLanguage(r.Language))
	b.WriteByte('/')
	b.WriteString(term(r.Consume))
	b.WriteString("->")
	b.WriteString(term(r.Produce))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(r.Delay))
	return b.String()
}

// NormalizeLanguage converts a v3 language to v2: "a^k" becomes "ka", the
// remaining carets are dropped and `\ast` becomes "*".
func NormalizeLanguage(language string) string {
	out := powerOfA.ReplaceAllString(language, "${1}a")
	out = strings.ReplaceAll(out, "^", "")
	return strings.ReplaceAll(out, wildcard, "*")
}

func superscript(n int) string {
	if n == 1 {
		return ""
	}
	return "^" + strconv.Itoa(n)
}

func term(n int) string {
	if n == 1 {
		return "a"
	}
	return strconv.Itoa(n) + "a"
}
