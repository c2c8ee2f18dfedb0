package naming

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const patternMemoSize = 64

// patternMemo держит скомпилированные AllowedPatterns: конфиг один на
// прогон, а CheckNode вызывается на каждый def.
var patternMemo, _ = lru.New[string, []*regexp.Regexp](patternMemoSize)

// allowedPatterns compiles ps once per distinct list. Invalid patterns are
// skipped.
func allowedPatterns(ps []string) []*regexp.Regexp {
	if len(ps) == 0 {
		return nil
	}
	key := strings.Join(ps, "\x00")
	if res, ok := patternMemo.Get(key); ok {
		return res
	}
	res := make([]*regexp.Regexp, 0, len(ps))
	for _, p := range ps {
		if re, err := regexp.Compile(p); err == nil {
			res = append(res, re)
		}
	}
	patternMemo.Add(key, res)
	return res
}
