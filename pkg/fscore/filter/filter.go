// Package filter narrows symbol search hits by exchange code or quote type.
package filter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

// Filter reports whether a value such as "NMS" or "EQUITY" is wanted.
type Filter interface {
	Match(s string) bool
}

// Parse builds a Filter from expr:
//
//	""               accept everything
//	"NMS,GER"        exact match against any listed value
//	"NY*"            glob
//	"/^(NMS|GER)$/"  regular expression
//	"equity"         case-insensitive substring
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return Always(true), nil
	case len(expr) > 2 && strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/"):
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, eris.Wrapf(err, "filter: bad regex %q", expr)
		}
		return Regex{re: re}, nil
	case strings.Contains(expr, ","):
		set := ExactSet{}
		for _, v := range strings.Split(expr, ",") {
			if v = strings.TrimSpace(v); v != "" {
				set[v] = struct{}{}
			}
		}
		return set, nil
	case strings.ContainsAny(expr, "*?["):
		if _, err := filepath.Match(expr, ""); err != nil {
			return nil, eris.Wrapf(err, "filter: bad glob %q", expr)
		}
		return Glob(expr), nil
	}
	return SubstrCI(strings.ToLower(expr)), nil
}

// Candidates keeps, in order, the hits whose exchange or quote type
// matches f. A nil filter keeps everything.
func Candidates(f Filter, in []types.Candidate) []types.Candidate {
	if f == nil {
		return in
	}
	var out []types.Candidate
	for _, c := range in {
		if f.Match(c.Exchange) || f.Match(c.QuoteType) {
			out = append(out, c)
		}
	}
	return out
}

type Always bool

func (a Always) Match(string) bool { return bool(a) }

type ExactSet map[string]struct{}

func (e ExactSet) Match(s string) bool {
	_, ok := e[s]
	return ok
}

type Glob string

func (g Glob) Match(s string) bool {
	ok, _ := filepath.Match(string(g), s)
	return ok
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(s string) bool { return r.re.MatchString(s) }

// SubstrCI holds a lower-cased needle.
type SubstrCI string

func (n SubstrCI) Match(s string) bool {
	return strings.Contains(strings.ToLower(s), string(n))
}
