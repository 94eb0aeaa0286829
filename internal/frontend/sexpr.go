// Package frontend is a deliberately minimal PDDL reader: a stand-in for
// the "external collaborator" front-end spec.md §1 carves out of the core
// engine's scope. It covers STRIPS + typing + negative/disjunctive
// preconditions + equality + quantifiers + conditional effects + numeric
// fluents + derived predicates + action costs — the connectives
// internal/translate's test fixtures exercise — and nothing more.
package frontend

import (
	"fmt"
	"strings"
)

// Sexpr is a parsed S-expression: either an atom (List == nil) or a list
// of sub-expressions.
type Sexpr struct {
	Atom string
	List []Sexpr
}

func (s Sexpr) IsAtom() bool { return s.List == nil }

func (s Sexpr) String() string {
	if s.IsAtom() {
		return s.Atom
	}
	parts := make([]string, len(s.List))
	for i, e := range s.List {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// head returns the first element of a list Sexpr's own list as its
// "operator" (e.g. "and", "forall", a predicate name), or "" for an atom.
func (s Sexpr) head() string {
	if s.IsAtom() || len(s.List) == 0 {
		return ""
	}
	return strings.ToLower(s.List[0].Atom)
}

func tokenize(src string) []string {
	var toks []string
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		default:
			j := i
			for j < len(src) && !strings.ContainsRune("() \t\n\r;", rune(src[j])) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		}
	}
	return toks
}

// ParseAll parses every top-level S-expression in src (normally exactly
// one: the (define ...) form).
func ParseAll(src string) ([]Sexpr, error) {
	toks := tokenize(src)
	pos := 0
	var out []Sexpr
	for pos < len(toks) {
		e, next, err := parseOne(toks, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		pos = next
	}
	return out, nil
}

func parseOne(toks []string, pos int) (Sexpr, int, error) {
	if pos >= len(toks) {
		return Sexpr{}, pos, fmt.Errorf("frontend: unexpected end of input")
	}
	if toks[pos] == "(" {
		pos++
		var list []Sexpr
		for pos < len(toks) && toks[pos] != ")" {
			e, next, err := parseOne(toks, pos)
			if err != nil {
				return Sexpr{}, pos, err
			}
			list = append(list, e)
			pos = next
		}
		if pos >= len(toks) {
			return Sexpr{}, pos, fmt.Errorf("frontend: unbalanced parentheses")
		}
		return Sexpr{List: list}, pos + 1, nil
	}
	if toks[pos] == ")" {
		return Sexpr{}, pos, fmt.Errorf("frontend: unexpected ')'")
	}
	return Sexpr{Atom: toks[pos]}, pos + 1, nil
}
