package frontend

import (
	"fmt"
	"strings"
)

// ParseDomain reads a (define (domain NAME) ...) form.
func ParseDomain(src string) (*RawDomain, error) {
	top, err := ParseAll(src)
	if err != nil {
		return nil, err
	}
	define, err := singleDefine(top)
	if err != nil {
		return nil, err
	}

	d := &RawDomain{}
	for _, sec := range define.List[1:] {
		if sec.IsAtom() {
			continue
		}
		switch {
		case len(sec.List) >= 2 && sec.List[0].Atom == "domain":
			d.Name = sec.List[1].Atom
		case sec.head() == ":requirements":
			// not modeled; the parser simply accepts whatever connectives appear.
		case sec.head() == ":types":
			d.Types = parseTypeDecls(sec.List[1:])
		case sec.head() == ":constants":
			d.Constants = parseObjectDecls(sec.List[1:])
		case sec.head() == ":predicates":
			for _, p := range sec.List[1:] {
				d.Predicates = append(d.Predicates, parsePredicateDecl(p))
			}
		case sec.head() == ":functions":
			d.Functions = parseFunctionDecls(sec.List[1:])
		case sec.head() == ":action":
			act, err := parseAction(sec)
			if err != nil {
				return nil, err
			}
			d.Actions = append(d.Actions, act)
		case sec.head() == ":derived":
			if len(sec.List) != 3 {
				return nil, fmt.Errorf("frontend: malformed :derived form %s", sec)
			}
			d.Axioms = append(d.Axioms, RawAxiom{Head: sec.List[1], Body: sec.List[2]})
		}
	}
	return d, nil
}

// ParseProblem reads a (define (problem NAME) ...) form.
func ParseProblem(src string) (*RawProblem, error) {
	top, err := ParseAll(src)
	if err != nil {
		return nil, err
	}
	define, err := singleDefine(top)
	if err != nil {
		return nil, err
	}

	p := &RawProblem{}
	for _, sec := range define.List[1:] {
		if sec.IsAtom() {
			continue
		}
		switch {
		case len(sec.List) >= 2 && sec.List[0].Atom == "problem":
			p.Name = sec.List[1].Atom
		case len(sec.List) >= 2 && sec.List[0].Atom == ":domain":
			p.DomainName = sec.List[1].Atom
		case sec.head() == ":objects":
			p.Objects = parseObjectDecls(sec.List[1:])
		case sec.head() == ":init":
			p.Init = sec.List[1:]
		case sec.head() == ":goal":
			if len(sec.List) != 2 {
				return nil, fmt.Errorf("frontend: malformed :goal form")
			}
			p.Goal = sec.List[1]
		case sec.head() == ":metric":
			if len(sec.List) != 3 {
				return nil, fmt.Errorf("frontend: malformed :metric form")
			}
			p.Metric = &RawMetric{Minimize: strings.ToLower(sec.List[1].Atom) == "minimize", Expr: sec.List[2]}
		}
	}
	return p, nil
}

func singleDefine(top []Sexpr) (Sexpr, error) {
	if len(top) != 1 || top[0].IsAtom() || top[0].head() != "define" {
		return Sexpr{}, fmt.Errorf("frontend: expected a single (define ...) form")
	}
	return top[0], nil
}

// ParseParams exposes the "?x ?y - type" shorthand parser for callers
// outside this package (internal/translate uses it to parse quantifier
// variable lists, which share the same syntax as action :parameters).
func ParseParams(items []Sexpr) []RawParam { return parseParams(items) }

func parseParams(items []Sexpr) []RawParam {
	var out []RawParam
	var pending []string
	flush := func(types []string) {
		for _, n := range pending {
			out = append(out, RawParam{Name: n, Types: types})
		}
		pending = nil
	}
	i := 0
	for i < len(items) {
		if items[i].Atom == "-" {
			i++
			if i < len(items) {
				flush([]string{items[i].Atom})
				i++
			}
			continue
		}
		pending = append(pending, items[i].Atom)
		i++
	}
	flush(nil)
	return out
}

func parseTypeDecls(items []Sexpr) []RawTypeDecl {
	var out []RawTypeDecl
	var pending []string
	flush := func(parent string) {
		for _, n := range pending {
			out = append(out, RawTypeDecl{Name: n, Parent: parent})
		}
		pending = nil
	}
	i := 0
	for i < len(items) {
		if items[i].Atom == "-" {
			i++
			if i < len(items) {
				flush(items[i].Atom)
				i++
			}
			continue
		}
		pending = append(pending, items[i].Atom)
		i++
	}
	flush("")
	return out
}

func parseObjectDecls(items []Sexpr) []RawObjectDecl {
	params := parseParams(items)
	out := make([]RawObjectDecl, len(params))
	for i, p := range params {
		out[i] = RawObjectDecl{Name: p.Name, Types: p.Types}
	}
	return out
}

func parsePredicateDecl(s Sexpr) RawPredicateDecl {
	if len(s.List) == 0 {
		return RawPredicateDecl{}
	}
	return RawPredicateDecl{Name: s.List[0].Atom, Params: parseParams(s.List[1:])}
}

// parseFunctionDecls handles "(:functions (fn ?a) (fn2 ?b) - number (total-cost))".
// "- number" suffixes are accepted and ignored: every function in this
// engine is a real-valued numeric fluent, so the type annotation carries
// no information translate needs.
func parseFunctionDecls(items []Sexpr) []RawFunctionDecl {
	var out []RawFunctionDecl
	for _, it := range items {
		if it.Atom == "-" {
			continue
		}
		if len(it.List) == 0 {
			continue
		}
		name := it.List[0].Atom
		out = append(out, RawFunctionDecl{Name: name, Params: parseParams(it.List[1:]), Total: name == "total-cost"})
	}
	return out
}

func parseAction(sec Sexpr) (RawAction, error) {
	act := RawAction{}
	items := sec.List[1:]
	if len(items) == 0 {
		return act, fmt.Errorf("frontend: :action missing name")
	}
	act.Name = items[0].Atom
	items = items[1:]
	for i := 0; i < len(items); i++ {
		key := strings.ToLower(items[i].Atom)
		switch key {
		case ":parameters":
			i++
			if i >= len(items) {
				return act, fmt.Errorf("frontend: :action %s missing :parameters value", act.Name)
			}
			act.Parameters = parseParams(items[i].List)
		case ":precondition":
			i++
			if i >= len(items) {
				return act, fmt.Errorf("frontend: :action %s missing :precondition value", act.Name)
			}
			act.Precondition = items[i]
		case ":effect":
			i++
			if i >= len(items) {
				return act, fmt.Errorf("frontend: :action %s missing :effect value", act.Name)
			}
			act.Effect = items[i]
		}
	}
	return act, nil
}
