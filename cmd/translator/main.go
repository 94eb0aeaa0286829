// Command translator implements spec.md §6's second CLI entry point:
// "translator <domain-file> <problem-file> — prints the normalised
// domain and problem."
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mimir/internal/formalism"
	"mimir/internal/frontend"
	"mimir/internal/index"
	"mimir/internal/translate"
)

var rootCmd = &cobra.Command{
	Use:          "translator <domain-file> <problem-file>",
	Short:        "Parse and print the normalised PDDL domain and problem",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	domainSrc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read domain file: %w", err)
	}
	problemSrc, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read problem file: %w", err)
	}

	rd, err := frontend.ParseDomain(string(domainSrc))
	if err != nil {
		return fmt.Errorf("parse domain: %w", err)
	}
	rp, err := frontend.ParseProblem(string(problemSrc))
	if err != nil {
		return fmt.Errorf("parse problem: %w", err)
	}

	domain, problem, err := translate.Translate(rd, rp)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	printDomain(domain)
	fmt.Println()
	printProblem(problem)
	return nil
}

func printDomain(d *formalism.Domain) {
	fmt.Printf("(define (domain %s)\n", d.Name)
	repo := d.Repo

	fmt.Println("  (:types")
	for _, t := range repo.Types {
		parentName := "object"
		if t.Parent != index.MaxIndex {
			parentName = repo.Types[t.Parent].Name
		}
		fmt.Printf("    %s - %s\n", t.Name, parentName)
	}
	fmt.Println("  )")

	fmt.Println("  (:predicates")
	for _, p := range repo.Predicates {
		fmt.Printf("    %s/%d [%s]\n", p.Name, p.Arity, categoryName(p.Category))
	}
	fmt.Println("  )")

	if len(repo.Functions) > 0 {
		fmt.Println("  (:functions")
		for _, f := range repo.Functions {
			fmt.Printf("    %s/%d\n", f.Name, f.Arity)
		}
		fmt.Println("  )")
	}

	names := make([]string, 0, len(repo.ActionSchemas))
	byName := make(map[string]formalism.ActionSchema, len(repo.ActionSchemas))
	for _, s := range repo.ActionSchemas {
		names = append(names, s.Name)
		byName[s.Name] = s
	}
	sort.Strings(names)
	for _, n := range names {
		s := byName[n]
		fmt.Printf("  (:action %s\n", s.Name)
		fmt.Printf("    :parameters (%s)\n", joinParams(s.Parameters))
		fmt.Printf("    :precondition <normalised NNF, %d literals>\n", countLiterals(s.Precondition))
		fmt.Printf("    :effect <%d unconditional/conditional effect(s)>\n", len(s.Effects))
		fmt.Println("  )")
	}

	fmt.Printf("  (:derived %d axiom(s) in %d stratification slot(s) total)\n", len(repo.Axioms), len(repo.Axioms))
	fmt.Println(")")
}

func printProblem(p *formalism.Problem) {
	fmt.Printf("(define (problem %s)\n", p.Name)
	fmt.Printf("  (:objects %d)\n", len(p.Objects))
	fmt.Printf("  (:init %d static, %d fluent atom(s), %d numeric init(s))\n",
		len(p.InitialStaticAtoms), len(p.InitialFluentAtoms), len(p.InitialNumericInits))
	fmt.Printf("  (:goal <normalised NNF, %d literals>)\n", countLiterals(p.Goal))
	if p.Metric != nil {
		dir := "minimize"
		if !p.Metric.Minimize {
			dir = "maximize"
		}
		fmt.Printf("  (:metric %s <expr>)\n", dir)
	}
	fmt.Println(")")
}

func categoryName(c formalism.Category) string {
	switch c {
	case formalism.Static:
		return "static"
	case formalism.Fluent:
		return "fluent"
	default:
		return "derived"
	}
}

func joinParams(params []formalism.Variable) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, " ")
}

func countLiterals(cc formalism.ConjunctiveCondition) int {
	n := len(cc.Numeric)
	for cat := formalism.Static; cat <= formalism.Derived; cat++ {
		n += len(cc.Literals[cat]) + len(cc.NullaryLiterals[cat])
	}
	return n
}
