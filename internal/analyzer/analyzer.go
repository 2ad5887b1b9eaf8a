package analyzer

import (
	"fmt"

	"github.com/tffedibot/fedibot/internal/migration"
	"github.com/tffedibot/fedibot/internal/parser"
)

// statementDisplayLen bounds Finding.Statement.
const statementDisplayLen = 120

// Option configures the Analyzer.
type Option func(*Analyzer)

// Analyzer runs registered rules against the statements of migration scripts.
type Analyzer struct {
	registry    *Registry
	parseFn     func(string) (*parser.ParseResult, error)
	minSeverity Severity
}

// New creates a new Analyzer with the given options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		registry: NewRegistry(),
		parseFn:  parser.Parse,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithRegistry sets a custom rule registry.
func WithRegistry(r *Registry) Option {
	return func(a *Analyzer) { a.registry = r }
}

// WithMinSeverity drops findings below sev.
func WithMinSeverity(sev Severity) Option {
	return func(a *Analyzer) { a.minSeverity = sev }
}

// WithParser overrides the SQL parser function (useful for testing).
func WithParser(fn func(string) (*parser.ParseResult, error)) Option {
	return func(a *Analyzer) { a.parseFn = fn }
}

// Analyze parses and analyzes a single script, returning all findings.
func (a *Analyzer) Analyze(s *migration.Script) (*AnalysisResult, error) {
	result, err := a.parseFn(s.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", s.Name, err)
	}

	var findings []Finding

	maxSeverity := Safe

	for i, stmt := range result.Stmts {
		ctx := &RuleContext{Script: s, StmtIndex: i}

		for _, rule := range a.registry.Rules() {
			for _, f := range rule.Check(stmt, ctx) {
				if f.Severity < a.minSeverity {
					continue
				}

				if f.Statement == "" {
					f.Statement = TruncateSQL(stmt.Text, statementDisplayLen)
				}

				maxSeverity = max(maxSeverity, f.Severity)
				findings = append(findings, f)
			}
		}
	}

	return &AnalysisResult{
		Script:      s,
		Findings:    findings,
		MaxSeverity: maxSeverity,
	}, nil
}

// AnalyzeAll analyzes multiple scripts and returns results for each.
func (a *Analyzer) AnalyzeAll(scripts []migration.Script) ([]AnalysisResult, error) {
	results := make([]AnalysisResult, 0, len(scripts))

	for i := range scripts {
		r, err := a.Analyze(&scripts[i])
		if err != nil {
			return nil, err
		}

		results = append(results, *r)
	}

	return results, nil
}
