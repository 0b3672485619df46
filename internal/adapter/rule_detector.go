package adapter

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	regexp "github.com/wasilibs/go-re2"
	"gopkg.in/yaml.v3"

	m "warden.dev/pkg/warden/internal/model"
)

// RuleDetectorName is the Source of findings produced by RuleDetector.
const RuleDetectorName = "rules"

//go:embed default_rules.yaml
var defaultRulesYAML []byte

type compiledRule struct {
	rule       m.Rule
	confidence m.Confidence
	pattern    *regexp.Regexp
	groups     []int // capture groups that may hold the tainted input, in preference order
	files      *patternmatcher.PatternMatcher
}

// RuleDetector matches line-oriented regular expressions against file
// contents. On a given line only the first matching rule of a category is
// reported.
type RuleDetector struct {
	rules []compiledRule
}

// DefaultRules returns the built-in rule set.
func DefaultRules() ([]m.Rule, error) {
	return LoadRules(defaultRulesYAML)
}

// LoadRules parses a YAML rules document.
func LoadRules(data []byte) ([]m.Rule, error) {
	var set m.RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	return set.Rules, nil
}

// LoadRulesFile reads and parses a YAML rules file.
func LoadRulesFile(path string) ([]m.Rule, error) {
	// #nosec G304 - rules file is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	return LoadRules(data)
}

// NewRuleDetector compiles rules. Every rule must have an id, a category and
// a valid pattern.
func NewRuleDetector(rules []m.Rule) (*RuleDetector, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for i, rule := range rules {
		c, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.ID, err)
		}

		compiled = append(compiled, c)
	}

	return &RuleDetector{rules: compiled}, nil
}

func compileRule(rule m.Rule) (compiledRule, error) {
	if strings.TrimSpace(rule.ID) == "" {
		return compiledRule{}, fmt.Errorf("missing id")
	}

	if strings.TrimSpace(rule.Category) == "" {
		return compiledRule{}, fmt.Errorf("missing category")
	}

	confidence, err := m.ParseConfidence(rule.Confidence)
	if err != nil {
		return compiledRule{}, err
	}

	pattern, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return compiledRule{}, fmt.Errorf("compile pattern: %w", err)
	}

	c := compiledRule{
		rule:       rule,
		confidence: confidence,
		pattern:    pattern,
		groups:     inputGroups(pattern.SubexpNames(), rule.InputGroup),
	}

	if len(rule.Files) > 0 {
		c.files, err = patternmatcher.New(rule.Files)
		if err != nil {
			return compiledRule{}, fmt.Errorf("compile file patterns: %w", err)
		}
	}

	return c, nil
}

// inputGroups orders the named groups so the preferred one is tried first.
func inputGroups(names []string, preferred string) []int {
	if preferred == "" {
		preferred = "input"
	}

	var groups []int

	for i, name := range names {
		if name == preferred {
			groups = append([]int{i}, groups...)
		} else if name != "" {
			groups = append(groups, i)
		}
	}

	return groups
}

// Name implements Detector.
func (d *RuleDetector) Name() string {
	return RuleDetectorName
}

// Rules returns the rules in evaluation order.
func (d *RuleDetector) Rules() []m.Rule {
	rules := make([]m.Rule, 0, len(d.rules))
	for _, c := range d.rules {
		rules = append(rules, c.rule)
	}

	return rules
}

// Detect implements Detector.
func (d *RuleDetector) Detect(ctx context.Context, path m.Path, content []byte) ([]m.Finding, error) {
	applicable := d.rulesFor(path)
	if len(applicable) == 0 {
		return nil, nil
	}

	var findings []m.Finding

	for i, line := range bytes.Split(content, []byte("\n")) {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line = bytes.TrimSuffix(line, []byte("\r"))
		reported := map[string]bool{}

		for _, c := range applicable {
			if reported[c.rule.Category] {
				continue
			}

			loc := c.pattern.FindSubmatchIndex(line)
			if loc == nil {
				continue
			}

			reported[c.rule.Category] = true
			findings = append(findings, m.Finding{
				File:       path,
				Line:       i + 1,
				Confidence: c.confidence,
				Category:   c.rule.Category,
				Message:    c.rule.Message,
				Input:      capturedInput(line, loc, c.groups),
				Code:       c.rule.ID,
				Link:       c.rule.Link,
				Source:     RuleDetectorName,
			})
		}
	}

	return findings, nil
}

func (d *RuleDetector) rulesFor(path m.Path) []compiledRule {
	target := strings.TrimPrefix(filepath.ToSlash(string(path)), "/")

	var applicable []compiledRule

	for _, c := range d.rules {
		if c.files == nil {
			applicable = append(applicable, c)
			continue
		}

		if ok, err := c.files.MatchesOrParentMatches(filepath.FromSlash(target)); err == nil && ok {
			applicable = append(applicable, c)
		}
	}

	return applicable
}

func capturedInput(line []byte, loc []int, groups []int) string {
	for _, group := range groups {
		start, end := loc[2*group], loc[2*group+1]
		if start >= 0 && end > start {
			return strings.TrimSpace(string(line[start:end]))
		}
	}

	return ""
}
