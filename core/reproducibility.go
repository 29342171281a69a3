package core

import (
	"context"
	"regexp"
	"strings"

	"github.com/modelgate/modelgate/schema"
)

// unsafePatterns mark snippets that must never be considered runnable
// demonstration code: shell escapes, file and network side effects.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`os\.system`),
	regexp.MustCompile(`subprocess\.`),
	regexp.MustCompile(`\bexec\(`),
	regexp.MustCompile(`\beval\(`),
	regexp.MustCompile(`__import__`),
	regexp.MustCompile(`\bopen\(`),
	regexp.MustCompile(`requests\.`),
	regexp.MustCompile(`urllib\.`),
	regexp.MustCompile(`socket\.`),
	regexp.MustCompile(`rm\s+-`),
	regexp.MustCompile("`"),
	regexp.MustCompile(`\$\(`),
}

var codeFencePattern = regexp.MustCompile("(?s)```(?:python|py)\\s*\n(.*?)```")

// ReproducibilityEvaluator statically checks that the usage snippets
// documented in the model card are plausible to run: fenced python
// blocks, free of dangerous operations, syntactically well-formed.
type ReproducibilityEvaluator struct{}

// Name implements the Evaluator interface.
func (e *ReproducibilityEvaluator) Name() schema.MetricName { return schema.MetricReproducibility }

// Evaluate scores 1.0 when every safe snippet is well-formed, 0.5 when
// at least one is, and 0.0 with no snippets or no safe well-formed code.
func (e *ReproducibilityEvaluator) Evaluate(ctx context.Context, art *ArtifactContext) (schema.MetricValue, error) {
	readme, err := art.Readme(ctx)
	if err != nil || readme == "" {
		return schema.Value(0.0), nil
	}

	snippets := extractCodeBlocks(readme)
	if len(snippets) == 0 {
		return schema.Value(0.0), nil
	}

	var safe []string
	for _, snippet := range snippets {
		if safeSnippet(snippet) {
			safe = append(safe, snippet)
		}
	}
	if len(safe) == 0 {
		return schema.Value(0.0), nil
	}

	wellFormed := 0
	for _, snippet := range safe {
		if wellFormedSnippet(snippet) {
			wellFormed++
		}
	}
	switch {
	case wellFormed == len(safe):
		return schema.Value(1.0), nil
	case wellFormed > 0:
		return schema.Value(0.5), nil
	default:
		return schema.Value(0.0), nil
	}
}

// extractCodeBlocks pulls fenced python snippets out of markdown.
func extractCodeBlocks(markdown string) []string {
	var blocks []string
	for _, match := range codeFencePattern.FindAllStringSubmatch(markdown, -1) {
		if body := strings.TrimSpace(match[1]); body != "" {
			blocks = append(blocks, body)
		}
	}
	return blocks
}

func safeSnippet(code string) bool {
	for _, pat := range unsafePatterns {
		if pat.MatchString(code) {
			return false
		}
	}
	return true
}

// wellFormedSnippet is a static sanity check: balanced brackets outside
// string literals and no line left dangling on an opening bracket at
// end of input. It deliberately stops far short of a real parser.
func wellFormedSnippet(code string) bool {
	var stack []rune
	var inString rune // active quote, 0 when outside
	inComment := false
	escaped := false

	for _, r := range code {
		if escaped {
			escaped = false
			continue
		}
		if inComment {
			if r == '\n' {
				inComment = false
			}
			continue
		}
		if inString != 0 {
			switch r {
			case '\\':
				escaped = true
			case inString:
				inString = 0
			}
			continue
		}
		switch r {
		case '\'', '"':
			inString = r
		case '#':
			inComment = true
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 {
				return false
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if (r == ')' && open != '(') || (r == ']' && open != '[') || (r == '}' && open != '{') {
				return false
			}
		}
	}
	return len(stack) == 0 && inString == 0
}
