package dsl

import (
	"context"
	"regexp"
	"strconv"
	"unicode/utf8"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// StringField accepts strings with optional length bounds and a pattern.
type StringField struct {
	base[*StringField]
	minLen  int
	maxLen  int
	pattern string
	re      *regexp.Regexp
}

// String returns a string field without constraints.
func String() *StringField {
	f := &StringField{minLen: -1, maxLen: -1}
	f.self = f
	return f
}

// MinLength sets the minimum length in characters (inclusive).
func (f *StringField) MinLength(n int) *StringField { f.minLen = n; return f }

// MaxLength sets the maximum length in characters (inclusive).
func (f *StringField) MaxLength(n int) *StringField { f.maxLen = n; return f }

// Regex requires the string to match pattern starting at its first
// character. The match need not cover the whole string unless the pattern
// anchors its end. It panics when pattern does not compile.
func (f *StringField) Regex(pattern string) *StringField {
	f.pattern = pattern
	f.re = regexp.MustCompile(anchorStart(pattern))
	return f
}

// CompileRegex validates pattern the way Regex compiles it.
func CompileRegex(pattern string) error {
	_, err := regexp.Compile(anchorStart(pattern))
	return err
}

func anchorStart(pattern string) string { return `^(?:` + pattern + `)` }

func (f *StringField) Clean(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return kindSet{goclean.KindString}.check(v)
	}
	n := utf8.RuneCountInString(s)
	if f.minLen >= 0 && n < f.minLen {
		return nil, goclean.NewFieldError(goclean.CodeTooShort,
			i18n.T(i18n.MsgStringTooShort, map[string]string{"min": strconv.Itoa(f.minLen)}))
	}
	if f.maxLen >= 0 && n > f.maxLen {
		return nil, goclean.NewFieldError(goclean.CodeTooLong,
			i18n.T(i18n.MsgStringTooLong, map[string]string{"max": strconv.Itoa(f.maxLen)}))
	}
	if f.re != nil && !f.re.MatchString(s) {
		return nil, goclean.NewFieldError(goclean.CodePattern,
			i18n.T(i18n.MsgPattern, map[string]string{"pattern": f.pattern}))
	}
	return s, nil
}

func (f *StringField) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "string", Pattern: exportPattern(f.pattern), Default: f.policy.Default}
	if f.minLen >= 0 {
		s.MinLength = intPtr(f.minLen)
	}
	if f.maxLen >= 0 {
		s.MaxLength = intPtr(f.maxLen)
	}
	return s, nil
}

// exportPattern anchors the pattern the way Clean matches it; JSON Schema
// patterns match anywhere in the string.
func exportPattern(pattern string) string {
	if pattern == "" {
		return ""
	}
	return anchorStart(pattern)
}
