// Copyright 2025 the rexname authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// indexRef is the special bracketed reference that renders the running index.
const indexRef = "index"

// ❌ TemplateError reports a target template that references something the
// match cannot supply: an unknown special reference, or a capture group the
// pattern does not define.
type TemplateError struct {
	Ref       string // unknown \(ref) text, if any
	Group     int    // referenced group, when the problem is a group ref
	NumGroups int    // groups actually available
}

func (e *TemplateError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("unknown special reference `%s`", e.Ref)
	}
	return fmt.Sprintf("template references group %d but the pattern defines %d group(s)", e.Group, e.NumGroups)
}

// tokenKind discriminates template tokens
type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenGroup
	tokenIndex
)

type token struct {
	kind  tokenKind
	text  string // literal text
	group int    // 1-based group reference
}

// 📝 Template is the parsed target-name template: an ordered sequence of
// literals, \N / \(N) group references, and \(index) placeholders. Group 0
// references the whole matched name. Immutable.
type Template struct {
	raw    string
	tokens []token
}

// ParseTemplate tokenizes a raw target template. Besides plain text it
// recognizes \N and \(N) capture-group references (group 0 is the whole
// matched name) and the \(index) placeholder (keyword matched
// case-insensitively). Any other \(word) is a TemplateError. A backslash not
// followed by a digit or bracket, and a bracket pair that never closes, pass
// through literally.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			t.tokens = append(t.tokens, token{kind: tokenLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			literal.WriteByte(raw[i])
			i++
			continue
		}

		rest := raw[i+1:]
		switch {
		case strings.HasPrefix(rest, "("):
			end := strings.IndexByte(rest, ')')
			if end < 0 {
				literal.WriteString(raw[i:])
				i = len(raw)
				continue
			}
			ref := rest[1:end]
			if n, err := strconv.Atoi(ref); err == nil {
				flush()
				t.tokens = append(t.tokens, token{kind: tokenGroup, group: n})
			} else if strings.EqualFold(ref, indexRef) {
				flush()
				t.tokens = append(t.tokens, token{kind: tokenIndex})
			} else {
				return nil, &TemplateError{Ref: ref}
			}
			i += 1 + end + 1
		case len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9':
			j := 0
			for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(rest[:j])
			flush()
			t.tokens = append(t.tokens, token{kind: tokenGroup, group: n})
			i += 1 + j
		default:
			literal.WriteByte('\\')
			i++
		}
	}
	flush()

	return t, nil
}

// HasIndex reports whether the template consumes the running index.
func (t *Template) HasIndex() bool {
	for _, tok := range t.tokens {
		if tok.kind == tokenIndex {
			return true
		}
	}
	return false
}

// Validate checks every group reference against the number of groups the
// compiled pattern actually defines. Group 0 is always available.
func (t *Template) Validate(numGroups int) error {
	for _, tok := range t.tokens {
		if tok.kind != tokenGroup {
			continue
		}
		if tok.group > numGroups {
			return &TemplateError{Group: tok.group, NumGroups: numGroups}
		}
	}
	return nil
}

// Render substitutes the matched name (\0), group texts, and the (already
// padded) index string into the template. Callers validate group references
// beforehand; an out-of-range reference here is still reported rather than
// panicking.
func (t *Template) Render(name string, groups []string, index string) (string, error) {
	var b strings.Builder
	for _, tok := range t.tokens {
		switch tok.kind {
		case tokenLiteral:
			b.WriteString(tok.text)
		case tokenGroup:
			if tok.group == 0 {
				b.WriteString(name)
				continue
			}
			if tok.group > len(groups) {
				return "", &TemplateError{Group: tok.group, NumGroups: len(groups)}
			}
			b.WriteString(groups[tok.group-1])
		case tokenIndex:
			b.WriteString(index)
		}
	}
	return b.String(), nil
}

// String returns the raw template text.
func (t *Template) String() string {
	return t.raw
}
