// Copyright 2025 walteh LLC
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

package rules

import (
	"regexp"
	"strings"
)

// 🔄 Rule rewrites one legacy tuple-style AppError call shape into its
// structured literal form. Pattern matching is flat-text: the string-argument
// patterns stop at the first double quote (an escaped quote inside the
// literal breaks the match) and the expression pattern stops at the first
// closing paren. Both limitations are intentional.
type Rule struct {
	Name        string         // short identifier, used in reports
	Pattern     *regexp.Regexp // old-form call shape
	Replacement string         // template with $1 carrying the captured argument
}

// Apply rewrites every non-overlapping match in text. Zero matches returns
// the text unchanged.
func (r Rule) Apply(text string) (string, int) {
	count := len(r.Pattern.FindAllStringIndex(text, -1))
	if count == 0 {
		return text, 0
	}
	return r.Pattern.ReplaceAllString(text, r.Replacement), count
}

// Matches reports how many old-form occurrences remain in text without
// rewriting anything.
func (r Rule) Matches(text string) int {
	return len(r.Pattern.FindAllStringIndex(text, -1))
}

// structLiteral renders the replacement template for a struct-variant
// literal. Field lines are indented to sit inside a match arm, the way the
// converted call sites are formatted in the target tree.
func structLiteral(variant string, fields ...string) string {
	var b strings.Builder
	b.WriteString("AppError::")
	b.WriteString(variant)
	b.WriteString(" {")
	for _, field := range fields {
		b.WriteString("\n                ")
		b.WriteString(field)
	}
	b.WriteString("\n            }")
	return b.String()
}

// Default returns the legacy-AppError ruleset in its fixed application
// order. The rules' patterns are disjoint, so order does not change the
// output, but it is preserved for reproducibility.
func Default() []Rule {
	return []Rule{
		{
			Name:    "file-system",
			Pattern: regexp.MustCompile(`AppError::FileSystem\("([^"]+)"\)`),
			Replacement: structLiteral("FileSystemError",
				`message: "$1".to_string(),`,
				`path: "unknown".to_string(),`,
				`operation: "unknown".to_string(),`,
			),
		},
		{
			Name:    "process",
			Pattern: regexp.MustCompile(`AppError::Process\("([^"]+)"\)`),
			Replacement: structLiteral("ProcessError",
				`message: "$1".to_string(),`,
				`process_id: None,`,
				`operation: "unknown".to_string(),`,
			),
		},
		{
			Name:    "validation",
			Pattern: regexp.MustCompile(`AppError::Validation\("([^"]+)"\)`),
			Replacement: structLiteral("ValidationError",
				`message: "$1".to_string(),`,
				`field: "unknown".to_string(),`,
				`value: "unknown".to_string(),`,
			),
		},
		{
			// the only rule with a non-string argument: the captured
			// expression is carried over verbatim, unquoted
			Name:    "server-not-found",
			Pattern: regexp.MustCompile(`AppError::ServerNotFound\(([^)]+)\)`),
			Replacement: structLiteral("ServerError",
				`message: "Server not found".to_string(),`,
				`server_id: $1,`,
				`operation: "get".to_string(),`,
			),
		},
		{
			Name:    "internal",
			Pattern: regexp.MustCompile(`AppError::Internal\("([^"]+)"\)`),
			Replacement: structLiteral("InternalError",
				`message: "$1".to_string(),`,
				`operation: "unknown".to_string(),`,
			),
		},
		{
			Name:    "authentication",
			Pattern: regexp.MustCompile(`AppError::Authentication\("([^"]+)"\)`),
			Replacement: structLiteral("AuthenticationError",
				`message: "$1".to_string(),`,
				`reason: crate::core::error_handler::AuthErrorReason::InternalError,`,
			),
		},
		{
			Name:    "authorization",
			Pattern: regexp.MustCompile(`AppError::Authorization\("([^"]+)"\)`),
			Replacement: structLiteral("AuthorizationError",
				`message: "$1".to_string(),`,
				`required_permission: "unknown".to_string(),`,
				`user_role: "unknown".to_string(),`,
			),
		},
	}
}

// DefaultTargets returns the source files the migration was written for,
// relative to the repository root it is run from.
func DefaultTargets() []string {
	return []string{
		"hostd/src/core/file_manager.rs",
		"hostd/src/core/security.rs",
		"hostd/src/core/monitoring.rs",
		"hostd/src/core/websocket.rs",
	}
}
