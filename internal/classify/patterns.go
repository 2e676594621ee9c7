package classify

import (
	"log"
	"regexp"
)

// compilePattern compiles a regex, degrading to nil on failure so a bad
// pattern disables that single check instead of crashing classification.
func compilePattern(expr string) *regexp.Regexp {
	re, err := regexp.Compile(expr)
	if err != nil {
		log.Printf("classify: pattern failed to compile, check disabled: %v", err)
		return nil
	}
	return re
}

// matches reports whether re matches s, treating a nil (failed) pattern
// as never matching.
func matches(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}

// Full-string patterns for the early, high-precision checks.
var (
	urlPattern   = compilePattern(`^(?:https?|ftp)://[^\s]+$`)
	emailPattern = compilePattern(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = compilePattern(`^\+?[0-9][0-9 ().\-]{5,18}[0-9]$`)
)

// Credential patterns: any match classifies the content as a credential.
var credentialPatterns = []*regexp.Regexp{
	// API-key-like prefix followed by a long alphanumeric value
	compilePattern(`(?i)^(?:api[_-]?key|secret|token)[:=\s]+[A-Za-z0-9_\-]{16,}$`),
	// Long base64-looking blob
	compilePattern(`^[A-Za-z0-9+/]{40,}={0,2}$`),
	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	compilePattern(`^gh[pousr]_[A-Za-z0-9]{36,}$`),
	// Slack tokens
	compilePattern(`^xox[baprs]-[A-Za-z0-9\-]{10,}$`),
	// AWS access key IDs
	compilePattern(`^AKIA[0-9A-Z]{16}$`),
	// PEM private key header
	compilePattern(`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`),
}

// codeKeywords is the fixed marker list for code detection. Any hit
// classifies the content as code (subject to earlier checks winning).
var codeKeywords = []string{
	"func ",
	"function ",
	"def ",
	"class ",
	"import ",
	"package ",
	"#include",
	"public ",
	"private ",
	"return ",
	"const ",
	"=>",
	"!= ",
	"== ",
	"&&",
	"||",
}

// Street-address fallback patterns for when the place oracle is silent.
var (
	streetPattern = compilePattern(`(?i)\b\d{1,5}\s+[A-Za-z][A-Za-z .']*\s+(?:st(?:reet)?|ave(?:nue)?|blvd|boulevard|rd|road|dr(?:ive)?|ln|lane|ct|court|way|pl(?:ace)?|ter(?:race)?)\b\.?`)
	zipPattern    = compilePattern(`\b\d{5}(?:-\d{4})?\b`)
)
