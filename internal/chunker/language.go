package chunker

import (
	"regexp"
	"strings"
)

// languageSignature pairs a language tag with a content predicate. Signatures
// are evaluated in a fixed priority order; the first match wins.
type languageSignature struct {
	language string
	match    func(code string) bool
}

var (
	cppRe        = regexp.MustCompile(`(?m)^#include\s|^using namespace\s|int main\s*\(`)
	cHeaderRe    = regexp.MustCompile(`(?m)^#include\s.*\.h>|int main\s*\(`)
	classRe      = regexp.MustCompile(`(?m)class\s`)
	pythonRe     = regexp.MustCompile(`(?m)^import\s+\w|^from\s+\w+\s+import|def\s+\w+\s*\(|class\s+\w+.*:`)
	javascriptRe = regexp.MustCompile(`(?m)^(const|let|var|function|import|export)\s`)
	typescriptRe = regexp.MustCompile(`(?m):\s*(string|number|boolean|void)\s*[;=,){\n]|interface\s+\w+`)
	goRe         = regexp.MustCompile(`(?m)^package\s+\w|^import\s+"|func\s+\w+`)
	javaRe       = regexp.MustCompile(`(?m)^(public|private|protected)\s+(static\s+)?(class|void|int|String)`)
	rustRe       = regexp.MustCompile(`(?m)^use\s+\w|fn\s+\w+|let\s+mut\s`)
	jsxTagRe     = regexp.MustCompile(`(?i)<[a-z]+[\s>]|</[a-z]+>`)
	jsxIdentRe   = regexp.MustCompile(`className|onClick|useState`)
	sqlRe        = regexp.MustCompile(`(?im)^SELECT\s|^INSERT\s|^CREATE\s`)
)

// languageSignatures is the detection priority order. JSX requires both an
// angle-bracket tag and a React-ish identifier so plain HTML-ish text doesn't
// trip it.
var languageSignatures = []languageSignature{
	{"cpp", cppRe.MatchString},
	{"c", func(code string) bool { return cHeaderRe.MatchString(code) && !classRe.MatchString(code) }},
	{"python", pythonRe.MatchString},
	{"javascript", javascriptRe.MatchString},
	{"typescript", typescriptRe.MatchString},
	{"go", goRe.MatchString},
	{"java", javaRe.MatchString},
	{"rust", rustRe.MatchString},
	{"jsx", func(code string) bool { return jsxTagRe.MatchString(code) && jsxIdentRe.MatchString(code) }},
	{"sql", sqlRe.MatchString},
}

// DetectLanguage returns the programming language of a code snippet. A caller
// supplied hint always wins (lower-cased); otherwise the signature table is
// consulted in priority order. Returns "text" when nothing matches.
func DetectLanguage(code, hint string) string {
	if hint != "" {
		return strings.ToLower(hint)
	}

	for _, sig := range languageSignatures {
		if sig.match(code) {
			return sig.language
		}
	}

	return "text"
}
