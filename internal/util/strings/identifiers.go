package strings

import (
	"strings"
	"unicode"
)

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "_": true,
}

// IsJavaKeyword reports whether name is a reserved word or literal
func IsJavaKeyword(name string) bool {
	return javaKeywords[name]
}

// IsJavaIdentifier reports whether name is a syntactically valid identifier.
// Keywords are not rejected here, see IsValidJavaName.
func IsJavaIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' && r != '$' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}

// IsValidJavaName reports whether name can be used verbatim as a method name suffix
func IsValidJavaName(name string) bool {
	return IsJavaIdentifier(name) && !IsJavaKeyword(name)
}

// IsJavaPackageName reports whether name is a dotted sequence of valid identifiers
func IsJavaPackageName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if !IsValidJavaName(part) {
			return false
		}
	}
	return true
}
