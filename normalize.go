package locode

import "strings"

func trim(s string) string {
	return strings.TrimSpace(s)
}

// normalizeCode canonicalizes country and city codes: trimmed and upper-cased.
func normalizeCode(s string) string {
	return toUpper(trim(s))
}

func normalizeStatus(s string) Status {
	return Status(normalizeCode(s))
}

// parseFunctionClassifier maps raw classifier text such as "1-3-5--B" to
// tags. Characters that are not 1..7 or B/b are dropped; order and
// duplicates are kept.
func parseFunctionClassifier(raw string) []Function {
	var fns []Function
	for _, r := range trim(raw) {
		switch {
		case r >= '1' && r <= '7':
			fns = append(fns, Function(r))
		case r == 'B' || r == 'b':
			fns = append(fns, BorderCrossing)
		}
	}
	return fns
}

func validFunctions(in []Function) []Function {
	var out []Function
	for _, f := range in {
		if f.Valid() {
			out = append(out, f)
		}
	}
	return out
}

// appendNames appends the trimmed, non-empty names to dst.
func appendNames(dst []string, names ...string) []string {
	for _, n := range names {
		if n = trim(n); n != "" {
			dst = append(dst, n)
		}
	}
	return dst
}

// toLower converts a string to lowercase using the standard library.
//
// Source names are international ("Göteborg", "Zürich", "São Paulo"); byte
// level ASCII folding would corrupt them.
func toLower(s string) string {
	return strings.ToLower(s)
}

// toUpper converts a string to uppercase using the standard library.
// See toLower.
func toUpper(s string) string {
	return strings.ToUpper(s)
}
