package codec

import (
	"sort"
	"strconv"
	"strings"
)

type accepted struct {
	name string
	q    float64
}

// parseAccept splits an Accept-Charset or Accept-Encoding header into
// lower-cased names with their q-values, highest first. Entries with a
// malformed q-value are dropped.
func parseAccept(header string) []accepted {
	var out []accepted
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		name := normalizeName(fields[0])
		if name == "" {
			continue
		}
		q, valid := 1.0, true
		for _, p := range fields[1:] {
			k, v, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || !strings.EqualFold(strings.TrimSpace(k), "q") {
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0 || f > 1 {
				valid = false
				break
			}
			q = f
		}
		if valid {
			out = append(out, accepted{name: name, q: q})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].q > out[j].q })
	return out
}

// ParseAccept returns the names listed by an Accept-Charset or
// Accept-Encoding header ordered by q-value. Ties keep header order and
// names with q=0 are dropped. "*" is kept as is.
func ParseAccept(header string) []string {
	var names []string
	for _, a := range parseAccept(header) {
		if a.q > 0 {
			names = append(names, a.name)
		}
	}
	return names
}

// Preferences turns a header into the candidate list for TryEncode. An empty
// header yields supported. A header refusing everything yields an empty,
// non-nil list so that TryEncode fails instead of using its defaults. "*" expands to the supported names the header
// neither lists nor refuses with q=0.
func Preferences(header string, supported []string) []string {
	if strings.TrimSpace(header) == "" {
		return append([]string(nil), supported...)
	}
	parsed := parseAccept(header)
	mentioned := make(map[string]bool, len(parsed))
	for _, a := range parsed {
		mentioned[a.name] = true
	}
	out := []string{}
	seen := map[string]bool{}
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, a := range parsed {
		if a.q <= 0 {
			continue
		}
		if a.name != "*" {
			add(a.name)
			continue
		}
		for _, s := range supported {
			if n := normalizeName(s); !mentioned[n] {
				add(n)
			}
		}
	}
	return out
}

// EncodingPreferences is Preferences for Accept-Encoding: identity stays
// acceptable unless the header refuses it explicitly or through "*;q=0".
// An empty header yields identity alone.
func EncodingPreferences(header string, supported []string) []string {
	if strings.TrimSpace(header) == "" {
		return []string{DefaultEncoding}
	}
	prefs := Preferences(header, supported)
	for _, p := range prefs {
		if p == DefaultEncoding {
			return prefs
		}
	}
	for _, a := range parseAccept(header) {
		if a.q <= 0 && (a.name == DefaultEncoding || a.name == "*") {
			return prefs
		}
	}
	return append(prefs, DefaultEncoding)
}
