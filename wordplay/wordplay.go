// Package wordplay detects the linguistic tricks Connections puzzles lean
// on: tokens that split into two first names, shared compound anchors,
// homophone clusters and common affixes.
package wordplay

import (
	"fmt"
	"sort"
	"strings"
)

// NameSplit is one way of reading a token as two concatenated first names.
type NameSplit struct {
	First  string
	Second string
}

// CompoundPattern groups tokens that combine with the same anchor word.
type CompoundPattern struct {
	// Pattern is the human-readable form, e.g. "___ BALL" or "SNOW ___".
	Pattern string
	Anchor  string
	Words   []string
}

// Findings aggregates every detected pattern over one puzzle's tokens.
type Findings struct {
	NameSplits map[string][]NameSplit
	Compounds  []CompoundPattern
	Homophones [][]string
	Prefixes   map[string][]string
}

// NameSplits returns every way the token reads as two common first names.
// Each part needs at least two letters.
func NameSplits(token string) []NameSplit {
	word := strings.ToUpper(strings.TrimSpace(token))
	var out []NameSplit
	for i := 2; i <= len(word)-2; i++ {
		first, second := word[:i], word[i:]
		if _, ok := commonNames[first]; !ok {
			continue
		}
		if _, ok := commonNames[second]; ok {
			out = append(out, NameSplit{First: first, Second: second})
		}
	}
	return out
}

// Affixes returns the first matching common prefix and suffix of the token,
// or empty strings.
func Affixes(token string) (prefix, suffix string) {
	word := strings.ToUpper(strings.TrimSpace(token))
	for _, p := range commonPrefixes {
		if strings.HasPrefix(word, p) {
			prefix = p
			break
		}
	}
	for _, s := range commonSuffixes {
		if strings.HasSuffix(word, s) && len(word) > len(s) {
			suffix = s
			break
		}
	}
	return prefix, suffix
}

// Soundex computes a four-character phonetic code: first letter kept, later
// consonants bucketed by sound, zero-padded.
func Soundex(token string) string {
	word := strings.ToUpper(strings.TrimSpace(token))
	if word == "" {
		return ""
	}
	code := word[:1]
	for _, r := range word[1:] {
		if d, ok := soundexDigit(byte(r)); ok {
			code += d
		}
		if len(code) >= 4 {
			break
		}
	}
	for len(code) < 4 {
		code += "0"
	}
	return code
}

func soundexDigit(c byte) (string, bool) {
	switch c {
	case 'B', 'F', 'P', 'V':
		return "1", true
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return "2", true
	case 'D', 'T':
		return "3", true
	case 'L':
		return "4", true
	case 'M', 'N':
		return "5", true
	case 'R':
		return "6", true
	}
	return "", false
}

// HomophoneGroups buckets tokens by phonetic code and returns buckets with
// two or more members, in first-seen order.
func HomophoneGroups(tokens []string) [][]string {
	byCode := make(map[string][]string)
	var codes []string
	for _, tok := range tokens {
		code := Soundex(tok)
		if code == "" {
			continue
		}
		if _, ok := byCode[code]; !ok {
			codes = append(codes, code)
		}
		byCode[code] = append(byCode[code], strings.ToUpper(tok))
	}
	var out [][]string
	for _, code := range codes {
		if group := byCode[code]; len(group) >= 2 {
			out = append(out, group)
		}
	}
	return out
}

// CompoundPatterns finds anchors that at least three of the tokens combine
// with, in the "___ ANCHOR" form.
func CompoundPatterns(tokens []string) []CompoundPattern {
	upper := make([]string, len(tokens))
	for i, tok := range tokens {
		upper[i] = strings.ToUpper(strings.TrimSpace(tok))
	}

	anchors := make([]string, 0, len(compounds))
	for anchor := range compounds {
		anchors = append(anchors, anchor)
	}
	sort.Strings(anchors)

	var out []CompoundPattern
	for _, anchor := range anchors {
		partners := compounds[anchor]
		var before []string
		for _, tok := range upper {
			if containsWord(partners, tok) {
				before = append(before, tok)
			}
		}
		if len(before) >= 3 {
			out = append(out, CompoundPattern{
				Pattern: fmt.Sprintf("___ %s", anchor),
				Anchor:  anchor,
				Words:   before,
			})
		}
	}
	return out
}

// Analyze runs every detector over the puzzle tokens.
func Analyze(tokens []string) Findings {
	f := Findings{
		NameSplits: make(map[string][]NameSplit),
		Prefixes:   make(map[string][]string),
		Compounds:  CompoundPatterns(tokens),
		Homophones: HomophoneGroups(tokens),
	}
	for _, tok := range tokens {
		upper := strings.ToUpper(strings.TrimSpace(tok))
		if splits := NameSplits(upper); len(splits) > 0 {
			f.NameSplits[upper] = splits
		}
		if prefix, _ := Affixes(upper); prefix != "" {
			f.Prefixes[prefix] = append(f.Prefixes[prefix], upper)
		}
	}
	return f
}

// HasWordplay reports whether the token participates in any detected
// pattern. It satisfies the resolver's signal shape.
func (f Findings) HasWordplay(token string) bool {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := f.NameSplits[upper]; ok {
		return true
	}
	for _, p := range f.Compounds {
		if containsWord(p.Words, upper) {
			return true
		}
	}
	for _, group := range f.Homophones {
		if containsWord(group, upper) && len(group) >= 2 {
			return true
		}
	}
	return false
}

// FitsBlank reports whether the token combines with the anchor word implied
// by a fill-in-the-blank category label such as "___ BALL".
func FitsBlank(token, categoryLabel string) bool {
	anchor := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(categoryLabel, "___", "")))
	partners, ok := compounds[anchor]
	if !ok {
		return false
	}
	return containsWord(partners, strings.ToUpper(strings.TrimSpace(token)))
}

// Format renders the findings as prompt-ready text for the language model.
func (f Findings) Format() string {
	var b strings.Builder
	if len(f.NameSplits) > 0 {
		b.WriteString("NAME COMBINATIONS DETECTED:\n")
		words := make([]string, 0, len(f.NameSplits))
		for w := range f.NameSplits {
			words = append(words, w)
		}
		sort.Strings(words)
		for _, w := range words {
			for _, s := range f.NameSplits[w] {
				fmt.Fprintf(&b, "  - %s = %s + %s\n", w, s.First, s.Second)
			}
		}
	}
	if len(f.Compounds) > 0 {
		b.WriteString("COMPOUND WORD PATTERNS:\n")
		for _, p := range f.Compounds {
			fmt.Fprintf(&b, "  - %s: %s\n", p.Pattern, strings.Join(p.Words, ", "))
		}
	}
	if len(f.Homophones) > 0 {
		b.WriteString("HOMOPHONES DETECTED:\n")
		for _, group := range f.Homophones {
			fmt.Fprintf(&b, "  - %s\n", strings.Join(group, ", "))
		}
	}
	if b.Len() == 0 {
		return "No obvious wordplay patterns detected."
	}
	return strings.TrimRight(b.String(), "\n")
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}
