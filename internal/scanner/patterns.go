package scanner

import (
	"math"
	"regexp"
)

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// Ordered from most to least specific; a later pattern never reports a
// span an earlier one already covered.
var patterns = []pattern{
	{"AWS Access Key ID", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"AWS Secret Access Key", regexp.MustCompile(`(?i)aws_secret_access_key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{"JWT Token", regexp.MustCompile(`eyJ[A-Za-z0-9_=-]+\.eyJ[A-Za-z0-9_=-]+\.?[A-Za-z0-9_.+/=-]*`)},
	{"GitHub Personal Access Token", regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`)},
	{"GitHub Token", regexp.MustCompile(`(?i)github[_-]?token\s*[:=]\s*["']?[A-Za-z0-9]{36,}["']?`)},
	{"Private Key", regexp.MustCompile(`-----BEGIN\s+(?:RSA\s+|EC\s+|DSA\s+|OPENSSH\s+)?PRIVATE\s+KEY-----`)},
	{"API Key", regexp.MustCompile(`(?i)api[_-]?key\s*[:=]\s*["']?[A-Za-z0-9]{20,}["']?`)},
	{"API Token", regexp.MustCompile(`(?i)token\s*[:=]\s*["']?[A-Za-z0-9]{20,}["']?`)},
	{"PostgreSQL Password", regexp.MustCompile(`(?i)postgres[_-]?password\s*[:=]\s*["']?[^\s"']{8,}["']?`)},
	{"MySQL Password", regexp.MustCompile(`(?i)mysql[_-]?password\s*[:=]\s*["']?[^\s"']{8,}["']?`)},
	{"Database Password", regexp.MustCompile(`(?i)(?:database|db)[_-]?password\s*[:=]\s*["']?[^\s"']{8,}["']?`)},
	{"Password", regexp.MustCompile(`(?i)(?:password|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`)},
}

var quotedCandidate = regexp.MustCompile(`["']([A-Za-z0-9/+=]{20,})["']`)

const highEntropyKind = "High Entropy String"

// shannonEntropy returns the entropy of s in bits per character.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	counts := map[rune]int{}
	n := 0
	for _, r := range s {
		counts[r]++
		n++
	}

	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
