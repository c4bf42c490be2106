package core

import (
	"regexp"
	"strings"

	"github.com/safecheck/safecheck/internal/textproc"
)

// DefaultUrgencyKeywords is the fixed vocabulary matched against subject and
// body when no override is configured.
var DefaultUrgencyKeywords = []string{
	"urgent",
	"immediate",
	"asap",
	"final notice",
	"act now",
	"expires",
	"limited time",
}

// DefaultSuspiciousMarkers flag a URL as suspicious when its token contains
// any of them: known shorteners plus low-trust TLDs.
var DefaultSuspiciousMarkers = []string{
	"bit.ly",
	"tinyurl",
	".xyz",
	".tk",
}

// urlPattern is deliberately permissive: anything that looks like an
// http(s) token, terminated by whitespace or quote/angle-bracket characters.
var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// attachmentPattern picks filename parameters out of MIME headers that mail
// sources fold into the body or header map.
var attachmentPattern = regexp.MustCompile(`(?i)filename="?([^";\r\n]+)"?`)

// Extractor derives ExtractedFeatures from raw emails. It is pure and
// performs no I/O; every input yields a result.
type Extractor struct {
	urgencyKeywords   []string
	suspiciousMarkers []string
}

// NewExtractor builds an extractor with the given heuristic tables. Empty
// slices fall back to the defaults.
func NewExtractor(urgencyKeywords, suspiciousMarkers []string) *Extractor {
	if len(urgencyKeywords) == 0 {
		urgencyKeywords = DefaultUrgencyKeywords
	}
	if len(suspiciousMarkers) == 0 {
		suspiciousMarkers = DefaultSuspiciousMarkers
	}
	return &Extractor{
		urgencyKeywords:   urgencyKeywords,
		suspiciousMarkers: suspiciousMarkers,
	}
}

// Extract normalizes one EmailRecord into structured signals. Missing or
// malformed fields degrade to "no signal" rather than failing.
func (x *Extractor) Extract(email *EmailRecord) ExtractedFeatures {
	if email == nil {
		email = &EmailRecord{}
	}

	features := ExtractedFeatures{
		FromDomain:       ExtractDomain(email.From),
		ReturnPathDomain: ExtractDomain(email.Header(HeaderReturnPath)),
	}
	features.DomainMismatch = features.ReturnPathDomain != "" &&
		features.FromDomain != features.ReturnPathDomain

	auth := textproc.Fold(email.Header(HeaderAuthResults))
	features.SPFPass = strings.Contains(auth, "spf=pass")
	features.DKIMPass = strings.Contains(auth, "dkim=pass")
	features.DMARCPass = strings.Contains(auth, "dmarc=pass")

	features.UrgencyKeywords = x.matchUrgency(email.Subject, email.Body)
	features.LinkCount, features.SuspiciousLinkCount = x.countLinks(email.Body)

	features.AttachmentTypes = extractAttachmentTypes(email)
	features.HasAttachments = len(features.AttachmentTypes) > 0

	return features
}

// ExtractDomain parses the domain out of an address field: the substring
// after "@" up to the next ">" or end of string, lowercased. Empty or
// malformed input yields the empty string.
func ExtractDomain(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	domain := addr[at+1:]
	if end := strings.IndexByte(domain, '>'); end >= 0 {
		domain = domain[:end]
	}
	return strings.ToLower(strings.TrimSpace(domain))
}

// matchUrgency runs the fixed vocabulary against subject and body combined.
// A keyword appearing in both counts once.
func (x *Extractor) matchUrgency(subject, body string) []string {
	text := textproc.Fold(subject + " " + body)
	var matched []string
	for _, kw := range x.urgencyKeywords {
		if strings.Contains(text, textproc.Fold(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func (x *Extractor) countLinks(body string) (total, suspicious int) {
	for _, url := range urlPattern.FindAllString(body, -1) {
		total++
		lowered := strings.ToLower(url)
		for _, marker := range x.suspiciousMarkers {
			if strings.Contains(lowered, marker) {
				suspicious++
				break
			}
		}
	}
	return total, suspicious
}

func extractAttachmentTypes(email *EmailRecord) []string {
	haystack := email.Header("content-type") + "\n" + email.Body
	var types []string
	for _, m := range attachmentPattern.FindAllStringSubmatch(haystack, -1) {
		name := strings.TrimSpace(m[1])
		dot := strings.LastIndexByte(name, '.')
		if dot < 0 || dot == len(name)-1 {
			continue
		}
		types = append(types, strings.ToLower(name[dot:]))
	}
	return types
}
