package fetcher

import (
	"regexp"
)

// BotDetector recognizes bot walls, CAPTCHAs and block pages in fetched
// HTML so they surface as fetch failures instead of empty price profiles.
type BotDetector struct {
	blockPatterns   []*regexp.Regexp
	captchaPatterns []*regexp.Regexp
}

// NewBotDetector creates a detector with the known wall signatures
func NewBotDetector() *BotDetector {
	return &BotDetector{
		blockPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access denied`),
			regexp.MustCompile(`(?i)bot detected`),
			regexp.MustCompile(`(?i)security check`),
			regexp.MustCompile(`(?i)checking your browser`),
			regexp.MustCompile(`(?i)ddos protection`),
			regexp.MustCompile(`(?i)too many requests`),
			regexp.MustCompile(`(?i)403 forbidden`),
			regexp.MustCompile(`(?i)429 too many requests`),
			regexp.MustCompile(`(?i)unfortunately we are unable`),
		},
		captchaPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)captcha`),
			regexp.MustCompile(`(?i)recaptcha`),
			regexp.MustCompile(`(?i)hcaptcha`),
			regexp.MustCompile(`(?i)turnstile`),
			regexp.MustCompile(`(?i)verify you are human`),
			regexp.MustCompile(`(?i)select all images`),
		},
	}
}

// Detect returns a reason and true when the HTML looks like a block page
func (d *BotDetector) Detect(htmlContent string) (string, bool) {
	for _, pattern := range d.captchaPatterns {
		if pattern.MatchString(htmlContent) {
			return "captcha challenge", true
		}
	}
	for _, pattern := range d.blockPatterns {
		if pattern.MatchString(htmlContent) {
			return "bot wall", true
		}
	}
	return "", false
}
