package message

import (
	"net/url"
	"strings"
)

// Encode percent-encodes text for a URL query value. Spaces become %20
// rather than '+', so both query and path unescaping restore the input.
func Encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// DeepLink builds the provider send URL for a normalized phone identifier
// and an already encoded message body.
func DeepLink(host, digits, encodedText string) string {
	var b strings.Builder
	b.Grow(len(host) + len(digits) + len(encodedText) + 64)
	b.WriteString("https://")
	b.WriteString(host)
	b.WriteString("/send?phone=")
	b.WriteString(digits)
	b.WriteString("&text=")
	b.WriteString(encodedText)
	b.WriteString("&type=phone_number&app_absent=0")
	return b.String()
}
