// Package message renders reminder text and turns it into provider deep links.
//
// A Template carries exactly one {name} and one {invite_link} placeholder.
// Substitution is a single literal pass, so recipient data that happens to
// look like a placeholder is inserted as-is. Encode percent-encodes the
// rendered text for use as a query value and DeepLink assembles the
// send URL the chat web application understands.
package message
