// Package whatsapp builds click-to-chat links with a pre-filled message.
package whatsapp

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// Link returns the wa.me URL that opens a chat with number and text typed
// in. Non-digit characters are stripped from the number; an empty number
// lets the user pick the contact.
func Link(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	q := url.Values{}
	q.Set("text", text)
	return baseURL + digits + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// Message accumulates the lines of a chat message.
type Message struct {
	lines []string
}

// Line appends a line.
func (m *Message) Line(s string) *Message {
	m.lines = append(m.lines, s)
	return m
}

// Blank appends an empty line.
func (m *Message) Blank() *Message {
	return m.Line("")
}

// String joins the lines with newlines.
func (m *Message) String() string {
	return strings.Join(m.lines, "\n")
}
