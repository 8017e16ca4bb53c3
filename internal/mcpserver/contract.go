package mcpserver

import (
	"fmt"
	"strings"
)

// ContactInfo is the owner's public contact card.
type ContactInfo struct {
	SiteName string
	Email    string
	Phone    string
}

// ResponseTimes lists the reply delays promised to visitors.
var ResponseTimes = []struct {
	Kind  string
	Delay string
}{
	{"Urgent requests", "2-4 hours"},
	{"Standard requests", "less than 24h"},
	{"Detailed quotes", "within 48h"},
}

// Markdown renders the contact card.
func (c ContactInfo) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Contact %s\n\n", c.SiteName)
	fmt.Fprintf(&b, "- Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", c.Phone)
	}
	b.WriteString("\n## Response times\n\n")
	for _, rt := range ResponseTimes {
		fmt.Fprintf(&b, "- %s: %s\n", rt.Kind, rt.Delay)
	}
	b.WriteString("\nMessages are sent through the contact form (POST /api/contacts) with name, email and message.\n")
	return b.String()
}
