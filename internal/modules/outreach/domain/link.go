package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type Channel string

const (
	// ChannelAPI opens https://api.whatsapp.com/send?phone=<n>&text=<msg>.
	ChannelAPI Channel = "api"
	// ChannelShort opens https://wa.me/<n>?text=<msg>.
	ChannelShort Channel = "wa.me"
)

// Link builds the WhatsApp deep link for text. Spaces encode as %20 so the
// message survives clients that do not treat '+' as a space.
func Link(channel Channel, number, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	if channel == ChannelShort {
		return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
	}
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", number, encoded)
}

// TextOf extracts the decoded message from a link built by Link.
func TextOf(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}
	return u.Query().Get("text"), nil
}

// DisplayPhone renders 254710654707 as +254 710 654 707.
func DisplayPhone(number string) string {
	if len(number) != 12 {
		return "+" + number
	}
	return fmt.Sprintf("+%s %s %s %s", number[:3], number[3:6], number[6:9], number[9:])
}
