package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizePhone reduces a WhatsApp number to the digits wa.me expects.
// Local Indonesian numbers (leading 0) get the 62 country prefix.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}

// WhatsAppLink builds the deep link that opens a chat to the given number
// with a prefilled message. Nothing comes back from it: delivery is the
// admin's responsibility once the chat opens.
func WhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone), url.QueryEscape(message))
}
