package validators

import (
	"net/mail"
	"strings"
)

// NormalizeEmail je kanonický tvar e-mailu pro deduplikaci klientů:
// lowercase + trim. Lookup i unique index pracují s tímto tvarem.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
