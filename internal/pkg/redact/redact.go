// redact маскирует чувствительные значения перед записью в лог или выводом в консоль.
package redact

import "strings"

// Login маскирует логин администратора. Для e-mail оставляет домен.
func Login(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		if len(s) > 2 {
			return s[:2] + "***"
		}
		return "***"
	}

	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token оставляет только последние 4 символа токена.
func Token(s string) string {
	const keep = 4
	if len(s) <= keep*2 {
		return "[REDACTED_TOKEN]"
	}

	return "***" + s[len(s)-keep:]
}

func Password() string { return "[REDACTED_PASSWORD]" }
