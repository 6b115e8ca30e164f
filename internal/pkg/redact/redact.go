// Package redact маскирует чувствительные значения перед записью в лог.
package redact

import "strings"

// Email оставляет два первых символа локальной части и домен: "as***@example.com".
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***"
	}

	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}

	return "***@" + domain
}
