package validators

import "strings"

// IsSlugValid aceita o formato usado na URL pública: minúsculas,
// dígitos e hífens, sem começar nem terminar com hífen.
func IsSlugValid(slug string) bool {
	if slug == "" {
		return false
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return false
	}

	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// NormalizeSlug baixa a caixa e remove espaços nas pontas antes da
// validação.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
