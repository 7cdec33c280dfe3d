package queries

const (
	DefaultPageLimit = 20
	MaxListLimit     = 100
)

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
