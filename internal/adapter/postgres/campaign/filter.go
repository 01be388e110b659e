package campaign

const (
	defaultLimit = 50
	maxLimit     = 500

	sortByEndDate       = "end_date"
	sortByCreatedAt     = "created_at"
	sortByCurrentAmount = "current_amount"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalizedFilter applies defaults and clamps to a domain filter before it
// is turned into SQL. Sort columns are whitelisted because they end up in the
// ORDER BY clause verbatim.
type normalizedFilter struct {
	sortBy    string
	sortOrder string
	limit     uint64
	offset    uint64
}

func normalizeFilter(sortBy, sortOrder string, limit, offset int) normalizedFilter {
	n := normalizedFilter{sortBy: sortBy, sortOrder: sortOrder}

	switch n.sortBy {
	case sortByEndDate, sortByCreatedAt, sortByCurrentAmount:
		// valid
	default:
		n.sortBy = sortByCreatedAt
	}

	switch n.sortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		n.sortOrder = sortOrderDESC
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	n.limit = uint64(limit)

	if offset < 0 {
		offset = 0
	}
	n.offset = uint64(offset)

	return n
}
