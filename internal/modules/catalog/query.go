package catalog

import (
	"sort"
	"strings"

	"servicedir/internal/domain"
)

// Filter is the conjunctive listing filter: a record must satisfy every
// supplied clause. IncludeInactive is set only by the admin table; the
// public search never sees inactive listings.
type Filter struct {
	CategoryID      string
	City            string
	Search          string
	PremiumOnly     bool
	IncludeInactive bool
}

type Page struct {
	Limit  int
	Offset int
}

// DefaultPage applies when the caller supplies no pagination at all.
var DefaultPage = Page{Limit: 20, Offset: 0}

type Result struct {
	Items   []domain.Service
	Total   int
	HasMore bool
}

// Query filters, sorts and paginates listings in memory. It is a pure
// transform: deterministic for identical inputs and free of side effects.
// Premium listings sort first, then by rating descending; ties keep their
// input order. Total counts the filtered set before pagination. Negative
// limit or offset is rejected, never clamped.
func Query(records []domain.Service, f Filter, p Page) (Result, error) {
	if p.Limit < 0 {
		return Result{}, domain.Invalid("limit", "must not be negative")
	}
	if p.Offset < 0 {
		return Result{}, domain.Invalid("offset", "must not be negative")
	}

	matched := make([]domain.Service, 0, len(records))
	for _, s := range records {
		if matches(s, f) {
			matched = append(matched, s)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].IsPremium != matched[j].IsPremium {
			return matched[i].IsPremium
		}
		return matched[i].Rating > matched[j].Rating
	})

	total := len(matched)
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return Result{
		Items:   matched[start:end],
		Total:   total,
		HasMore: p.Offset+p.Limit < total,
	}, nil
}

func matches(s domain.Service, f Filter) bool {
	if !f.IncludeInactive && !s.IsActive {
		return false
	}
	if f.CategoryID != "" && s.CategoryID != f.CategoryID {
		return false
	}
	if f.City != "" && !strings.EqualFold(s.City, f.City) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.Description), term) {
			return false
		}
	}
	if f.PremiumOnly && !s.IsPremium {
		return false
	}
	return true
}
