// Package discovery turns a filter/sort/page query into a deterministic
// ordered subset of a repository snapshot. It is read-only and pure:
// identical snapshot and query produce identical output.
package discovery

import (
	"sort"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type SortKey string

const (
	SortRecency    SortKey = "recency"
	SortSalaryMin  SortKey = "salary_min"
	SortSalaryMax  SortKey = "salary_max"
	SortPopularity SortKey = "popularity"
	SortStatus     SortKey = "status"
)

// Page is offset/limit pagination. Normalize clamps it against configured
// bounds; out-of-range offsets yield an empty page, never an error.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) Normalize(defaultLimit, maxLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Result carries one page plus the total matching count for pagination UIs.
type Result[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type JobQuery struct {
	Search     string
	Status     job.Status
	JobType    string
	City       string
	Experience string
	CategoryID common.UUID
	Remote     *bool
	Featured   *bool
	Verified   *bool
	SalaryMin  *int64
	SalaryMax  *int64
	Sort       SortKey
	Page       Page
}

type CompanyQuery struct {
	Search   string
	Status   company.Status
	City     string
	Industry string
	Verified *bool
	Sort     SortKey
	Page     Page
}

type ApplicationQuery struct {
	Search      string
	Status      application.Status
	JobID       common.UUID
	CompanyID   common.UUID
	CandidateID common.UUID
	Sort        SortKey
	Page        Page
}

type UserQuery struct {
	Search string
	Role   user.Role
	Status user.AccountStatus
	Page   Page
}

// Jobs filters, orders, and pages a job snapshot. Predicates are
// conjunctive. Salary filters require the job to carry the bound under test:
// a job without salary data never matches a salary filter.
func Jobs(snapshot []job.View, q JobQuery) Result[job.View] {
	matched := make([]job.View, 0, len(snapshot))
	for _, item := range snapshot {
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.JobType != "" && !strings.EqualFold(item.JobType, q.JobType) {
			continue
		}
		if q.City != "" && !strings.EqualFold(item.Location, q.City) {
			continue
		}
		if q.Experience != "" && !strings.EqualFold(item.ExperienceLevel, q.Experience) {
			continue
		}
		if !q.CategoryID.IsZero() && (item.CategoryID == nil || *item.CategoryID != q.CategoryID) {
			continue
		}
		if q.Remote != nil && item.Remote != *q.Remote {
			continue
		}
		if q.Featured != nil && item.Featured != *q.Featured {
			continue
		}
		if q.Verified != nil && item.CompanyVerified != *q.Verified {
			continue
		}
		if q.SalaryMin != nil {
			upper := item.SalaryMax
			if upper == nil {
				upper = item.SalaryMin
			}
			if upper == nil || *upper < *q.SalaryMin {
				continue
			}
		}
		if q.SalaryMax != nil {
			lower := item.SalaryMin
			if lower == nil {
				lower = item.SalaryMax
			}
			if lower == nil || *lower > *q.SalaryMax {
				continue
			}
		}
		if !matchesSearch(q.Search, item.Title, item.CompanyName, item.CategoryName) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessJob(matched[i], matched[j], q.Sort)
	})
	items, total := paginate(matched, q.Page)
	return Result[job.View]{Items: items, Total: total}
}

func Companies(snapshot []company.View, q CompanyQuery) Result[company.View] {
	matched := make([]company.View, 0, len(snapshot))
	for _, item := range snapshot {
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if q.City != "" && !strings.EqualFold(item.City, q.City) {
			continue
		}
		if q.Industry != "" && !strings.EqualFold(item.Industry, q.Industry) {
			continue
		}
		if q.Verified != nil && item.Verified != *q.Verified {
			continue
		}
		if !matchesSearch(q.Search, item.Name, item.Industry, item.City) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessCompany(matched[i], matched[j], q.Sort)
	})
	items, total := paginate(matched, q.Page)
	return Result[company.View]{Items: items, Total: total}
}

func Applications(snapshot []application.View, q ApplicationQuery) Result[application.View] {
	matched := make([]application.View, 0, len(snapshot))
	for _, item := range snapshot {
		if q.Status != "" && item.Status != q.Status {
			continue
		}
		if !q.JobID.IsZero() && item.JobID != q.JobID {
			continue
		}
		if !q.CompanyID.IsZero() && item.CompanyID != q.CompanyID {
			continue
		}
		if !q.CandidateID.IsZero() && item.CandidateID != q.CandidateID {
			continue
		}
		if !matchesSearch(q.Search, item.CandidateName, item.CandidateEmail, item.JobTitle, item.CompanyName) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return lessApplication(matched[i], matched[j], q.Sort)
	})
	items, total := paginate(matched, q.Page)
	return Result[application.View]{Items: items, Total: total}
}

func Users(snapshot []user.User, q UserQuery) Result[user.User] {
	matched := make([]user.User, 0, len(snapshot))
	for _, item := range snapshot {
		if q.Role != "" && item.Role != q.Role {
			continue
		}
		if q.Status != "" && item.AccountStatus != q.Status {
			continue
		}
		if !matchesSearch(q.Search, item.FullName, item.Email) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	items, total := paginate(matched, q.Page)
	return Result[user.User]{Items: items, Total: total}
}

// matchesSearch is a case-insensitive substring match over the entity's
// searchable fields. An empty needle matches everything.
func matchesSearch(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort directions are fixed per key: recency and salary bounds and
// popularity descending, status lexically ascending. Every order tie-breaks
// on id ascending so the result is total.
func lessJob(a, b job.View, key SortKey) bool {
	switch key {
	case SortSalaryMin:
		av, bv := int64Or(a.SalaryMin, -1), int64Or(b.SalaryMin, -1)
		if av != bv {
			return av > bv
		}
	case SortSalaryMax:
		av, bv := int64Or(a.SalaryMax, -1), int64Or(b.SalaryMax, -1)
		if av != bv {
			return av > bv
		}
	case SortPopularity:
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		if a.Applicants != b.Applicants {
			return a.Applicants > b.Applicants
		}
	case SortStatus:
		if a.Status != b.Status {
			return a.Status < b.Status
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

func lessCompany(a, b company.View, key SortKey) bool {
	switch key {
	case SortPopularity:
		if a.JobCount != b.JobCount {
			return a.JobCount > b.JobCount
		}
	case SortStatus:
		if a.Status != b.Status {
			return a.Status < b.Status
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

func lessApplication(a, b application.View, key SortKey) bool {
	switch key {
	case SortStatus:
		if a.Status != b.Status {
			return a.Status < b.Status
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

func int64Or(value *int64, fallback int64) int64 {
	if value == nil {
		return fallback
	}
	return *value
}

func paginate[T any](matched []T, page Page) ([]T, int64) {
	total := int64(len(matched))
	if page.Offset >= len(matched) {
		return []T{}, total
	}
	end := page.Offset + page.Limit
	if page.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], total
}
