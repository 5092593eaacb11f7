package app

import (
	"context"
	"sync"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/session"
	"jobboard/internal/domain/user"
)

type noopAnalyticsRepo struct{}

func (noopAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	return nil
}

type recordingAnalyticsRepo struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event.Name)
	return nil
}

func (r *recordingAnalyticsRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, recorded := range r.events {
		if recorded == name {
			total++
		}
	}
	return total
}

func notFound(what string) error {
	return common.NewError(common.CodeNotFound, what+" not found", nil)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, &common.Error{Code: common.CodeConflict, Message: "email already registered", Reason: common.ReasonDuplicate}
		}
	}
	u.ID = common.NewUUID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	stored := u
	r.users[u.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return nil, notFound("user")
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	stored := u
	r.users[u.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[id]
	if !ok {
		return nil, notFound("user")
	}
	copied := *existing
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == email {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, notFound("user")
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.users))
	for _, existing := range r.users {
		out = append(out, *existing)
	}
	return out, nil
}

func (r *fakeUserRepo) SetAccountStatus(ctx context.Context, id common.UUID, status user.AccountStatus) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[id]
	if !ok {
		return nil, notFound("user")
	}
	existing.AccountStatus = status
	copied := *existing
	return &copied, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return notFound("user")
	}
	delete(r.users, id)
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[common.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[common.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.OwnerID == c.OwnerID {
			return nil, &common.Error{Code: common.CodeConflict, Message: "employer already has a company", Reason: common.ReasonDuplicate}
		}
	}
	c.ID = common.NewUUID()
	c.Version = 1
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	stored := c
	r.companies[c.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[c.ID]
	if !ok {
		return nil, notFound("company")
	}
	c.OwnerID = existing.OwnerID
	c.Status = existing.Status
	c.Verified = existing.Verified
	c.Version = existing.Version
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	stored := c
	r.companies[c.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[id]
	if !ok {
		return nil, notFound("company")
	}
	copied := *existing
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByOwnerID(ctx context.Context, ownerID common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.OwnerID == ownerID {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, notFound("company")
}

func (r *fakeCompanyRepo) ListViews(ctx context.Context) ([]company.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]company.View, 0, len(r.companies))
	for _, existing := range r.companies {
		out = append(out, company.View{Company: *existing})
	}
	return out, nil
}

func (r *fakeCompanyRepo) SetStatus(ctx context.Context, id common.UUID, status company.Status, version int64) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[id]
	if !ok {
		return nil, notFound("company")
	}
	if existing.Version != version {
		return nil, &common.Error{Code: common.CodeConflict, Message: "company was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	existing.Status = status
	existing.Version++
	copied := *existing
	return &copied, nil
}

func (r *fakeCompanyRepo) SetVerified(ctx context.Context, id common.UUID, verified bool, version int64) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companies[id]
	if !ok {
		return nil, notFound("company")
	}
	if existing.Version != version {
		return nil, &common.Error{Code: common.CodeConflict, Message: "company was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	existing.Verified = verified
	existing.Version++
	copied := *existing
	return &copied, nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return notFound("company")
	}
	delete(r.companies, id)
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.Version = 1
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	stored := j
	r.jobs[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[j.ID]
	if !ok {
		return nil, notFound("job")
	}
	if existing.Version != j.Version {
		return nil, &common.Error{Code: common.CodeConflict, Message: "job was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	j.CompanyID = existing.CompanyID
	j.Status = existing.Status
	j.Views = existing.Views
	j.Version = existing.Version + 1
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.jobs[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[id]
	if !ok {
		return nil, notFound("job")
	}
	copied := *existing
	return &copied, nil
}

func (r *fakeJobRepo) GetView(ctx context.Context, id common.UUID) (*job.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[id]
	if !ok {
		return nil, notFound("job")
	}
	return &job.View{Job: *existing}, nil
}

func (r *fakeJobRepo) ListViews(ctx context.Context, statuses []job.Status) ([]job.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.View, 0, len(r.jobs))
	for _, existing := range r.jobs {
		if len(statuses) > 0 {
			match := false
			for _, status := range statuses {
				if existing.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, job.View{Job: *existing})
	}
	return out, nil
}

func (r *fakeJobRepo) ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]job.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]job.View, 0)
	for _, existing := range r.jobs {
		if existing.CompanyID == companyID {
			out = append(out, job.View{Job: *existing})
		}
	}
	return out, nil
}

func (r *fakeJobRepo) SetStatus(ctx context.Context, id common.UUID, status job.Status, rejectReason string, version int64) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[id]
	if !ok {
		return nil, notFound("job")
	}
	if existing.Version != version {
		return nil, &common.Error{Code: common.CodeConflict, Message: "job was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	existing.Status = status
	existing.RejectReason = rejectReason
	existing.Version++
	copied := *existing
	return &copied, nil
}

func (r *fakeJobRepo) IncrementViews(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.jobs[id]; ok {
		existing.Views++
	}
	return nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return notFound("job")
	}
	delete(r.jobs, id)
	return nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[common.UUID]*application.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[common.UUID]*application.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.CandidateID == app.CandidateID && existing.JobID == app.JobID && application.Blocks(existing.Status) {
			return nil, &common.Error{Code: common.CodeConflict, Message: "already applied", Reason: common.ReasonDuplicate}
		}
	}
	app.ID = common.NewUUID()
	app.Version = 1
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	stored := app
	r.applications[app.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.applications[id]
	if !ok {
		return nil, notFound("application")
	}
	copied := *existing
	return &copied, nil
}

func (r *fakeApplicationRepo) FindBlocking(ctx context.Context, candidateID, jobID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.CandidateID == candidateID && existing.JobID == jobID && application.Blocks(existing.Status) {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, notFound("application")
}

func (r *fakeApplicationRepo) ListViewsByCandidate(ctx context.Context, candidateID common.UUID) ([]application.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.View, 0)
	for _, existing := range r.applications {
		if existing.CandidateID == candidateID {
			out = append(out, application.View{Application: *existing})
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]application.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.View, 0)
	for _, existing := range r.applications {
		out = append(out, application.View{Application: *existing, CompanyID: companyID})
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListViews(ctx context.Context) ([]application.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]application.View, 0, len(r.applications))
	for _, existing := range r.applications {
		out = append(out, application.View{Application: *existing})
	}
	return out, nil
}

func (r *fakeApplicationRepo) SetStatus(ctx context.Context, id common.UUID, status application.Status, notes string, setReviewed bool, version int64) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.applications[id]
	if !ok {
		return nil, notFound("application")
	}
	if existing.Version != version {
		return nil, &common.Error{Code: common.CodeConflict, Message: "application was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	existing.Status = status
	existing.Notes = notes
	if setReviewed && existing.ReviewedAt == nil {
		now := time.Now().UTC()
		existing.ReviewedAt = &now
	}
	existing.Version++
	copied := *existing
	return &copied, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[id]; !ok {
		return notFound("application")
	}
	delete(r.applications, id)
	return nil
}

type savedPair struct {
	candidateID common.UUID
	jobID       common.UUID
}

type fakeSavedJobRepo struct {
	mu    sync.Mutex
	pairs map[savedPair]time.Time
	jobs  *fakeJobRepo
}

func newFakeSavedJobRepo(jobs *fakeJobRepo) *fakeSavedJobRepo {
	return &fakeSavedJobRepo{pairs: make(map[savedPair]time.Time), jobs: jobs}
}

func (r *fakeSavedJobRepo) Save(ctx context.Context, candidateID, jobID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := savedPair{candidateID, jobID}
	if _, ok := r.pairs[key]; !ok {
		r.pairs[key] = time.Now().UTC()
	}
	return nil
}

func (r *fakeSavedJobRepo) Remove(ctx context.Context, candidateID, jobID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairs, savedPair{candidateID, jobID})
	return nil
}

func (r *fakeSavedJobRepo) Exists(ctx context.Context, candidateID, jobID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pairs[savedPair{candidateID, jobID}]
	return ok, nil
}

func (r *fakeSavedJobRepo) ListJobs(ctx context.Context, candidateID common.UUID) ([]job.View, error) {
	r.mu.Lock()
	pairs := make([]savedPair, 0, len(r.pairs))
	for key := range r.pairs {
		if key.candidateID == candidateID {
			pairs = append(pairs, key)
		}
	}
	r.mu.Unlock()

	out := make([]job.View, 0, len(pairs))
	for _, key := range pairs {
		view, err := r.jobs.GetView(ctx, key.jobID)
		if err != nil {
			continue
		}
		out = append(out, *view)
	}
	return out, nil
}

type fakeSessionStore struct {
	mu      sync.Mutex
	records map[string]session.Record
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{records: make(map[string]session.Record)}
}

func (s *fakeSessionStore) Get(ctx context.Context, tokenID string) (*session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[tokenID]
	if !ok {
		return nil, notFound("session")
	}
	copied := rec
	return &copied, nil
}

func (s *fakeSessionStore) Set(ctx context.Context, rec session.Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.TokenID] = rec
	return nil
}

func (s *fakeSessionStore) Clear(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tokenID)
	return nil
}
