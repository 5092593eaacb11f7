package app

import (
	"context"
	"testing"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/config"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

type jobFixture struct {
	service   *JobService
	jobs      *fakeJobRepo
	companies *fakeCompanyRepo
	saved     *fakeSavedJobRepo
	employer  authz.Actor
	admin     authz.Actor
	candidate authz.Actor
	company   *company.Company
}

func newJobFixture(t *testing.T, rejectMode config.JobRejectMode) *jobFixture {
	t.Helper()
	jobRepo := newFakeJobRepo()
	companyRepo := newFakeCompanyRepo()
	savedRepo := newFakeSavedJobRepo(jobRepo)
	service := NewJobService(jobRepo, companyRepo, savedRepo, noopAnalyticsRepo{}, PageConfig{DefaultLimit: 20, MaxLimit: 100}, rejectMode)

	employer := authz.Actor{ID: common.NewUUID(), Role: user.RoleEmployer}
	owned, err := companyRepo.Create(context.Background(), company.Company{OwnerID: employer.ID, Name: "Acme", Status: company.StatusActive})
	if err != nil {
		t.Fatalf("company create: %v", err)
	}
	return &jobFixture{
		service:   service,
		jobs:      jobRepo,
		companies: companyRepo,
		saved:     savedRepo,
		employer:  employer,
		admin:     authz.Actor{ID: common.NewUUID(), Role: user.RoleAdmin},
		candidate: authz.Actor{ID: common.NewUUID(), Role: user.RoleCandidate},
		company:   owned,
	}
}

func (f *jobFixture) createJob(t *testing.T, title string) *job.Job {
	t.Helper()
	created, err := f.service.Create(context.Background(), f.employer, job.Job{Title: title})
	if err != nil {
		t.Fatalf("job create: %v", err)
	}
	return created
}

func TestCreateJobBornPending(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)

	created := f.createJob(t, "Engineer")
	if created.Status != job.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if created.CompanyID != f.company.ID {
		t.Fatal("expected job to belong to the employer's company")
	}
}

func TestCreateJobRequiresCompany(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)

	profileless := authz.Actor{ID: common.NewUUID(), Role: user.RoleEmployer}
	_, err := f.service.Create(context.Background(), profileless, job.Job{Title: "Engineer"})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected company profile required, got %v", err)
	}
}

func TestCreateJobValidatesSalaryRange(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)

	low, high := int64(1000), int64(5000)
	_, err := f.service.Create(context.Background(), f.employer, job.Job{Title: "Engineer", SalaryMin: &high, SalaryMax: &low})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected salary range validation, got %v", err)
	}
}

func TestApproveMakesJobPubliclyVisible(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")

	before, err := f.service.ListPublic(context.Background(), discovery.JobQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if before.Total != 0 {
		t.Fatalf("pending job must not be public, got %d", before.Total)
	}

	approved, err := f.service.Approve(context.Background(), f.admin, created.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != job.StatusActive {
		t.Fatalf("status = %s, want active", approved.Status)
	}

	after, err := f.service.ListPublic(context.Background(), discovery.JobQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if after.Total != 1 {
		t.Fatalf("approved job must be public, got %d", after.Total)
	}
}

func TestApproveIsAdminOnly(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")

	_, err := f.service.Approve(context.Background(), f.employer, created.ID)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRejectRetainsTerminalRecord(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")

	rejected, err := f.service.Reject(context.Background(), f.admin, created.ID, "spam")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != job.StatusRejected || rejected.RejectReason != "spam" {
		t.Fatalf("got %s/%q, want rejected/spam", rejected.Status, rejected.RejectReason)
	}

	// rejected is terminal
	_, err = f.service.Approve(context.Background(), f.admin, created.ID)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected rejected to be terminal, got %v", err)
	}
}

func TestRejectDeleteModeRemovesRecord(t *testing.T) {
	f := newJobFixture(t, config.JobRejectDelete)
	created := f.createJob(t, "Engineer")

	if _, err := f.service.Reject(context.Background(), f.admin, created.ID, "spam"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := f.jobs.GetByID(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected job removed, got %v", err)
	}
}

func TestEmployerPausesAndReopensOwnJob(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")
	if _, err := f.service.Approve(context.Background(), f.admin, created.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	paused, err := f.service.SetStatus(context.Background(), f.employer, created.ID, job.StatusInactive)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Status != job.StatusInactive {
		t.Fatalf("status = %s, want inactive", paused.Status)
	}

	reopened, err := f.service.SetStatus(context.Background(), f.employer, created.ID, job.StatusActive)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != job.StatusActive {
		t.Fatalf("status = %s, want active", reopened.Status)
	}

	closed, err := f.service.SetStatus(context.Background(), f.employer, created.ID, job.StatusClosed)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != job.StatusClosed {
		t.Fatalf("status = %s, want closed", closed.Status)
	}

	_, err = f.service.SetStatus(context.Background(), f.employer, created.ID, job.StatusActive)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected closed to be terminal, got %v", err)
	}
}

func TestForeignEmployerCannotTouchJob(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")
	if _, err := f.service.Approve(context.Background(), f.admin, created.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	foreign := authz.Actor{ID: common.NewUUID(), Role: user.RoleEmployer}
	if _, err := f.companies.Create(context.Background(), company.Company{OwnerID: foreign.ID, Name: "Rival", Status: company.StatusActive}); err != nil {
		t.Fatalf("rival company: %v", err)
	}
	_, err := f.service.SetStatus(context.Background(), foreign, created.ID, job.StatusInactive)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected not_owner forbidden, got %v", err)
	}
}

func TestGetHidesNonActiveFromPublic(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")

	if _, err := f.service.Get(context.Background(), nil, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatal("expected pending job hidden from anonymous readers")
	}
	if _, err := f.service.Get(context.Background(), &f.candidate, created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatal("expected pending job hidden from candidates")
	}
	if _, err := f.service.Get(context.Background(), &f.employer, created.ID); err != nil {
		t.Fatalf("expected owner to read own pending job, got %v", err)
	}
	if _, err := f.service.Get(context.Background(), &f.admin, created.ID); err != nil {
		t.Fatalf("expected admin to read pending job, got %v", err)
	}
}

func TestGetBumpsViewCounterForPublicReads(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")
	if _, err := f.service.Approve(context.Background(), f.admin, created.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	first, err := f.service.Get(context.Background(), nil, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := f.service.Get(context.Background(), nil, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.Views != first.Views+1 {
		t.Fatalf("views = %d then %d, want an increment", first.Views, second.Views)
	}
}

func TestListPublicForcesActiveStatus(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	f.createJob(t, "Pending role")

	// a status filter cannot leak non-active jobs
	result, err := f.service.ListPublic(context.Background(), discovery.JobQuery{Status: job.StatusPending})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("expected pending jobs to stay hidden, got %d", result.Total)
	}
}

func TestListMineIncludesAllOwnStatuses(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	pending := f.createJob(t, "Pending role")
	approved := f.createJob(t, "Active role")
	if _, err := f.service.Approve(context.Background(), f.admin, approved.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_ = pending

	result, err := f.service.ListMine(context.Background(), f.employer, discovery.JobQuery{})
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected both jobs, got %d", result.Total)
	}
}

func TestUpdateJobKeepsStatusAndOwnership(t *testing.T) {
	f := newJobFixture(t, config.JobRejectRetain)
	created := f.createJob(t, "Engineer")

	edited := *created
	edited.Title = "Senior Engineer"
	edited.Status = job.StatusActive // must be ignored
	updated, err := f.service.Update(context.Background(), f.employer, edited)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Senior Engineer" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Status != job.StatusPending {
		t.Fatalf("status = %s, want pending preserved", updated.Status)
	}
}
