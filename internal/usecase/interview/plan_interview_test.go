package interview_test

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/recruit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/httperr"
	uc "github.com/BruksfildServices01/recruit-scheduler/internal/usecase/interview"
	"github.com/BruksfildServices01/recruit-scheduler/internal/validation"
)

func TestPlanInterview_Success(t *testing.T) {
	repo := newFakeRepo()
	arch := &fakeArchive{}
	sink := &memorySink{}
	d := audit.NewDispatcher(sink, nil)

	out, err := uc.NewPlanInterview(repo, arch, d, now, nil).Execute(context.Background(), uc.PlanInterviewInput{
		RecruiterID: 1,
		Submission:  validSubmission(),
	})
	d.Close()

	if err != nil {
		t.Fatal(err)
	}
	if out.Message != "Invitation envoyée à Camille Martin" {
		t.Errorf("message = %q", out.Message)
	}
	if len(repo.proposals) != 1 || repo.proposals[0].ID != out.Proposal.ID {
		t.Fatalf("proposals = %+v", repo.proposals)
	}
	if p := out.Proposal.Payload; p.VideoURL == "" || p.SelectedWeek != "" || p.WeeklyAvailability != nil {
		t.Errorf("payload carries wrong branches: %+v", p)
	}
	if len(arch.puts) != 1 {
		t.Errorf("archive puts = %d", len(arch.puts))
	}
	if len(sink.events) != 1 || sink.events[0].Action != "interview_proposed" {
		t.Errorf("audit = %+v", sink.events)
	}
}

func TestPlanInterview_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *domain.Submission)
		repo   func(r *fakeRepo)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation",
			mutate: func(s *domain.Submission) { s.VideoURL = "" },
			check: func(t *testing.T, err error) {
				fe, ok := validation.AsFieldErrors(err)
				if !ok || fe["video_url"] == "" {
					t.Fatalf("err = %v", err)
				}
			},
		},
		{
			name:   "telephone without candidate phone",
			mutate: func(s *domain.Submission) { s.CandidateID = 8; s.Format = domain.FormatTelephone },
			check: func(t *testing.T, err error) {
				fe, ok := validation.AsFieldErrors(err)
				if !ok || fe["telephone"] == "" {
					t.Fatalf("err = %v", err)
				}
			},
		},
		{
			name:   "unknown candidate",
			mutate: func(s *domain.Submission) { s.CandidateID = 99 },
			check: func(t *testing.T, err error) {
				if !httperr.IsBusiness(err, "candidate_not_found") {
					t.Fatalf("err = %v", err)
				}
			},
		},
		{
			name: "repository error",
			repo: func(r *fakeRepo) { r.createErr = errDB },
			check: func(t *testing.T, err error) {
				if err != errDB {
					t.Fatalf("err = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			if tt.repo != nil {
				tt.repo(repo)
			}
			arch := &fakeArchive{}
			sink := &memorySink{}
			d := audit.NewDispatcher(sink, nil)

			s := validSubmission()
			if tt.mutate != nil {
				tt.mutate(&s)
			}

			_, err := uc.NewPlanInterview(repo, arch, d, now, nil).Execute(context.Background(), uc.PlanInterviewInput{
				RecruiterID: 1,
				Submission:  s,
			})
			d.Close()

			tt.check(t, err)
			if len(repo.proposals) != 0 || len(arch.puts) != 0 || len(sink.events) != 0 {
				t.Errorf("side effects after failure: proposals=%d puts=%d events=%d",
					len(repo.proposals), len(arch.puts), len(sink.events))
			}
		})
	}
}

func TestPlanInterview_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	d := audit.NewDispatcher(&memorySink{}, nil)
	defer d.Close()

	_, err := uc.NewPlanInterview(repo, &fakeArchive{err: errDB}, d, now, nil).Execute(context.Background(), uc.PlanInterviewInput{
		RecruiterID: 1,
		Submission:  validSubmission(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(repo.proposals) != 1 {
		t.Error("proposal not persisted")
	}
}

func TestGetProposal_ScopedToRecruiter(t *testing.T) {
	repo := newFakeRepo()
	d := audit.NewDispatcher(&memorySink{}, nil)
	defer d.Close()

	out, err := uc.NewPlanInterview(repo, nil, d, now, nil).Execute(context.Background(), uc.PlanInterviewInput{
		RecruiterID: 1,
		Submission:  validSubmission(),
	})
	if err != nil {
		t.Fatal(err)
	}

	get := uc.NewGetProposal(repo)
	if _, err := get.Execute(context.Background(), 1, out.Proposal.ID.String()); err != nil {
		t.Errorf("owner: %v", err)
	}
	if _, err := get.Execute(context.Background(), 2, out.Proposal.ID.String()); !httperr.IsBusiness(err, "proposal_not_found") {
		t.Errorf("other recruiter: %v", err)
	}
	if _, err := get.Execute(context.Background(), 1, "not-a-uuid"); !httperr.IsBusiness(err, "proposal_not_found") {
		t.Errorf("bad id: %v", err)
	}

	list, _ := uc.NewListProposals(repo).Execute(context.Background(), 2)
	if len(list) != 0 {
		t.Errorf("list leaked %d proposals", len(list))
	}
}
