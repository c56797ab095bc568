package contract

import (
	"context"
	"errors"
	"testing"

	"estate-backoffice/internal/domain/auth"
	contractDomain "estate-backoffice/internal/domain/contract"
	"estate-backoffice/internal/domain/uow"
	"estate-backoffice/internal/testutil/authmock"
	"estate-backoffice/internal/testutil/contractmock"
	"estate-backoffice/internal/testutil/sinkmock"
	"estate-backoffice/internal/testutil/uowmock"

	"gorm.io/gorm"
)

func validCreateInput() CreateInput {
	return CreateInput{
		TransactionType:  "sale",
		AgentID:          1,
		StartDate:        "2024-03-05",
		IsIndefinite:     true,
		CommissionAmount: 3.5,
		Clients:          []ClientInput{{ClientID: 7, Role: "seller"}},
	}
}

func mockRepos(repo *contractmock.Repo) uow.Repos {
	return uow.Repos{
		Contracts:   repo,
		StageEvents: &contractmock.StageEventRepo{},
		ClientLinks: &contractmock.ClientLinkRepo{},
	}
}

func TestCreate_PermissionDeniedShortCircuits(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			t.Error("transaction must not start on denial")
			return nil
		},
	}, authmock.Deny(auth.CapContractCreate), sinkmock.New())

	_, err := u.Create(context.Background(), validCreateInput())
	if !errors.Is(err, contractDomain.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			t.Error("transaction must not start on invalid input")
			return nil
		},
	}, authmock.AllowAll(), sinkmock.New())

	cases := []struct {
		name    string
		mutate  func(*CreateInput)
		wantErr error
	}{
		{"missing transaction type", func(in *CreateInput) { in.TransactionType = "" }, contractDomain.ErrValidation},
		{"unknown transaction type", func(in *CreateInput) { in.TransactionType = "barter" }, contractDomain.ErrValidation},
		{"missing agent", func(in *CreateInput) { in.AgentID = 0 }, contractDomain.ErrValidation},
		{"missing start date", func(in *CreateInput) { in.StartDate = "" }, contractDomain.ErrValidation},
		{"malformed start date", func(in *CreateInput) { in.StartDate = "05.03.2024" }, contractDomain.ErrValidation},
		{"indefinite with end date", func(in *CreateInput) {
			in.IsIndefinite = true
			in.EndDate = "2024-09-30"
		}, contractDomain.ErrValidation},
		{"negative commission", func(in *CreateInput) { in.CommissionAmount = -1 }, contractDomain.ErrValidation},
		{"unknown currency", func(in *CreateInput) { in.CommissionCurrency = "chf" }, contractDomain.ErrValidation},
		{"unknown commission type", func(in *CreateInput) { in.CommissionType = "hourly" }, contractDomain.ErrValidation},
		{"unknown client role", func(in *CreateInput) {
			in.Clients = []ClientInput{{ClientID: 7, Role: "witness"}}
		}, contractDomain.ErrInvalidRole},
		{"duplicate client", func(in *CreateInput) {
			in.Clients = []ClientInput{{ClientID: 7, Role: "seller"}, {ClientID: 7, Role: "buyer"}}
		}, contractDomain.ErrDuplicate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := u.Create(context.Background(), in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreate_RetriesOnNumberCollision(t *testing.T) {
	attempts := 0
	stored := &contractDomain.Contract{}
	repo := &contractmock.Repo{
		CreateFn: func(ctx context.Context, c *contractDomain.Contract) error {
			attempts++
			if attempts < 3 {
				return gorm.ErrDuplicatedKey
			}
			c.ID = 10
			*stored = *c
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
			return stored, nil
		},
	}
	u := NewUsecase(repo, uowmock.Passthrough(mockRepos(repo)), authmock.AllowAll(), sinkmock.New())

	dto, err := u.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if dto.ContractNumber != "2024/03/001" {
		t.Errorf("number = %q, want 2024/03/001", dto.ContractNumber)
	}
}

func TestCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	attempts := 0
	repo := &contractmock.Repo{
		CreateFn: func(ctx context.Context, c *contractDomain.Contract) error {
			attempts++
			return gorm.ErrDuplicatedKey
		},
	}
	sink := sinkmock.New()
	u := NewUsecase(repo, uowmock.Passthrough(mockRepos(repo)), authmock.AllowAll(), sink)

	_, err := u.Create(context.Background(), validCreateInput())
	if !errors.Is(err, contractDomain.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if attempts != createAttempts {
		t.Errorf("attempts = %d, want %d", attempts, createAttempts)
	}
	if len(sink.Published()) != 0 {
		t.Error("no event must be published for a failed create")
	}
}

func TestCreate_LinkFailureAbortsWithoutRetry(t *testing.T) {
	creates := 0
	repo := &contractmock.Repo{
		CreateFn: func(ctx context.Context, c *contractDomain.Contract) error {
			creates++
			c.ID = 10
			return nil
		},
	}
	repos := mockRepos(repo)
	repos.ClientLinks = &contractmock.ClientLinkRepo{
		CreateFn: func(ctx context.Context, l *contractDomain.ContractClientLink) error {
			return gorm.ErrDuplicatedKey
		},
	}
	sink := sinkmock.New()
	u := NewUsecase(repo, uowmock.Passthrough(repos), authmock.AllowAll(), sink)

	_, err := u.Create(context.Background(), validCreateInput())
	if !errors.Is(err, contractDomain.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	// a link duplicate is not a number collision: no second attempt
	if creates != 1 {
		t.Errorf("contract creates = %d, want 1", creates)
	}
	if len(sink.Published()) != 0 {
		t.Error("no event must be published for a failed create")
	}
}

func TestCreate_SinkFailureDoesNotFailOperation(t *testing.T) {
	stored := &contractDomain.Contract{}
	repo := &contractmock.Repo{
		CreateFn: func(ctx context.Context, c *contractDomain.Contract) error {
			c.ID = 10
			*stored = *c
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
			return stored, nil
		},
	}
	sink := sinkmock.New()
	sink.Err = errors.New("broker down")
	u := NewUsecase(repo, uowmock.Passthrough(mockRepos(repo)), authmock.AllowAll(), sink)

	if _, err := u.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("create must succeed despite sink failure, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &contractmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	u := NewUsecase(repo, uowmock.New(), nil, nil)

	if _, err := u.Get(context.Background(), 999); !errors.Is(err, contractDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_RejectsContractNumberChange(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, &uowmock.UoW{
		WithinContractTxFn: func(ctx context.Context, contractID uint64, fn func(r uow.Repos, c *contractDomain.Contract) error) error {
			t.Error("transaction must not start when the number is being changed")
			return nil
		},
	}, authmock.AllowAll(), sinkmock.New())

	_, err := u.Update(context.Background(), 1, UpdateInput{
		ContractNumber:  "2024/03/999",
		TransactionType: "sale",
		AgentID:         1,
		StartDate:       "2024-03-05",
		IsIndefinite:    true,
	})
	if !errors.Is(err, contractDomain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, uowmock.New(), authmock.AllowAll(), sinkmock.New())

	_, err := u.Update(context.Background(), 1, UpdateInput{
		TransactionType: "sale",
		AgentID:         1,
		StartDate:       "2024-03-05",
		IsIndefinite:    true,
		Status:          "paused",
	})
	if !errors.Is(err, contractDomain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, &uowmock.UoW{
		WithinContractTxFn: func(ctx context.Context, contractID uint64, fn func(r uow.Repos, c *contractDomain.Contract) error) error {
			return gorm.ErrRecordNotFound
		},
	}, authmock.AllowAll(), sinkmock.New())

	if err := u.Delete(context.Background(), 999); !errors.Is(err, contractDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSearch_FilterMapping(t *testing.T) {
	var got contractDomain.SearchFilter
	repo := &contractmock.Repo{
		SearchFn: func(ctx context.Context, f contractDomain.SearchFilter) ([]contractDomain.Contract, int64, error) {
			got = f
			return nil, 0, nil
		},
	}
	u := NewUsecase(repo, uowmock.New(), nil, nil)

	_, err := u.Search(context.Background(), SearchInput{
		TransactionType: "sale",
		AgentID:         1,
		ClientID:        7,
		Stage:           "negotiations",
		Status:          "all",
		DateFrom:        "2024-03-01",
		DateTo:          "2024-03-31",
		OrderBy:         "start_date",
		OrderDirection:  "asc",
		Limit:           20,
		Offset:          40,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got.TransactionType != contractDomain.TypeSale || got.AgentID != 1 || got.ClientID != 7 {
		t.Errorf("filter = %+v", got)
	}
	if got.Status != contractDomain.StatusAll {
		t.Errorf("status = %q, want all sentinel", got.Status)
	}
	if got.DateFrom == nil || got.DateFrom.Format(DateLayout) != "2024-03-01" {
		t.Errorf("date_from = %v", got.DateFrom)
	}
	if got.OrderDesc {
		t.Error("order_direction=asc must clear OrderDesc")
	}
	if got.Limit != 20 || got.Offset != 40 {
		t.Errorf("paging = %d/%d", got.Limit, got.Offset)
	}

	// descending is the default direction
	if _, err := u.Search(context.Background(), SearchInput{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if !got.OrderDesc {
		t.Error("default direction must be descending")
	}
}

func TestSearch_BadDates(t *testing.T) {
	u := NewUsecase(&contractmock.Repo{}, uowmock.New(), nil, nil)

	for _, in := range []SearchInput{
		{DateFrom: "March 1"},
		{DateTo: "2024/03/31"},
	} {
		if _, err := u.Search(context.Background(), in); !errors.Is(err, contractDomain.ErrValidation) {
			t.Errorf("input %+v: err = %v, want ErrValidation", in, err)
		}
	}
}
