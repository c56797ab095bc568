package mysql

import (
	"context"
	"errors"
	"testing"

	contractDomain "estate-backoffice/internal/domain/contract"

	"gorm.io/gorm"
)

func TestClientLinkRepository_UniquePair(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientLinkRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &contractDomain.ContractClientLink{ContractID: 1, ClientID: 7, Role: contractDomain.RoleSeller}); err != nil {
		t.Fatalf("first link: %v", err)
	}
	// same client on the same contract, even in another role
	err := repo.Create(ctx, &contractDomain.ContractClientLink{ContractID: 1, ClientID: 7, Role: contractDomain.RoleBuyer})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}
	// same client on a different contract is fine
	if err := repo.Create(ctx, &contractDomain.ContractClientLink{ContractID: 2, ClientID: 7, Role: contractDomain.RoleSeller}); err != nil {
		t.Fatalf("other contract: %v", err)
	}
}

func TestClientLinkRepository_ListAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientLinkRepository(db)
	ctx := context.Background()

	links := []contractDomain.ContractClientLink{
		{ContractID: 1, ClientID: 7, Role: contractDomain.RoleSeller},
		{ContractID: 1, ClientID: 8, Role: contractDomain.RoleBuyer},
		{ContractID: 2, ClientID: 7, Role: contractDomain.RoleLandlord},
	}
	for i := range links {
		if err := repo.Create(ctx, &links[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListByContract(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	if err := repo.DeleteByContract(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = repo.ListByContract(ctx, 1)
	if err != nil || len(got) != 0 {
		t.Errorf("after delete: %d links err=%v, want 0 nil", len(got), err)
	}
	kept, err := repo.ListByContract(ctx, 2)
	if err != nil || len(kept) != 1 {
		t.Errorf("contract 2: %d links err=%v, want 1 nil", len(kept), err)
	}
}
