package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

func TestCompanyRepository(t *testing.T) {
	repo := NewGormCompanyRepository(newTestDB(t))
	ctx := context.Background()

	fb := &model.Company{Name: "Fatima Bakes", Acronym: " fb "}
	require.NoError(t, repo.Create(ctx, fb))
	assert.Equal(t, "FB", fb.Acronym)
	require.NoError(t, repo.Create(ctx, &model.Company{Name: "Acme Bread", Acronym: "AB"}))

	err := repo.Create(ctx, &model.Company{Name: "Fresh Bagels", Acronym: "FB"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	got, err := repo.GetByAcronym(ctx, "FB")
	require.NoError(t, err)
	assert.Equal(t, fb.ID, got.ID)

	got.Name = "Fatima Bakes Ltd"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fatima Bakes Ltd", got.Name)

	companies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme Bread", companies[0].Name)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAttendantRepository_PreloadsBranch(t *testing.T) {
	db := newTestDB(t)
	branches := NewGormBranchRepository(db)
	attendants := NewGormAttendantRepository(db)
	ctx := context.Background()

	downtown := &model.Branch{Name: "Downtown", Location: "Main St"}
	uptown := &model.Branch{Name: "Uptown", Location: "Hill Rd"}
	require.NoError(t, branches.Create(ctx, downtown))
	require.NoError(t, branches.Create(ctx, uptown))

	a := &model.Attendant{
		Email:        "ana@example.com",
		PasscodeHash: "hash",
		BranchID:     downtown.ID,
		CreatedBy:    uuid.New(),
	}
	require.NoError(t, attendants.Create(ctx, a))
	require.NoError(t, attendants.Create(ctx, &model.Attendant{
		Email:        "bo@example.com",
		PasscodeHash: "hash",
		BranchID:     uptown.ID,
		CreatedBy:    uuid.New(),
	}))

	err := attendants.Create(ctx, &model.Attendant{
		Email:        "ana@example.com",
		PasscodeHash: "hash",
		BranchID:     uptown.ID,
		CreatedBy:    uuid.New(),
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	got, err := attendants.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Branch)
	assert.Equal(t, "Downtown", got.Branch.Name)

	got, err = attendants.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	inUptown, err := attendants.List(ctx, &uptown.ID)
	require.NoError(t, err)
	require.Len(t, inUptown, 1)
	assert.Equal(t, "bo@example.com", inUptown[0].Email)

	all, err := attendants.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
