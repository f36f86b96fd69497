package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"voucherhub/internal/model"
)

// testVoucherRepository runs the behaviour every VoucherRepository must share.
func testVoucherRepository(t *testing.T, newRepo func(t *testing.T) VoucherRepository) {
	t.Run("create and lookup", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		companyID := uuid.New()

		v := testVoucher(" fb-abc123", companyID)
		require.NoError(t, repo.Create(ctx, v))
		assert.Equal(t, "FB-ABC123", v.Code)
		assert.NotEqual(t, uuid.Nil, v.ID)

		byCode, err := repo.GetByCode(ctx, "fb-abc123")
		require.NoError(t, err)
		assert.Equal(t, v.ID, byCode.ID)
		assert.Equal(t, model.VoucherStatusActive, byCode.Status)
		assert.Equal(t, companyID, byCode.CompanyID)
		assert.Nil(t, byCode.UsedBy)
		assert.Nil(t, byCode.UsedAt)

		byID, err := repo.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "FB-ABC123", byID.Code)

		exists, err := repo.ExistsByCode(ctx, "Fb-Abc123")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByCode(ctx, "FB-ZZZZZZ")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.GetByCode(ctx, "FB-ZZZZZZ")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, testVoucher("FB-DUP001", uuid.New())))
		err := repo.Create(ctx, testVoucher("fb-dup001", uuid.New()))
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		companyID := uuid.New()

		require.NoError(t, repo.Create(ctx, testVoucher("FB-TAKEN1", companyID)))

		err := repo.CreateBatch(ctx, []*model.Voucher{
			testVoucher("FB-FRESH1", companyID),
			testVoucher("FB-TAKEN1", companyID),
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		err = repo.CreateBatch(ctx, []*model.Voucher{
			testVoucher("FB-FRESH2", companyID),
			testVoucher("FB-FRESH2", companyID),
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		for _, code := range []string{"FB-FRESH1", "FB-FRESH2"} {
			exists, err := repo.ExistsByCode(ctx, code)
			require.NoError(t, err)
			assert.False(t, exists, code)
		}

		batch := make([]*model.Voucher, 0, 50)
		for i := 0; i < 50; i++ {
			batch = append(batch, testVoucher(fmt.Sprintf("FB-B%05d", i), companyID))
		}
		require.NoError(t, repo.CreateBatch(ctx, batch))

		counts, err := repo.CountByStatus(ctx, &companyID)
		require.NoError(t, err)
		assert.Equal(t, int64(51), counts[model.VoucherStatusActive])
	})

	t.Run("transition compare and swap", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, testVoucher("FB-CAS001", uuid.New())))

		attendantID := uuid.New()
		usedAt := time.Now().UTC().Truncate(time.Second)
		use := StatusChange{
			From:   []model.VoucherStatus{model.VoucherStatusActive},
			To:     model.VoucherStatusUsed,
			UsedBy: &attendantID,
			UsedAt: &usedAt,
		}

		v, err := repo.Transition(ctx, "fb-cas001", use)
		require.NoError(t, err)
		assert.Equal(t, model.VoucherStatusUsed, v.Status)
		require.NotNil(t, v.UsedBy)
		assert.Equal(t, attendantID, *v.UsedBy)
		require.NotNil(t, v.UsedAt)
		assert.WithinDuration(t, usedAt, *v.UsedAt, time.Second)

		current, err := repo.Transition(ctx, "FB-CAS001", use)
		assert.ErrorIs(t, err, ErrStatusConflict)
		require.NotNil(t, current)
		assert.Equal(t, model.VoucherStatusUsed, current.Status)

		v, err = repo.Transition(ctx, "FB-CAS001", StatusChange{
			From: []model.VoucherStatus{model.VoucherStatusUsed},
			To:   model.VoucherStatusActive,
		})
		require.NoError(t, err)
		assert.Equal(t, model.VoucherStatusActive, v.Status)
		assert.Nil(t, v.UsedBy)
		assert.Nil(t, v.UsedAt)

		_, err = repo.Transition(ctx, "FB-NOPE00", use)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("concurrent transitions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, testVoucher("FB-RACE01", uuid.New())))

		const workers = 20
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				attendantID := uuid.New()
				usedAt := time.Now().UTC()
				_, err := repo.Transition(ctx, "FB-RACE01", StatusChange{
					From:   []model.VoucherStatus{model.VoucherStatusActive},
					To:     model.VoucherStatusUsed,
					UsedBy: &attendantID,
					UsedAt: &usedAt,
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, ErrStatusConflict):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, workers-1, conflicts)
	})

	t.Run("list and count", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		fb, ab := uuid.New(), uuid.New()

		for i := 0; i < 4; i++ {
			require.NoError(t, repo.Create(ctx, testVoucher(fmt.Sprintf("FB-L%05d", i), fb)))
		}
		require.NoError(t, repo.Create(ctx, testVoucher("AB-L00000", ab)))

		_, err := repo.Transition(ctx, "FB-L00001", StatusChange{
			From: []model.VoucherStatus{model.VoucherStatusActive},
			To:   model.VoucherStatusInvalid,
		})
		require.NoError(t, err)

		all, err := repo.List(ctx, VoucherFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 5)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "newest first")
		}

		fbActive, err := repo.List(ctx, VoucherFilter{CompanyID: &fb, Status: model.VoucherStatusActive})
		require.NoError(t, err)
		assert.Len(t, fbActive, 3)
		for _, v := range fbActive {
			assert.Equal(t, fb, v.CompanyID)
		}

		page, err := repo.List(ctx, VoucherFilter{CompanyID: &fb, Limit: 2, Offset: 3})
		require.NoError(t, err)
		assert.Len(t, page, 1)

		counts, err := repo.CountByStatus(ctx, &fb)
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[model.VoucherStatusActive])
		assert.Equal(t, int64(1), counts[model.VoucherStatusInvalid])
		assert.Zero(t, counts[model.VoucherStatusUsed])

		counts, err = repo.CountByStatus(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(4), counts[model.VoucherStatusActive])
	})
}

func TestMemoryVoucherRepository(t *testing.T) {
	testVoucherRepository(t, func(t *testing.T) VoucherRepository {
		return NewMemoryVoucherRepository()
	})
}

func TestGormVoucherRepository_SQLite(t *testing.T) {
	testVoucherRepository(t, func(t *testing.T) VoucherRepository {
		return NewGormVoucherRepository(newTestDB(t))
	})
}

func TestGormVoucherRepository_BatchRollsBackMidway(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormVoucherRepository(db)
	ctx := context.Background()

	// Fail the second INSERT chunk after the first one has been written.
	var chunks int
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:fail_second_chunk", func(tx *gorm.DB) {
		if tx.Statement.Table != "vouchers" {
			return
		}
		chunks++
		if chunks == 2 {
			_ = tx.AddError(errors.New("injected failure"))
		}
	}))

	companyID := uuid.New()
	batch := make([]*model.Voucher, 0, 2*batchInsertSize+200)
	for i := 0; i < cap(batch); i++ {
		batch = append(batch, testVoucher(fmt.Sprintf("FB-M%05d", i), companyID))
	}

	err := repo.CreateBatch(ctx, batch)
	require.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, 2, chunks)

	counts, err := repo.CountByStatus(ctx, &companyID)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
