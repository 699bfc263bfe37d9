package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/order"
)

// seedOrderRefs 建立门市、员工和状态，返回(门市ID, 员工ID, 状态ID)
func seedOrderRefs(t *testing.T, db *gorm.DB) (uint, uint, uint) {
	t.Helper()
	dept := &DepartmentModel{Shorten: "AB", StoreName: "台北店"}
	require.NoError(t, db.Create(dept).Error)
	staff := &UserModel{Account: "alice", Password: "x", Username: "Alice", DepartmentID: &dept.ID}
	require.NoError(t, db.Create(staff).Error)
	status := &StatusModel{Flow: "送修中"}
	require.NoError(t, db.Create(status).Error)
	return dept.ID, staff.ID, status.ID
}

func newTestOrder(sn string, deptID, staffID, statusID uint) *order.Order {
	return &order.Order{
		SN:            sn,
		IssuerID:      uintPtr(staffID),
		DepartmentID:  uintPtr(deptID),
		ContactID:     uintPtr(staffID),
		CustomerName:  "王小明",
		CustomerPhone: "0912345678",
		Appearance:    order.Appearance(0b101),
		Service:       "保固内",
		Remark:        "屏幕闪烁",
		Cost:          1200,
		StatusID:      uintPtr(statusID),
	}
}

func TestOrderRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功回填ID与开单时间", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOrderRepository(db)
		deptID, staffID, statusID := seedOrderRefs(t, db)

		o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
		require.NoError(t, repo.Create(ctx, o))
		assert.NotZero(t, o.ID)
		assert.False(t, o.IssueAt.IsZero())

		found, err := repo.FindBySN(ctx, o.SN)
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
		assert.Equal(t, "0912345678", found.CustomerPhone)
		assert.Equal(t, order.Appearance(0b101), found.Appearance)
		assert.Equal(t, staffID, *found.IssuerID)
	})

	t.Run("序号重复返回ErrSerialCollision", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOrderRepository(db)
		deptID, staffID, statusID := seedOrderRefs(t, db)

		require.NoError(t, repo.Create(ctx, newTestOrder("AB0403071400010", deptID, staffID, statusID)))
		err := repo.Create(ctx, newTestOrder("AB0403071400010", deptID, staffID, statusID))
		assert.ErrorIs(t, err, order.ErrSerialCollision)
	})

	t.Run("LastID", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOrderRepository(db)
		deptID, staffID, statusID := seedOrderRefs(t, db)

		last, err := repo.LastID(ctx)
		require.NoError(t, err)
		assert.Zero(t, last)

		o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
		require.NoError(t, repo.Create(ctx, o))
		last, err = repo.LastID(ctx)
		require.NoError(t, err)
		assert.Equal(t, o.ID, last)
	})
}

func TestOrderRepository_FindBySN(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))

	_, err := repo.FindBySN(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrNotFound))
	assert.Contains(t, err.Error(), "NOPE")
}

func TestOrderRepository_FindBySNForUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	tx := NewTxManager(db)
	deptID, staffID, statusID := seedOrderRefs(t, db)

	o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
	require.NoError(t, repo.Create(ctx, o))

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := repo.FindBySNForUpdate(ctx, o.SN)
		if err != nil {
			return err
		}
		assert.Equal(t, o.ID, locked.ID)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, o.ID))
	err = tx.Transaction(ctx, func(ctx context.Context) error {
		_, err := repo.FindBySNForUpdate(ctx, o.SN)
		return err
	})
	assert.True(t, errors.Is(err, order.ErrNotFound))
}

func TestOrderRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	deptID, staffID, statusID := seedOrderRefs(t, db)

	o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
	require.NoError(t, repo.Create(ctx, o))

	loaded, err := repo.FindBySN(ctx, o.SN)
	require.NoError(t, err)

	zero := int64(0)
	remark := "已更换屏幕"
	require.NoError(t, loaded.Apply(order.Patch{Cost: &zero, Remark: &remark}))
	// 即使实体被误改，sn、开单人也不会被写回
	loaded.SN = "CHANGED"
	loaded.IssuerID = uintPtr(999)
	require.NoError(t, repo.Update(ctx, loaded))

	updated, err := repo.FindBySN(ctx, o.SN)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Cost)
	assert.Equal(t, "已更换屏幕", updated.Remark)
	assert.Equal(t, "王小明", updated.CustomerName)
	assert.Equal(t, staffID, *updated.IssuerID)
	assert.True(t, o.IssueAt.Equal(updated.IssueAt))
}

func TestOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	histories := NewHistoryRepository(db)
	tx := NewTxManager(db)
	deptID, staffID, statusID := seedOrderRefs(t, db)

	o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, histories.Append(ctx, order.NewHistory(o, staffID)))
	require.NoError(t, histories.Append(ctx, order.NewHistory(o, staffID)))

	var removed int64
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := histories.DeleteByOrderID(ctx, o.ID)
		if err != nil {
			return err
		}
		removed = n
		return repo.Delete(ctx, o.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.FindBySN(ctx, o.SN)
	assert.True(t, errors.Is(err, order.ErrNotFound))

	err = repo.Delete(ctx, o.ID)
	assert.True(t, errors.Is(err, order.ErrNotFound))
}

func TestHistoryRepository_Append(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	histories := NewHistoryRepository(db)
	deptID, staffID, statusID := seedOrderRefs(t, db)

	o := newTestOrder("AB0403071400010", deptID, staffID, statusID)
	require.NoError(t, repo.Create(ctx, o))

	before := time.Now().UTC().Add(-time.Second)
	h := order.NewHistory(o, staffID)
	require.NoError(t, histories.Append(ctx, h))
	assert.NotZero(t, h.ID)
	assert.True(t, h.ChangedAt.After(before))
	assert.Equal(t, o.ID, h.OrderID)
	assert.Equal(t, statusID, *h.StatusID)
	assert.Equal(t, int64(1200), h.Cost)
}
