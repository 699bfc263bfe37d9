package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/dcare/internal/domain/user"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("创建并按账号查询", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		u := user.NewUser("alice", "hashed", "Alice")
		u.Phone = "0912345678"
		require.NoError(t, repo.Create(ctx, u))
		assert.NotZero(t, u.ID)

		found, err := repo.FindByAccount(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, "0912345678", found.Phone)
		assert.Nil(t, found.LoginAt)

		byID, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Account)
	})

	t.Run("账号重复", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		require.NoError(t, repo.Create(ctx, user.NewUser("alice", "hashed", "Alice")))
		err := repo.Create(ctx, user.NewUser("alice", "hashed", "Another"))
		assert.ErrorIs(t, err, user.ErrAccountDuplicate)
	})

	t.Run("账号不存在", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		_, err := repo.FindByAccount(ctx, "ghost")
		assert.True(t, errors.Is(err, user.ErrNotFound))
	})

	t.Run("更新登录时间", func(t *testing.T) {
		repo := NewUserRepository(newTestDB(t))

		u := user.NewUser("alice", "hashed", "Alice")
		require.NoError(t, repo.Create(ctx, u))

		at := time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)
		require.NoError(t, repo.UpdateLoginAt(ctx, u.ID, at))

		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LoginAt)
		assert.True(t, at.Equal(*found.LoginAt))

		assert.ErrorIs(t, repo.UpdateLoginAt(ctx, 999, at), user.ErrUserNotFound)
	})
}

func TestUserRepository_Profiles(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	dept := &DepartmentModel{Shorten: "AB"}
	require.NoError(t, db.Create(dept).Error)
	title := &TitleModel{Name: "工程师"}
	require.NoError(t, db.Create(title).Error)

	alice := user.NewUser("alice", "hashed", "Alice")
	alice.DepartmentID = &dept.ID
	alice.TitleID = &title.ID
	alice.Permission = user.PermGM
	require.NoError(t, repo.Create(ctx, alice))
	bob := user.NewUser("bob", "hashed", "Bob")
	bob.Phone = "0911000000"
	require.NoError(t, repo.Create(ctx, bob))

	t.Run("资料投影", func(t *testing.T) {
		p, err := repo.FindProfile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "AB", p.Department)
		assert.Equal(t, "工程师", p.Title)
		assert.Equal(t, user.RoleGM, p.Permission.Role())

		_, err = repo.FindProfile(ctx, "ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("列表筛选与分页", func(t *testing.T) {
		all, err := repo.List(ctx, user.ListFilter{}, 0, 100)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "alice", all[0].Account)
		assert.Equal(t, "", all[1].Department)

		byDept, err := repo.List(ctx, user.ListFilter{Department: "AB"}, 0, 100)
		require.NoError(t, err)
		require.Len(t, byDept, 1)
		assert.Equal(t, "alice", byDept[0].Account)

		byPhone, err := repo.List(ctx, user.ListFilter{Phone: "0911000000"}, 0, 100)
		require.NoError(t, err)
		require.Len(t, byPhone, 1)
		assert.Equal(t, "bob", byPhone[0].Account)

		second, err := repo.List(ctx, user.ListFilter{}, 1, 100)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, "bob", second[0].Account)

		none, err := repo.List(ctx, user.ListFilter{}, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("门市下的员工", func(t *testing.T) {
		account, ok, err := repo.AccountByDepartment(ctx, dept.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "alice", account)

		_, ok, err = repo.AccountByDepartment(ctx, dept.ID+1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("权限位", func(t *testing.T) {
		has, err := repo.HasAdmin(ctx)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, repo.UpdatePermission(ctx, bob.ID, user.PermAdmin|user.PermMaintainer))
		found, err := repo.FindByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, found.Permission.Role())

		has, err = repo.HasAdmin(ctx)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, bob.ID))
		_, err := repo.FindByID(ctx, bob.ID)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, bob.ID), user.ErrUserNotFound)
	})
}
