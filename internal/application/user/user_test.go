package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
	"github.com/xiebiao/dcare/pkg/jwt"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	return m.Called(ctx, userID, data, ttl).Error(0)
}

func (m *mockSessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) DeleteSession(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	return m.Called(ctx, token, ttl).Error(0)
}

type fixture struct {
	db       *gorm.DB
	register *RegisterUseCase
	login    *LoginUseCase
	logout   *LogoutUseCase
	me       *MeUseCase
	refresh  *RefreshTokenUseCase
	staff    *StaffUseCase
	jwt      *jwt.Manager
	sessions *mockSessionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), mysql.NewGormConfig(false))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.Migrate(db))

	users := mysql.NewUserRepository(db)
	service := user.NewServiceWithCost(users, bcrypt.MinCost)
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	sessions := &mockSessionStore{}

	return &fixture{
		db:       db,
		register: NewRegisterUseCase(service, mysql.NewDepartmentRepository(db), mysql.NewLookupRepository(db)),
		login:    NewLoginUseCase(service, jwtManager, sessions),
		logout:   NewLogoutUseCase(jwtManager, sessions),
		me:       NewMeUseCase(users),
		refresh:  NewRefreshTokenUseCase(jwtManager, sessions),
		staff:    NewStaffUseCase(service, users, mysql.NewQueryRepository(db), sessions),
		jwt:      jwtManager,
		sessions: sessions,
	}
}

func (f *fixture) registerAlice(t *testing.T) *StaffInfo {
	t.Helper()
	info, err := f.register.Execute(context.Background(), RegisterRequest{
		Account:    "alice",
		Password:   "password123",
		Username:   "Alice",
		Department: "BM",
		Title:      "工程师",
	})
	require.NoError(t, err)
	return info
}

func TestRegister(t *testing.T) {
	t.Run("门市与职称不存在时建立", func(t *testing.T) {
		f := newFixture(t)
		info := f.registerAlice(t)
		assert.NotZero(t, info.ID)
		assert.Equal(t, "alice", info.Account)

		var n int64
		require.NoError(t, f.db.Table("departments").Where("shorten = ?", "BM").Count(&n).Error)
		assert.Equal(t, int64(1), n)
		require.NoError(t, f.db.Table("titles").Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("第一位员工成为管理员", func(t *testing.T) {
		f := newFixture(t)
		assert.Equal(t, "admin", f.registerAlice(t).Role)

		bob, err := f.register.Execute(context.Background(), RegisterRequest{
			Account: "bob", Password: "password123", Username: "Bob",
		})
		require.NoError(t, err)
		assert.Equal(t, "staff", bob.Role)
	})

	t.Run("账号重复时不建立新门市与职称", func(t *testing.T) {
		f := newFixture(t)
		f.registerAlice(t)

		_, err := f.register.Execute(context.Background(), RegisterRequest{
			Account: "alice", Password: "password123", Username: "Alice2", Department: "XY", Title: "店长",
		})
		assert.ErrorIs(t, err, user.ErrAccountDuplicate)

		var n int64
		require.NoError(t, f.db.Table("departments").Count(&n).Error)
		assert.Equal(t, int64(1), n)
		require.NoError(t, f.db.Table("titles").Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("密码太弱时不建立门市", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.register.Execute(context.Background(), RegisterRequest{
			Account: "bob", Password: "short", Username: "Bob", Department: "BM", Title: "工程师",
		})
		assert.ErrorIs(t, err, user.ErrWeakPassword)

		var n int64
		require.NoError(t, f.db.Table("departments").Count(&n).Error)
		assert.Zero(t, n)
		require.NoError(t, f.db.Table("titles").Count(&n).Error)
		assert.Zero(t, n)
	})
}

func TestLoginLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	info := f.registerAlice(t)

	f.sessions.On("SaveSession", mock.Anything, info.ID, mock.Anything, 24*time.Hour).Return(nil).Once()

	resp, err := f.login.Execute(ctx, LoginRequest{Account: "alice", Password: "password123", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Account)
	assert.NotNil(t, resp.User.LoginAt)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := f.jwt.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)

	me, err := f.me.Execute(ctx, claims.UserID)
	require.NoError(t, err)
	assert.NotNil(t, me.LoginAt)

	f.sessions.On("DeleteSession", mock.Anything, info.ID).Return(nil).Once()
	f.sessions.On("AddToBlacklist", mock.Anything, resp.AccessToken,
		mock.MatchedBy(func(ttl time.Duration) bool { return ttl > 0 && ttl <= time.Hour }),
	).Return(nil).Once()

	require.NoError(t, f.logout.Execute(ctx, claims, resp.AccessToken))
	f.sessions.AssertExpectations(t)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerAlice(t)

	_, err := f.login.Execute(ctx, LoginRequest{Account: "alice", Password: "wrong-pass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = f.login.Execute(ctx, LoginRequest{Account: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	f.sessions.AssertNotCalled(t, "SaveSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pair, err := f.jwt.GenerateToken(7, "alice", "Alice")
	require.NoError(t, err)

	t.Run("会话存在时换发", func(t *testing.T) {
		f.sessions.On("GetSession", mock.Anything, uint(7)).Return(map[string]string{"account": "alice"}, nil).Once()

		resp, err := f.refresh.Execute(ctx, pair.RefreshToken)
		require.NoError(t, err)
		claims, err := f.jwt.ParseAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("登出后拒绝", func(t *testing.T) {
		f.sessions.On("GetSession", mock.Anything, uint(7)).Return(nil, apperrors.ErrNotLoggedIn).Once()

		_, err := f.refresh.Execute(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	})

	t.Run("Access Token不能用来换发", func(t *testing.T) {
		_, err := f.refresh.Execute(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

// registerStaff 登记后直接改写权限位，返回员工ID
func (f *fixture) registerStaff(t *testing.T, account string, perm user.Permission) uint {
	t.Helper()
	info, err := f.register.Execute(context.Background(), RegisterRequest{
		Account: account, Password: "password123", Username: account, Department: "BM",
	})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&mysql.UserModel{}).Where("id = ?", info.ID).Update("permission", uint8(perm)).Error)
	return info.ID
}

func TestStaff_Query(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registerAlice(t)
	f.registerStaff(t, "bob", user.PermMaintainer)

	p, err := f.staff.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "BM", p.Department)
	assert.Equal(t, "工程师", p.Title)
	assert.Equal(t, "admin", p.Role)

	_, err = f.staff.Get(ctx, "ghost")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))

	list, err := f.staff.List(ctx, user.ListFilter{Department: "BM"}, 0, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "maintainer", list[1].Role)
}

func TestStaff_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("不存在", func(t *testing.T) {
		f := newFixture(t)
		adminID := f.registerStaff(t, "root", user.PermAdmin)

		err := f.staff.Delete(ctx, "ghost", adminID)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("仍被工单引用", func(t *testing.T) {
		f := newFixture(t)
		adminID := f.registerStaff(t, "root", user.PermAdmin)
		bobID := f.registerStaff(t, "bob", 0)
		require.NoError(t, f.db.Create(&mysql.OrderModel{SN: "BM0000000000010", CustomerPhone: "0912345678", ServicerID: &bobID}).Error)

		err := f.staff.Delete(ctx, "bob", adminID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeBadRequest, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "BM0000000000010")

		_, err = f.staff.Get(ctx, "bob")
		assert.NoError(t, err)
	})

	t.Run("引用检查先于权限检查", func(t *testing.T) {
		f := newFixture(t)
		f.registerStaff(t, "root", user.PermAdmin)
		bobID := f.registerStaff(t, "bob", 0)
		carolID := f.registerStaff(t, "carol", 0)
		require.NoError(t, f.db.Create(&mysql.OrderModel{SN: "BM0000000000010", CustomerPhone: "0912345678", ContactID: &bobID}).Error)

		err := f.staff.Delete(ctx, "bob", carolID)
		assert.Equal(t, apperrors.ErrCodeBadRequest, apperrors.CodeOf(err))
	})

	t.Run("无权删除", func(t *testing.T) {
		f := newFixture(t)
		f.registerStaff(t, "root", user.PermAdmin)
		gmID := f.registerStaff(t, "boss", user.PermGM)
		f.registerStaff(t, "boss2", user.PermGM)
		staffID := f.registerStaff(t, "bob", 0)
		f.registerStaff(t, "carol", 0)

		for _, tc := range []struct {
			actor  uint
			target string
		}{
			{gmID, "root"},
			{gmID, "boss2"},
			{staffID, "carol"},
		} {
			err := f.staff.Delete(ctx, tc.target, tc.actor)
			assert.ErrorIs(t, err, user.ErrPermissionDenied, tc.target)
			assert.Equal(t, apperrors.ErrCodePermissionDenied, apperrors.CodeOf(err))
		}
		f.sessions.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
	})

	t.Run("成功并清除会话", func(t *testing.T) {
		f := newFixture(t)
		gmID := f.registerStaff(t, "boss", user.PermGM)
		f.registerStaff(t, "root", user.PermAdmin)
		bobID := f.registerStaff(t, "bob", user.PermMaintainer)

		f.sessions.On("DeleteSession", mock.Anything, bobID).Return(apperrors.ErrNotLoggedIn).Once()

		require.NoError(t, f.staff.Delete(ctx, "bob", gmID))
		_, err := f.staff.Get(ctx, "bob")
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
		f.sessions.AssertExpectations(t)
	})

	t.Run("删除自己", func(t *testing.T) {
		f := newFixture(t)
		f.registerStaff(t, "root", user.PermAdmin)
		bobID := f.registerStaff(t, "bob", 0)

		f.sessions.On("DeleteSession", mock.Anything, bobID).Return(nil).Once()
		require.NoError(t, f.staff.Delete(ctx, "bob", bobID))
	})
}

func TestStaff_AssignRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	adminID := f.registerStaff(t, "root", user.PermAdmin)
	gmID := f.registerStaff(t, "boss", user.PermGM)
	f.registerStaff(t, "bob", 0)

	p, err := f.staff.AssignRole(ctx, "bob", "maintainer", gmID)
	require.NoError(t, err)
	assert.Equal(t, "maintainer", p.Role)

	_, err = f.staff.AssignRole(ctx, "bob", "gm", gmID)
	assert.ErrorIs(t, err, user.ErrPermissionDenied)

	p, err = f.staff.AssignRole(ctx, "bob", "gm", adminID)
	require.NoError(t, err)
	assert.Equal(t, "gm", p.Role)

	_, err = f.staff.AssignRole(ctx, "ghost", "gm", adminID)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}
