package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdepartment "github.com/xiebiao/dcare/internal/application/department"
	apporder "github.com/xiebiao/dcare/internal/application/order"
	appuser "github.com/xiebiao/dcare/internal/application/user"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/internal/infrastructure/config"
	"github.com/xiebiao/dcare/internal/infrastructure/messaging"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/dcare/internal/interface/http/handler"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
	"github.com/xiebiao/dcare/pkg/jwt"
)

// memorySessionStore 内存版会话与黑名单
type memorySessionStore struct {
	mu        sync.Mutex
	sessions  map[uint]map[string]string
	blacklist map[string]bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		sessions:  make(map[uint]map[string]string),
		blacklist: make(map[string]bool),
	}
}

func (s *memorySessionStore) SaveSession(_ context.Context, userID uint, _ map[string]interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = map[string]string{"user_id": "1"}
	return nil
}

func (s *memorySessionStore) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.ErrNotLoggedIn
	}
	return data, nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memorySessionStore) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = true
	return nil
}

func (s *memorySessionStore) IsInBlacklist(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blacklist[token], nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), mysql.NewGormConfig(false))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.Migrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Pagination = config.PaginationConfig{DefaultEntries: 100, MaxEntries: 1000}

	lookups := mysql.NewLookupRepository(db)
	departments := mysql.NewDepartmentRepository(db)
	users := mysql.NewUserRepository(db)
	orders := mysql.NewOrderRepository(db)
	histories := mysql.NewHistoryRepository(db)
	queries := mysql.NewQueryRepository(db)
	txManager := mysql.NewTxManager(db)
	events := messaging.NoopPublisher{}
	serials := order.NewSerialGenerator(orders, departments, 3, "NN").
		WithClock(func() time.Time { return time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC) })

	sessions := newMemorySessionStore()
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	userService := user.NewServiceWithCost(users, bcrypt.MinCost)

	paginator := apporder.NewPaginator(cfg.Pagination.DefaultEntries, cfg.Pagination.MaxEntries)

	orderHandler := handler.NewOrderHandler(
		apporder.NewCreateOrderUseCase(lookups, departments, users, orders, histories, queries, serials, events, txManager),
		apporder.NewUpdateOrderUseCase(lookups, departments, users, orders, histories, queries, events, txManager),
		apporder.NewDeleteOrderUseCase(orders, histories, events, txManager),
		apporder.NewQueryOrderUseCase(orders, queries),
		paginator,
	)
	userHandler := handler.NewUserHandler(
		appuser.NewRegisterUseCase(userService, departments, lookups),
		appuser.NewLoginUseCase(userService, jwtManager, sessions),
		appuser.NewLogoutUseCase(jwtManager, sessions),
		appuser.NewMeUseCase(users),
		appuser.NewRefreshTokenUseCase(jwtManager, sessions),
		appuser.NewStaffUseCase(userService, users, queries, sessions),
		paginator,
	)
	departmentHandler := handler.NewDepartmentHandler(
		appdepartment.NewUseCase(departments, users, queries),
		paginator,
	)

	return NewRouter(cfg, orderHandler, userHandler, departmentHandler, middleware.NewAuthMiddleware(jwtManager, sessions))
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) map[string]interface{} {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 传输层始终200
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func code(resp map[string]interface{}) int {
	v, _ := resp["code"].(float64)
	return int(v)
}

// loginAs 登记并登录，返回access与refresh token
func loginAs(t *testing.T, r *gin.Engine, account string) (string, string) {
	t.Helper()

	resp := doJSON(t, r, http.MethodPost, "/api/v1/user", "", gin.H{
		"account":    account,
		"password":   "password123",
		"username":   strings.ToUpper(account),
		"department": "BM",
	})
	require.Equal(t, 200, code(resp), resp["message"])

	resp = doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"account":  account,
		"password": "password123",
	})
	require.Equal(t, 200, code(resp), resp["message"])
	token := resp["token"].(map[string]interface{})
	return token["access_token"].(string), token["refresh_token"].(string)
}

func newOrderBody() gin.H {
	return gin.H{
		"department":     "BM",
		"contact":        "alice",
		"customer_name":  "王小明",
		"customer_phone": "0911000000",
		"brand":          "Acer",
		"model":          "Swift 3",
		"accessory1":     "充电器",
		"appearance":     "10000000",
		"fault1":         "无法开机",
		"remark":         "客户急件",
		"cost":           1500,
		"status":         "received",
	}
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, "pong", resp["message"])
}

func TestOrderLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token, _ := loginAs(t, r, "alice")

	resp := doJSON(t, r, http.MethodPost, "/api/v1/order", token, newOrderBody())
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Contains(t, resp["message"], "create success")
	created := resp["order"].(map[string]interface{})
	sn := created["sn"].(string)
	assert.Equal(t, "BM0403071400010", sn)
	assert.Equal(t, "alice", created["issuer"])
	assert.Equal(t, "received", created["status"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order/"+sn, "", nil)
	require.Equal(t, 200, code(resp))
	assert.Equal(t, "Acer", resp["order"].(map[string]interface{})["brand"])

	resp = doJSON(t, r, http.MethodPut, "/api/v1/order/"+sn, token, gin.H{"status": "repaired"})
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Contains(t, resp["message"], "order update success - history")
	updated := resp["order"].(map[string]interface{})
	assert.Equal(t, "repaired", updated["status"])
	assert.Equal(t, "客户急件", updated["remark"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order/history/"+sn, "", nil)
	require.Equal(t, 200, code(resp))
	histories := resp["histories"].([]interface{})
	require.Len(t, histories, 2)
	assert.Equal(t, "received", histories[0].(map[string]interface{})["status"])
	assert.Equal(t, "repaired", histories[1].(map[string]interface{})["status"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order/history?issuer=alice", "", nil)
	require.Equal(t, 200, code(resp))
	assert.Len(t, resp["histories"], 2)

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order?department=BM", "", nil)
	require.Equal(t, 200, code(resp))
	assert.Len(t, resp["orders"], 1)

	resp = doJSON(t, r, http.MethodDelete, "/api/v1/order/"+sn, token, nil)
	require.Equal(t, 200, code(resp))
	assert.Equal(t, "delete success", resp["message"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order/"+sn, "", nil)
	assert.Equal(t, 404, code(resp))

	resp = doJSON(t, r, http.MethodGet, "/api/v1/order/history/"+sn, "", nil)
	assert.Equal(t, 404, code(resp))
}

func TestOrderEndpoints_Errors(t *testing.T) {
	r := newTestRouter(t)
	token, _ := loginAs(t, r, "alice")

	missingPhone := newOrderBody()
	delete(missingPhone, "customer_phone")
	badPhone := newOrderBody()
	badPhone["customer_phone"] = "phone"
	unknownDept := newOrderBody()
	unknownDept["department"] = "ZZ"
	unknownStaff := newOrderBody()
	unknownStaff["servicer"] = "nobody"

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		code   int
	}{
		{"create without token", http.MethodPost, "/api/v1/order", "", newOrderBody(), 400},
		{"create with bad token", http.MethodPost, "/api/v1/order", "garbage", newOrderBody(), 405},
		{"missing customer_phone", http.MethodPost, "/api/v1/order", token, missingPhone, 400},
		{"invalid customer_phone", http.MethodPost, "/api/v1/order", token, badPhone, 400},
		{"unknown department", http.MethodPost, "/api/v1/order", token, unknownDept, 404},
		{"unknown servicer", http.MethodPost, "/api/v1/order", token, unknownStaff, 400},
		{"update missing order", http.MethodPut, "/api/v1/order/NOPE", token, gin.H{"status": "x"}, 404},
		{"delete without token", http.MethodDelete, "/api/v1/order/NOPE", "", nil, 400},
		{"delete missing order", http.MethodDelete, "/api/v1/order/NOPE", token, nil, 404},
		{"negative offset", http.MethodGet, "/api/v1/order?offset=-1", "", nil, 400},
		{"bad issue_from", http.MethodGet, "/api/v1/order?issue_from=03-07", "", nil, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, r, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.code, code(resp), resp["message"])
		})
	}
}

func TestOrderList_Empty(t *testing.T) {
	r := newTestRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/api/v1/order", "", nil)
	require.Equal(t, 200, code(resp))
	assert.Equal(t, []interface{}{}, resp["orders"])
}

func TestSessionEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token, refresh := loginAs(t, r, "alice")

	resp := doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, 200, code(resp))
	assert.Equal(t, "alice", resp["user"].(map[string]interface{})["account"])

	resp = doJSON(t, r, http.MethodPost, "/api/v1/token/refresh", "", gin.H{"refresh_token": refresh})
	require.Equal(t, 200, code(resp), resp["message"])
	assert.NotEmpty(t, resp["token"].(map[string]interface{})["access_token"])

	// Refresh Token不能当Access Token用
	resp = doJSON(t, r, http.MethodGet, "/api/v1/me", refresh, nil)
	assert.Equal(t, 405, code(resp))

	resp = doJSON(t, r, http.MethodGet, "/api/v1/logout", token, nil)
	require.Equal(t, 200, code(resp))

	resp = doJSON(t, r, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, 405, code(resp))

	resp = doJSON(t, r, http.MethodPost, "/api/v1/token/refresh", "", gin.H{"refresh_token": refresh})
	assert.Equal(t, 400, code(resp))
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(t)
	loginAs(t, r, "alice")

	resp := doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"account":  "alice",
		"password": "wrongpass1",
	})
	assert.Equal(t, 400, code(resp))
}

func TestStaffEndpoints(t *testing.T) {
	r := newTestRouter(t)
	admin, _ := loginAs(t, r, "alice")
	staff, _ := loginAs(t, r, "bob")
	loginAs(t, r, "carol")

	resp := doJSON(t, r, http.MethodGet, "/api/v1/user?department=BM", "", nil)
	require.Equal(t, 200, code(resp))
	users := resp["users"].([]interface{})
	require.Len(t, users, 3)
	assert.Equal(t, "admin", users[0].(map[string]interface{})["role"])
	assert.Equal(t, "staff", users[1].(map[string]interface{})["role"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/user/bob", "", nil)
	require.Equal(t, 200, code(resp))
	assert.Equal(t, "BM", resp["user"].(map[string]interface{})["department"])

	resp = doJSON(t, r, http.MethodPost, "/api/v1/order", admin, newOrderBody())
	require.Equal(t, 200, code(resp), resp["message"])
	sn := resp["order"].(map[string]interface{})["sn"].(string)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		code   int
	}{
		{"get missing staff", http.MethodGet, "/api/v1/user/ghost", "", nil, 404},
		{"delete without token", http.MethodDelete, "/api/v1/user/carol", "", nil, 400},
		{"delete missing staff", http.MethodDelete, "/api/v1/user/ghost", admin, nil, 404},
		{"staff deletes staff", http.MethodDelete, "/api/v1/user/carol", staff, nil, 405},
		{"staff deletes referenced admin", http.MethodDelete, "/api/v1/user/alice", staff, nil, 400},
		{"staff grants itself gm", http.MethodPut, "/api/v1/user/bob/role", staff, gin.H{"role": "gm"}, 405},
		{"unknown role", http.MethodPut, "/api/v1/user/bob/role", admin, gin.H{"role": "wizard"}, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, r, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.code, code(resp), resp["message"])
		})
	}

	resp = doJSON(t, r, http.MethodDelete, "/api/v1/user/alice", staff, nil)
	assert.Contains(t, resp["message"], sn)

	resp = doJSON(t, r, http.MethodPut, "/api/v1/user/bob/role", admin, gin.H{"role": "gm"})
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Equal(t, "gm", resp["user"].(map[string]interface{})["role"])

	// 总经理可以删除一般员工
	resp = doJSON(t, r, http.MethodDelete, "/api/v1/user/carol", staff, nil)
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Equal(t, "delete success", resp["message"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/user/carol", "", nil)
	assert.Equal(t, 404, code(resp))
}

func TestDepartmentEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token, _ := loginAs(t, r, "alice")

	resp := doJSON(t, r, http.MethodPost, "/api/v1/department", token, gin.H{
		"shorten":    "CD",
		"store_name": "台中店",
		"telephone":  "(04)2345-6789",
	})
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Equal(t, "department/CD create success", resp["message"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/department", "", nil)
	require.Equal(t, 200, code(resp))
	assert.Len(t, resp["departments"], 2)

	resp = doJSON(t, r, http.MethodGet, "/api/v1/department?store_name="+url.QueryEscape("台中店"), "", nil)
	require.Equal(t, 200, code(resp))
	list := resp["departments"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "CD", list[0].(map[string]interface{})["shorten"])

	resp = doJSON(t, r, http.MethodPut, "/api/v1/department/CD", token, gin.H{"store_name": "台中旗舰店"})
	require.Equal(t, 200, code(resp), resp["message"])
	assert.Equal(t, "台中旗舰店", resp["department"].(map[string]interface{})["store_name"])

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		code   int
	}{
		{"create without token", http.MethodPost, "/api/v1/department", "", gin.H{"shorten": "EF"}, 400},
		{"create without shorten", http.MethodPost, "/api/v1/department", token, gin.H{"store_name": "x"}, 400},
		{"duplicate shorten", http.MethodPost, "/api/v1/department", token, gin.H{"shorten": "CD"}, 400},
		{"bad telephone", http.MethodPost, "/api/v1/department", token, gin.H{"shorten": "EF", "telephone": "tel"}, 400},
		{"get missing", http.MethodGet, "/api/v1/department/ZZ", "", nil, 404},
		{"update missing", http.MethodPut, "/api/v1/department/ZZ", token, gin.H{}, 404},
		{"delete missing", http.MethodDelete, "/api/v1/department/ZZ", token, nil, 404},
		{"delete with staff", http.MethodDelete, "/api/v1/department/BM", token, nil, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, r, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.code, code(resp), resp["message"])
		})
	}

	resp = doJSON(t, r, http.MethodDelete, "/api/v1/department/CD", token, nil)
	require.Equal(t, 200, code(resp), resp["message"])

	resp = doJSON(t, r, http.MethodGet, "/api/v1/department/CD", "", nil)
	assert.Equal(t, 404, code(resp))
}
