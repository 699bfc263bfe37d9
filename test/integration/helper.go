//go:build integration

// Package integration 对运行中的dcare服务做端到端测试
//
//	go run ./cmd/api
//	DCARE_BASE_URL=http://localhost:8080/api/v1 go test -tags=integration ./test/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL API基础URL，可用DCARE_BASE_URL覆盖
func BaseURL() string {
	if v := os.Getenv("DCARE_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080/api/v1"
}

// Response 信封，数据挂在具名字段下，按需取出
type Response struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Fields  map[string]json.RawMessage `json:"-"`
}

// Field 把具名字段解析到v
func (r *Response) Field(t *testing.T, name string, v interface{}) {
	t.Helper()
	raw, ok := r.Fields[name]
	require.True(t, ok, "响应中没有%s字段", name)
	require.NoError(t, json.Unmarshal(raw, v))
}

// TokenData 登录/换发响应中的token字段
type TokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OrderData 工单详情
type OrderData struct {
	SN         string `json:"sn"`
	Issuer     string `json:"issuer"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Remark     string `json:"remark"`
	Cost       int64  `json:"cost"`
}

// HistoryData 异动记录
type HistoryData struct {
	ID     uint   `json:"id"`
	SN     string `json:"sn"`
	Issuer string `json:"issuer"`
	Status string `json:"status"`
	Cost   int64  `json:"cost"`
}

// Do 发送请求并解析信封
func Do(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	require.NoError(t, json.Unmarshal(raw, &result.Fields))
	return &result
}

// UniqueAccount 生成唯一的测试账号，避免重复运行时冲突
func UniqueAccount(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// RegisterAndLogin 登记员工并登录，返回账号与Access Token
func RegisterAndLogin(t *testing.T, prefix, department string) (string, string) {
	t.Helper()

	account := UniqueAccount(prefix)
	resp := Do(t, http.MethodPost, BaseURL()+"/user", map[string]string{
		"account":    account,
		"password":   "Test1234",
		"username":   prefix,
		"department": department,
	}, "")
	require.Equal(t, 200, resp.Code, "登记失败: %s", resp.Message)

	resp = Do(t, http.MethodPost, BaseURL()+"/login", map[string]string{
		"account":  account,
		"password": "Test1234",
	}, "")
	require.Equal(t, 200, resp.Code, "登录失败: %s", resp.Message)

	var token TokenData
	resp.Field(t, "token", &token)
	return account, token.AccessToken
}

// CreateTestOrder 开一张测试工单，返回序号
func CreateTestOrder(t *testing.T, token, department, contact string) string {
	t.Helper()

	resp := Do(t, http.MethodPost, BaseURL()+"/order", map[string]interface{}{
		"department":     department,
		"contact":        contact,
		"customer_phone": "0911000000",
		"brand":          "Acer",
		"model":          "Swift 3",
		"appearance":     "1",
		"remark":         "集成测试",
		"cost":           1500,
		"status":         "received",
	}, token)
	require.Equal(t, 200, resp.Code, "开单失败: %s", resp.Message)

	var o OrderData
	resp.Field(t, "order", &o)
	return o.SN
}
