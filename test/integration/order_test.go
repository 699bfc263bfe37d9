//go:build integration

package integration

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderLifecycle 开单 → 修改 → 查异动 → 删除
func TestOrderLifecycle(t *testing.T) {
	account, token := RegisterAndLogin(t, "it", "IT")
	sn := CreateTestOrder(t, token, "IT", account)
	assert.True(t, strings.HasPrefix(sn, "IT0"), sn)

	t.Run("修改只覆盖提供的字段", func(t *testing.T) {
		resp := Do(t, http.MethodPut, BaseURL()+"/order/"+sn, map[string]string{"status": "repaired"}, token)
		require.Equal(t, 200, resp.Code, resp.Message)

		var o OrderData
		resp.Field(t, "order", &o)
		assert.Equal(t, "repaired", o.Status)
		assert.Equal(t, "集成测试", o.Remark)
		assert.Equal(t, int64(1500), o.Cost)
	})

	t.Run("异动记录按时间升序", func(t *testing.T) {
		resp := Do(t, http.MethodGet, BaseURL()+"/order/history/"+sn, nil, "")
		require.Equal(t, 200, resp.Code)

		var list []HistoryData
		resp.Field(t, "histories", &list)
		require.Len(t, list, 2)
		assert.Equal(t, "received", list[0].Status)
		assert.Equal(t, "repaired", list[1].Status)
		assert.Equal(t, account, list[1].Issuer)
	})

	t.Run("删除后查不到", func(t *testing.T) {
		resp := Do(t, http.MethodDelete, BaseURL()+"/order/"+sn, nil, token)
		require.Equal(t, 200, resp.Code)

		resp = Do(t, http.MethodGet, BaseURL()+"/order/"+sn, nil, "")
		assert.Equal(t, 404, resp.Code)
	})
}

// TestOrderCreate_Concurrent 并发开单
// 序号由"最大ID加一"计算，并发时可能冲突；冲突的请求返回500，不会写入半张工单
func TestOrderCreate_Concurrent(t *testing.T) {
	account, token := RegisterAndLogin(t, "cc", "CC")

	const n = 10
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sns = make(map[string]bool)
	)
	codes := make([]int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := Do(t, http.MethodPost, BaseURL()+"/order", map[string]interface{}{
				"department":     "CC",
				"contact":        account,
				"customer_phone": "0911000000",
				"brand":          "Acer",
				"appearance":     "1",
				"status":         "received",
			}, token)
			codes[i] = resp.Code
			if resp.Code == 200 {
				var o OrderData
				resp.Field(t, "order", &o)
				mu.Lock()
				sns[o.SN] = true
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, c := range codes {
		assert.Contains(t, []int{200, 500}, c)
		if c == 200 {
			succeeded++
		}
	}
	assert.Equal(t, succeeded, len(sns), "成功的工单序号不能重复")
	assert.NotZero(t, succeeded)
}

// TestOrderAuth 写操作都要求登录
func TestOrderAuth(t *testing.T) {
	resp := Do(t, http.MethodPost, BaseURL()+"/order", map[string]string{}, "")
	assert.Equal(t, 400, resp.Code)

	resp = Do(t, http.MethodPut, BaseURL()+"/order/NOPE", map[string]string{}, "invalid")
	assert.Equal(t, 405, resp.Code)

	_, token := RegisterAndLogin(t, "lo", "LO")
	resp = Do(t, http.MethodGet, BaseURL()+"/logout", nil, token)
	require.Equal(t, 200, resp.Code)

	resp = Do(t, http.MethodGet, BaseURL()+"/me", nil, token)
	assert.Equal(t, 405, resp.Code)
}
