package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AppearanceBits 外观勾选项的固定位数
const AppearanceBits = 8

// Appearance 外观状况位图（刮伤、破裂、进水等勾选项）
// 第i位对应位串"10000000"中的第i个字符。
type Appearance uint8

// Has 是否勾选第i项
func (a Appearance) Has(i int) bool {
	if i < 0 || i >= AppearanceBits {
		return false
	}
	return a&(1<<uint(i)) != 0
}

// With 返回勾选第i项后的位图
func (a Appearance) With(i int) Appearance {
	if i < 0 || i >= AppearanceBits {
		return a
	}
	return a | 1<<uint(i)
}

// String 位串形式，如 "10100000"
func (a Appearance) String() string {
	var b strings.Builder
	for i := 0; i < AppearanceBits; i++ {
		if a.Has(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseAppearance 解析位串，长度不能超过AppearanceBits
func ParseAppearance(s string) (Appearance, error) {
	if len(s) > AppearanceBits {
		return 0, fmt.Errorf("appearance最多%d位: %q", AppearanceBits, s)
	}
	var a Appearance
	for i, ch := range s {
		switch ch {
		case '1':
			a = a.With(i)
		case '0':
		default:
			return 0, fmt.Errorf("appearance只能包含0/1: %q", s)
		}
	}
	return a, nil
}

// bitVec 旧版客户端使用的位图JSON格式：{"storage":[1],"nbits":8}
type bitVec struct {
	Storage []uint32 `json:"storage"`
	NBits   int      `json:"nbits"`
}

// MarshalJSON 输出旧版位图格式，保持与现有前端兼容
func (a Appearance) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitVec{Storage: []uint32{uint32(a)}, NBits: AppearanceBits})
}

// UnmarshalJSON 同时接受旧版位图对象和位串
func (a *Appearance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseAppearance(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	var v bitVec
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("appearance格式错误: %w", err)
	}
	if v.NBits < 0 || v.NBits > AppearanceBits || len(v.Storage) > 1 {
		return fmt.Errorf("appearance最多%d位", AppearanceBits)
	}
	if len(v.Storage) == 0 {
		*a = 0
		return nil
	}
	if v.Storage[0]>>uint(v.NBits) != 0 {
		return fmt.Errorf("appearance超出%d位", v.NBits)
	}
	*a = Appearance(v.Storage[0])
	return nil
}
