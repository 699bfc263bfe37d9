package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xiebiao/dcare/internal/domain/department"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// SequenceSource 提供当前最大工单ID
type SequenceSource interface {
	LastID(ctx context.Context) (uint, error)
}

// PrefixSource 提供门市代码
type PrefixSource interface {
	ShortenByID(ctx context.Context, id uint) (string, error)
}

// FormatSerial 组装工单序号
//
// 格式: <门市代码><年末位><MM><DD><hh><序号4位>0
//
//	FormatSerial("AB", 2024-03-07 14:xx, 12, 3) = "AB0403071400120"
//	FormatSerial("AB", 2024-03-07 14:xx, 12, 0) = "AB403071400120"
//
// width>0时门市代码右侧补'0'到width个字符,超长截断;width=0时原样使用。
// 宽度按字符计,中文代码不会被截成半个字。
// 末尾固定的"0"沿用旧格式,打印标签与报表依赖它。
func FormatSerial(prefix string, t time.Time, seq uint, width int) string {
	if width > 0 {
		runes := []rune(prefix)
		if len(runes) > width {
			runes = runes[:width]
		}
		prefix = string(runes) + strings.Repeat("0", width-len(runes))
	}

	t = t.UTC()
	return fmt.Sprintf("%s%d%02d%02d%02d%04d0",
		prefix, t.Year()%10, int(t.Month()), t.Day(), t.Hour(), seq)
}

// SerialGenerator 工单序号生成器
// 注意: "读最大ID再加一"在并发创建时可能算出相同序号,
// 唯一性最终由orders.sn唯一索引保证,冲突时创建失败(不自动重试)。
type SerialGenerator struct {
	seq           SequenceSource
	prefixes      PrefixSource
	width         int
	defaultPrefix string
	now           func() time.Time
}

// NewSerialGenerator 创建序号生成器
func NewSerialGenerator(seq SequenceSource, prefixes PrefixSource, width int, defaultPrefix string) *SerialGenerator {
	return &SerialGenerator{
		seq:           seq,
		prefixes:      prefixes,
		width:         width,
		defaultPrefix: defaultPrefix,
		now:           time.Now,
	}
}

// WithClock 替换时钟(测试用)
func (g *SerialGenerator) WithClock(now func() time.Time) *SerialGenerator {
	g.now = now
	return g
}

// Generate 为指定门市生成序号,门市为空或不存在时使用默认前缀
func (g *SerialGenerator) Generate(ctx context.Context, departmentID *uint) (string, error) {
	last, err := g.seq.LastID(ctx)
	if err != nil {
		return "", apperrors.Wrap(err, "生成工单序号失败")
	}

	prefix := g.defaultPrefix
	if departmentID != nil {
		shorten, err := g.prefixes.ShortenByID(ctx, *departmentID)
		switch {
		case err == nil && shorten != "":
			prefix = shorten
		case err != nil && !errors.Is(err, department.ErrNotFound):
			return "", err
		}
	}

	return FormatSerial(prefix, g.now(), last+1, g.width), nil
}
