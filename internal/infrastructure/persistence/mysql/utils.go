package mysql

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/dcare/pkg/metrics"
)

// isDuplicateError 判断是否为唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
// SQLite(测试): UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// 需要gorm.Config.TranslateError为true
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// findID 按自然键查询代理ID
func findID(db *gorm.DB, table string, where map[string]interface{}) (uint, bool, error) {
	var ids []uint
	if err := db.Table(table).Where(where).Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

// resolveID get-or-create
// 1. 先查询，命中直接返回
// 2. 未命中时 INSERT ... ON CONFLICT DO NOTHING(MySQL为ON DUPLICATE KEY UPDATE id=id)
// 3. 再查询一次，并发插入同一自然键时也只会得到同一行
func resolveID(db *gorm.DB, table string, where map[string]interface{}, row interface{}) (uint, error) {
	id, ok, err := findID(db, table, where)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		metrics.LookupRowsCreatedTotal.WithLabelValues(table).Inc()
	}

	id, ok, err = findID(db, table, where)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s: 插入后仍查不到记录", table)
	}
	return id, nil
}
