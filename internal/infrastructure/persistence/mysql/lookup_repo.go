package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/lookup"
)

// lookupRepository 参照表解析实现
// 机型、配件、故障、状态、职称五张表共用同一套get-or-create逻辑(resolveID)
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository 创建参照表解析器
func NewLookupRepository(db *gorm.DB) lookup.Resolver {
	return &lookupRepository{db: db}
}

// ModelID 机型，型号为空时使用lookup.DefaultModel
func (r *lookupRepository) ModelID(ctx context.Context, brand, model string) (uint, error) {
	if model == "" {
		model = lookup.DefaultModel
	}
	id, err := resolveID(getDB(ctx, r.db), "models",
		map[string]interface{}{"brand": brand, "model": model},
		&ModelModel{Brand: brand, Model: model},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("models", err)
	}
	return id, nil
}

// Model 按ID取回品牌与型号
func (r *lookupRepository) Model(ctx context.Context, id uint) (string, string, error) {
	var model ModelModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", lookup.ErrNotFound
		}
		return "", "", lookup.ResolutionFailed("models", err)
	}
	return model.Brand, model.Model, nil
}

// AccessoryID 配件，price只在新建时写入
func (r *lookupRepository) AccessoryID(ctx context.Context, item string, price int64) (uint, error) {
	id, err := resolveID(getDB(ctx, r.db), "accessories",
		map[string]interface{}{"item": item},
		&AccessoryModel{Item: item, Price: price},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("accessories", err)
	}
	return id, nil
}

// FaultID 故障，cost只在新建时写入
func (r *lookupRepository) FaultID(ctx context.Context, item string, cost int64) (uint, error) {
	id, err := resolveID(getDB(ctx, r.db), "faults",
		map[string]interface{}{"item": item},
		&FaultModel{Item: item, Cost: cost},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("faults", err)
	}
	return id, nil
}

// StatusID 流程状态
func (r *lookupRepository) StatusID(ctx context.Context, flow string) (uint, error) {
	id, err := resolveID(getDB(ctx, r.db), "status",
		map[string]interface{}{"flow": flow},
		&StatusModel{Flow: flow},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("status", err)
	}
	return id, nil
}

// TitleID 职称
func (r *lookupRepository) TitleID(ctx context.Context, name string) (uint, error) {
	id, err := resolveID(getDB(ctx, r.db), "titles",
		map[string]interface{}{"name": name},
		&TitleModel{Name: name},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("titles", err)
	}
	return id, nil
}
