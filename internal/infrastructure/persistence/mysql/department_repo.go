package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/lookup"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建门市仓储
func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &departmentRepository{db: db}
}

// FindIDByShorten 严格查询
func (r *departmentRepository) FindIDByShorten(ctx context.Context, shorten string) (uint, error) {
	id, ok, err := findID(getDB(ctx, r.db), "departments", map[string]interface{}{"shorten": shorten})
	if err != nil {
		return 0, apperrors.Wrap(err, "查询门市失败")
	}
	if !ok {
		return 0, department.NotFound(shorten)
	}
	return id, nil
}

// ResolveOrCreate 不存在时以代码建立门市，其余字段留空
func (r *departmentRepository) ResolveOrCreate(ctx context.Context, shorten string) (uint, error) {
	id, err := resolveID(getDB(ctx, r.db), "departments",
		map[string]interface{}{"shorten": shorten},
		&DepartmentModel{Shorten: shorten},
	)
	if err != nil {
		return 0, lookup.ResolutionFailed("departments", err)
	}
	return id, nil
}

// ShortenByID 序号前缀
func (r *departmentRepository) ShortenByID(ctx context.Context, id uint) (string, error) {
	var model DepartmentModel
	err := getDB(ctx, r.db).Select("shorten").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e := apperrors.NotFoundf("门市不存在: %d", id)
			e.Err = department.ErrNotFound
			return "", e
		}
		return "", apperrors.Wrap(err, "查询门市失败")
	}
	return model.Shorten, nil
}

// FindByShorten 完整资料
func (r *departmentRepository) FindByShorten(ctx context.Context, shorten string) (*department.Department, error) {
	var model DepartmentModel
	err := getDB(ctx, r.db).Where("shorten = ?", shorten).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.NotFound(shorten)
		}
		return nil, apperrors.Wrap(err, "查询门市失败")
	}
	return toDepartmentEntity(&model), nil
}

// List 门市列表
func (r *departmentRepository) List(ctx context.Context, filter department.ListFilter, offset, entries int) ([]*department.Department, error) {
	if entries == 0 {
		return []*department.Department{}, nil
	}

	query := getDB(ctx, r.db).Model(&DepartmentModel{})
	if filter.Shorten != "" {
		query = query.Where("shorten = ?", filter.Shorten)
	}
	if filter.StoreName != "" {
		query = query.Where("store_name = ?", filter.StoreName)
	}
	if filter.Owner != "" {
		query = query.Where("owner = ?", filter.Owner)
	}
	if filter.Telephone != "" {
		query = query.Where("telephone = ?", filter.Telephone)
	}

	var models []DepartmentModel
	if err := query.Order("id ASC").Offset(offset).Limit(entries).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询门市列表失败")
	}

	list := make([]*department.Department, len(models))
	for i := range models {
		list[i] = toDepartmentEntity(&models[i])
	}
	return list, nil
}

// Create 建立门市
func (r *departmentRepository) Create(ctx context.Context, d *department.Department) error {
	model := &DepartmentModel{
		Shorten:   d.Shorten,
		StoreName: d.StoreName,
		Owner:     d.Owner,
		Telephone: d.Telephone,
		Address:   d.Address,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return department.ErrShortenDuplicate
		}
		return apperrors.Wrap(err, "建立门市失败")
	}

	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	d.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 代码不可改
// MySQL内容未变时RowsAffected为0，所以不用它判断是否存在，由调用方先查询
func (r *departmentRepository) Update(ctx context.Context, d *department.Department) error {
	result := getDB(ctx, r.db).Model(&DepartmentModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"store_name": d.StoreName,
			"owner":      d.Owner,
			"telephone":  d.Telephone,
			"address":    d.Address,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新门市失败")
	}
	return nil
}

// Delete 删除门市，引用检查由调用方负责
func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&DepartmentModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除门市失败")
	}
	if result.RowsAffected == 0 {
		e := apperrors.NotFoundf("门市不存在: %d", id)
		e.Err = department.ErrNotFound
		return e
	}
	return nil
}

func toDepartmentEntity(model *DepartmentModel) *department.Department {
	return &department.Department{
		ID:        model.ID,
		Shorten:   model.Shorten,
		StoreName: model.StoreName,
		Owner:     model.Owner,
		Telephone: model.Telephone,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
