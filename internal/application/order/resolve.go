package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/lookup"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// TxManager 事务端口，由mysql.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Input 工单写入内容
// 参照字段都是可读字符串(门市代码、员工账号、故障描述等)，由referenceResolver换成ID。
// nil表示未提供：创建时保持零值，更新时沿用原值。
type Input struct {
	Department      *string
	Contact         *string
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string

	Brand      *string
	Model      *string
	PurchaseAt *time.Time

	Accessory1      *string
	Accessory2      *string
	AccessoryOther  *string
	Appearance      *order.Appearance
	AppearanceOther *string
	Service         *string
	Fault1          *string
	Fault2          *string
	FaultOther      *string
	PhotoURL        *string
	Remark          *string
	Cost            *int64
	PrepaidFree     *int64

	Status     *string
	Servicer   *string
	Maintainer *string
}

// validateCreate 新工单的必填项(customer_phone与status由order.NewOrder检查)
func (in Input) validateCreate() error {
	switch {
	case in.Department == nil:
		return apperrors.BadRequestf("department不能为空")
	case in.Brand == nil:
		return apperrors.BadRequestf("brand不能为空")
	case in.Appearance == nil:
		return apperrors.BadRequestf("appearance不能为空")
	case in.CustomerPhone == nil:
		return order.ErrCustomerPhoneRequired
	case in.Status == nil:
		return order.ErrStatusRequired
	}
	return nil
}

// referenceResolver 把Input中的可读参照解析为order.Patch
// 1. 员工账号严格匹配，不存在时报错(不会自动建立员工)
// 2. 门市代码严格匹配，门市必须事先建立
// 3. 机型、配件、故障、状态不存在时建立
// 解析在事务之外进行，新建的参照行即使后续写入失败也会保留。
type referenceResolver struct {
	lookups     lookup.Resolver
	departments department.Repository
	users       user.Repository
}

// resolve prior为nil表示开单；更新时传入原工单，用于补齐只提供一半的(品牌, 型号)
func (r *referenceResolver) resolve(ctx context.Context, in Input, prior *order.Order) (order.Patch, error) {
	p := order.Patch{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		PurchaseAt:      in.PurchaseAt,
		AccessoryOther:  in.AccessoryOther,
		Appearance:      in.Appearance,
		AppearanceOther: in.AppearanceOther,
		Service:         in.Service,
		FaultOther:      in.FaultOther,
		PhotoURL:        in.PhotoURL,
		Remark:          in.Remark,
		Cost:            in.Cost,
		PrepaidFree:     in.PrepaidFree,
	}

	var err error

	// 员工
	if p.ContactID, err = r.staff(ctx, "contact", in.Contact); err != nil {
		return p, err
	}
	if p.ServicerID, err = r.staff(ctx, "servicer", in.Servicer); err != nil {
		return p, err
	}
	if p.MaintainerID, err = r.staff(ctx, "maintainer", in.Maintainer); err != nil {
		return p, err
	}

	// 门市
	if in.Department != nil {
		shorten, err := natural("department", *in.Department)
		if err != nil {
			return p, err
		}
		id, err := r.departments.FindIDByShorten(ctx, shorten)
		if err != nil {
			return p, err
		}
		p.DepartmentID = &id
	}

	// 机型
	if in.Brand != nil || in.Model != nil {
		id, err := r.model(ctx, in, prior)
		if err != nil {
			return p, err
		}
		p.ModelID = &id
	}

	if p.AccessoryID1, err = r.lookupID(ctx, "accessory1", in.Accessory1, r.accessory); err != nil {
		return p, err
	}
	if p.AccessoryID2, err = r.lookupID(ctx, "accessory2", in.Accessory2, r.accessory); err != nil {
		return p, err
	}
	if p.FaultID1, err = r.lookupID(ctx, "fault1", in.Fault1, r.fault); err != nil {
		return p, err
	}
	if p.FaultID2, err = r.lookupID(ctx, "fault2", in.Fault2, r.fault); err != nil {
		return p, err
	}
	if p.StatusID, err = r.lookupID(ctx, "status", in.Status, r.lookups.StatusID); err != nil {
		return p, err
	}

	return p, nil
}

// model 品牌与型号是一组自然键
// 更新时只提供其中一个，另一个沿用原工单的机型；开单未填型号时为lookup.DefaultModel
func (r *referenceResolver) model(ctx context.Context, in Input, prior *order.Order) (uint, error) {
	var brand, model string
	if prior != nil && prior.ModelID != nil {
		b, m, err := r.lookups.Model(ctx, *prior.ModelID)
		switch {
		case err == nil:
			brand, model = b, m
		case !errors.Is(err, lookup.ErrNotFound):
			return 0, err
		}
	}

	if in.Brand != nil {
		v, err := natural("brand", *in.Brand)
		if err != nil {
			return 0, err
		}
		brand = v
	}
	if in.Model != nil {
		model = strings.TrimSpace(*in.Model)
	}
	if brand == "" {
		return 0, apperrors.BadRequestf("工单没有品牌，修改model时必须同时提供brand")
	}
	return r.lookups.ModelID(ctx, brand, model)
}

func (r *referenceResolver) accessory(ctx context.Context, item string) (uint, error) {
	return r.lookups.AccessoryID(ctx, item, 0)
}

func (r *referenceResolver) fault(ctx context.Context, item string) (uint, error) {
	return r.lookups.FaultID(ctx, item, 0)
}

func (r *referenceResolver) lookupID(
	ctx context.Context,
	field string,
	value *string,
	resolve func(ctx context.Context, key string) (uint, error),
) (*uint, error) {
	if value == nil {
		return nil, nil
	}
	key, err := natural(field, *value)
	if err != nil {
		return nil, err
	}
	id, err := resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// staff 按账号查找员工，不存在时返回指明字段的400
func (r *referenceResolver) staff(ctx context.Context, field string, account *string) (*uint, error) {
	if account == nil {
		return nil, nil
	}
	key, err := natural(field, *account)
	if err != nil {
		return nil, err
	}
	u, err := r.users.FindByAccount(ctx, key)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperrors.BadRequestf("%s账号不存在: %s", field, key)
		}
		return nil, err
	}
	return &u.ID, nil
}

// natural 自然键去除首尾空白，空串视为调用方错误
func natural(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperrors.BadRequestf("%s不能为空", field)
	}
	return v, nil
}
