package user

import (
	"time"
)

// User 员工
// 设计说明：
// 1. Account是登录账号，也是工单中引用人员时使用的自然键(联络人、维修人员、工程师)
// 2. Password存储bcrypt哈希值，不存明文
// 3. 门市与职称是可空的参照ID
// 4. Permission决定能否管理其他员工(见CanManage)
type User struct {
	ID           uint
	Account      string
	Password     string // bcrypt哈希值
	Username     string
	Phone        string
	Email        string
	DepartmentID *uint
	TitleID      *uint
	Permission   Permission
	CreatedAt    time.Time
	LoginAt      *time.Time
}

// NewUser 创建员工(工厂方法)
func NewUser(account, hashedPassword, username string) *User {
	return &User{
		Account:   account,
		Password:  hashedPassword,
		Username:  username,
		CreatedAt: time.Now(),
	}
}

// MarkLogin 记录登录时间
func (u *User) MarkLogin(t time.Time) {
	u.LoginAt = &t
}

// Profile 员工资料投影(门市、职称换成可读标签)
type Profile struct {
	ID         uint
	Account    string
	Username   string
	Phone      string
	Email      string
	Department string // 门市代码
	Title      string
	Permission Permission
	CreatedAt  time.Time
	LoginAt    *time.Time
}

// ListFilter 员工列表筛选条件，全部精确匹配
type ListFilter struct {
	Department string
	Username   string
	Title      string
	Email      string
	Phone      string
}
