package errors

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate 判断是否为唯一键冲突
// 数据库层唯一索引是并发重复写入的唯一裁判：服务层据此把第二个写入者
// 的失败归类为约束冲突（409），而不是内部错误。
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyViolated 判断是否为外键/引用完整性冲突
// 例如删除仍被学生引用的课程（RESTRICT 外键）。
func IsForeignKeyViolated(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
