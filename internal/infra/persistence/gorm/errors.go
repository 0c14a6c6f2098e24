package gormpersistence

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// isDuplicateEntryError 检查是否违反唯一约束。
// MySQL 按错误码判断，其余驱动依赖 TranslateError 或错误信息片段。
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

// containsExpr 返回对 column 做区分大小写子串匹配的 SQL 片段，占位符为子串本身。
// 不使用 LIKE：SQLite 的 LIKE 对 ASCII 不区分大小写，且子串中的 % 和 _ 需要转义。
func containsExpr(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "INSTR(BINARY " + column + ", ?) > 0"
	case "postgres":
		return "STRPOS(" + column + ", ?) > 0"
	default:
		return "INSTR(" + column + ", ?) > 0"
	}
}
