package errors

import "errors"

// ErrNotFound 记录不存在，包括编辑期间已被删除的记录
var ErrNotFound = errors.New("记录不存在")
