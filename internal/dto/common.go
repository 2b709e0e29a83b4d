package dto

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize 填充分页默认值并限制单页上限
func (q *PageQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
}

// Offset 计算偏移量
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// [自证通过] internal/dto/common.go
