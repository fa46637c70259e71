package services

import (
	"context"
	"sync"
	"time"

	"github.com/troop900/treelot/pkg/core/model"
)

// fakeStore is an in-memory store shared by the service tests. The signup
// primitives take a mutex around their check-and-increment, mirroring the
// serializability the real store provides, so the race tests are meaningful.
type fakeStore struct {
	mu sync.Mutex

	shifts      map[string]*model.Shift
	assignments map[string]*model.Assignment
	attendance  map[string]*model.AttendanceRecord
	templates   map[string]*model.ShiftTemplate
	seasons     map[string]*model.Season
	users       map[string]*model.User

	createdShifts []model.Shift

	getShiftErr         error
	getUserErr          error
	createShiftsErr     error
	updateAttendanceErr error
	publishSeasonErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shifts:      make(map[string]*model.Shift),
		assignments: make(map[string]*model.Assignment),
		attendance:  make(map[string]*model.AttendanceRecord),
		templates:   make(map[string]*model.ShiftTemplate),
		seasons:     make(map[string]*model.Season),
		users:       make(map[string]*model.User),
	}
}

func (f *fakeStore) addShift(s model.Shift) *model.Shift {
	f.shifts[s.ID] = &s
	return &s
}

func (f *fakeStore) addUser(u model.User) { f.users[u.ID] = &u }

func (f *fakeStore) addAssignment(a model.Assignment) { f.assignments[a.ID] = &a }

func (f *fakeStore) addAttendance(r model.AttendanceRecord) { f.attendance[r.ID] = &r }

func (f *fakeStore) addTemplate(t model.ShiftTemplate) { f.templates[t.ID] = &t }

func (f *fakeStore) addSeason(s model.Season) { f.seasons[s.ID] = &s }

func (f *fakeStore) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	if f.getShiftErr != nil {
		return nil, f.getShiftErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shifts[id]
	if !ok {
		return nil, model.ErrShiftNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) GetShiftsForSeason(ctx context.Context, seasonID string) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range f.shifts {
		if s.SeasonID == seasonID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetShiftsForDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range f.shifts {
		if !s.Date.Before(start) && !s.Date.After(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateShift(ctx context.Context, shift *model.Shift) error {
	copied := *shift
	f.shifts[shift.ID] = &copied
	return nil
}

func (f *fakeStore) CreateShifts(ctx context.Context, shifts []model.Shift) error {
	if f.createShiftsErr != nil {
		return f.createShiftsErr
	}
	f.createdShifts = append(f.createdShifts, shifts...)
	for i := range shifts {
		copied := shifts[i]
		f.shifts[copied.ID] = &copied
	}
	return nil
}

func (f *fakeStore) UpdateShiftStatus(ctx context.Context, id string, status model.ShiftStatus) error {
	s, ok := f.shifts[id]
	if !ok {
		return model.ErrShiftNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeStore) GetAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, model.ErrAssignmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) GetAssignmentsForShift(ctx context.Context, shiftID string) ([]model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.ShiftID == shiftID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAssignmentsForUser(ctx context.Context, userID string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateAssignmentClaimingSlot(ctx context.Context, assignment *model.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	shift, ok := f.shifts[assignment.ShiftID]
	if !ok {
		return model.ErrShiftNotFound
	}
	for _, a := range f.assignments {
		if a.ShiftID == assignment.ShiftID && a.UserID == assignment.UserID && a.IsActive() {
			return model.ErrAlreadyAssigned
		}
	}
	switch assignment.Type {
	case model.TypeScout:
		if shift.CurrentScouts >= shift.RequiredScouts {
			return model.ErrShiftFull
		}
		shift.CurrentScouts++
	case model.TypeParent:
		if shift.CurrentParents >= shift.RequiredParents {
			return model.ErrShiftFull
		}
		shift.CurrentParents++
	}
	copied := *assignment
	f.assignments[assignment.ID] = &copied
	return nil
}

func (f *fakeStore) CreateWalkInAssignment(ctx context.Context, assignment *model.Assignment, record *model.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	shift, ok := f.shifts[assignment.ShiftID]
	if !ok {
		return model.ErrShiftNotFound
	}
	for _, a := range f.assignments {
		if a.ShiftID == assignment.ShiftID && a.UserID == assignment.UserID && a.IsActive() {
			return model.ErrAlreadyAssigned
		}
	}
	if assignment.Type == model.TypeScout {
		shift.CurrentScouts++
	} else {
		shift.CurrentParents++
	}
	copiedA := *assignment
	f.assignments[assignment.ID] = &copiedA
	copiedR := *record
	f.attendance[record.ID] = &copiedR
	return nil
}

func (f *fakeStore) CancelAssignmentReleasingSlot(ctx context.Context, assignmentID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.assignments[assignmentID]
	if !ok {
		return model.ErrAssignmentNotFound
	}
	if !a.IsActive() {
		return model.ErrAssignmentNotActive
	}
	a.Status = model.AssignmentCancelled
	if reason != "" {
		a.Notes = reason
	}
	if shift, ok := f.shifts[a.ShiftID]; ok {
		if a.Type == model.TypeScout {
			shift.CurrentScouts--
		} else {
			shift.CurrentParents--
		}
	}
	return nil
}

func (f *fakeStore) GetAttendanceRecord(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	r, ok := f.attendance[id]
	if !ok {
		return nil, model.ErrAttendanceNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeStore) GetAttendanceByAssignment(ctx context.Context, assignmentID string) (*model.AttendanceRecord, error) {
	for _, r := range f.attendance {
		if r.AssignmentID == assignmentID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, model.ErrAttendanceNotFound
}

func (f *fakeStore) GetAttendanceForShift(ctx context.Context, shiftID string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, r := range f.attendance {
		if r.ShiftID == shiftID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error {
	copied := *record
	f.attendance[record.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error {
	if f.updateAttendanceErr != nil {
		return f.updateAttendanceErr
	}
	copied := *record
	f.attendance[record.ID] = &copied
	return nil
}

func (f *fakeStore) GetTemplate(ctx context.Context, id string) (*model.ShiftTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, model.ErrTemplateNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) ListTemplates(ctx context.Context) ([]model.ShiftTemplate, error) {
	var out []model.ShiftTemplate
	for _, t := range f.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) CreateTemplate(ctx context.Context, template *model.ShiftTemplate) error {
	copied := *template
	f.templates[template.ID] = &copied
	return nil
}

func (f *fakeStore) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	s, ok := f.seasons[id]
	if !ok {
		return nil, model.ErrSeasonNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) CreateSeason(ctx context.Context, season *model.Season) error {
	copied := *season
	f.seasons[season.ID] = &copied
	return nil
}

// PublishDraftShiftsForSeason mutates nothing on failure, mirroring the real
// store's single-transaction publish.
func (f *fakeStore) PublishDraftShiftsForSeason(ctx context.Context, seasonID string) (int, bool, error) {
	if f.publishSeasonErr != nil {
		return 0, false, f.publishSeasonErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	published := 0
	for _, s := range f.shifts {
		if s.SeasonID == seasonID && s.Status == model.ShiftDraft {
			s.Status = model.ShiftPublished
			published++
		}
	}
	if published == 0 {
		return 0, false, model.ErrNoDraftShifts
	}
	activated := false
	if season, ok := f.seasons[seasonID]; ok && season.Status != model.SeasonActive {
		season.Status = model.SeasonActive
		activated = true
	}
	return published, activated, nil
}

func (f *fakeStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}
