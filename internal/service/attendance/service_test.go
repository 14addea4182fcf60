package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/master/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordKey struct {
	employeeID string
	date       time.Time
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[recordKey]attendance.AttendanceRecord
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[recordKey]attendance.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) GetOrCreateForUpdate(_ context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := recordKey{employeeID, date}
	rec, ok := f.records[key]
	if !ok {
		f.nextID++
		rec = attendance.AttendanceRecord{ID: fmt.Sprintf("rec-%d", f.nextID), EmployeeID: employeeID, Date: date}
		f.records[key] = rec
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) UpdatePunches(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[recordKey{rec.EmployeeID, rec.Date}] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []attendance.AttendanceRecord
	r := attendance.DateRange{From: from, To: to}
	for k, rec := range f.records {
		if k.employeeID == employeeID && r.Contains(k.date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	dates map[time.Time]bool
}

func (f fakeHolidayRepo) ExistsOnDate(_ context.Context, date time.Time) (bool, error) {
	return f.dates[date], nil
}

func (f fakeHolidayRepo) ListBetween(context.Context, time.Time, time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

var manila = time.FixedZone("PHT", 8*60*60)

func newTestService(repo *fakeAttendanceRepo, holidays map[time.Time]bool, clock *time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		tx:             passthroughTx{},
		attendanceRepo: repo,
		holidayRepo:    fakeHolidayRepo{dates: holidays},
		guard:          auth.DefaultGuard(),
		loc:            manila,
		now:            func() time.Time { return *clock },
	}
}

var employeePrincipal = auth.Principal{UserID: "u-1", EmployeeID: "e-1", Role: auth.RoleEmployee}

func TestRecordPunch_InThenOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clock := time.Date(2024, time.March, 4, 8, 0, 0, 0, manila)
	svc := newTestService(repo, nil, &clock)
	ctx := context.Background()

	resp, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
	require.NotNil(t, resp.TimeIn)
	assert.Equal(t, "08:00 AM", *resp.TimeIn)
	assert.Nil(t, resp.TotalHours)

	clock = time.Date(2024, time.March, 4, 17, 30, 0, 0, manila)
	resp, err = svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_out"})
	require.NoError(t, err)
	require.NotNil(t, resp.TotalHours)
	assert.True(t, decimal.RequireFromString("9.5").Equal(*resp.TotalHours))
}

func TestRecordPunch_Rules(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, time.March, 4, 8, 0, 0, 0, manila)

	t.Run("time out before time in", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), nil, &clock)
		_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_out"})
		assert.ErrorIs(t, err, attendance.ErrNotTimedIn)
	})

	t.Run("double time in", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), nil, &clock)
		_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
		require.NoError(t, err)
		_, err = svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
		assert.ErrorIs(t, err, attendance.ErrAlreadyTimedIn)
	})

	t.Run("double time out", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), nil, &clock)
		for _, kind := range []string{"time_in", "time_out"} {
			_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: kind})
			require.NoError(t, err)
		}
		_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_out"})
		assert.ErrorIs(t, err, attendance.ErrAlreadyTimedOut)
	})

	t.Run("holiday", func(t *testing.T) {
		holidays := map[time.Time]bool{time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC): true}
		svc := newTestService(newFakeAttendanceRepo(), holidays, &clock)
		_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
		assert.ErrorIs(t, err, attendance.ErrHolidayPunch)
	})

	t.Run("invalid kind", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), nil, &clock)
		_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "lunch"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("no employee linked", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo(), nil, &clock)
		_, err := svc.RecordPunch(ctx, auth.Principal{UserID: "u-2", Role: auth.RoleEmployee}, attendance.RecordPunchRequest{Kind: "time_in"})
		assert.ErrorIs(t, err, auth.ErrNoEmployeeLinked)
	})
}

func TestRecordPunch_DateUsesConfiguredZone(t *testing.T) {
	repo := newFakeAttendanceRepo()
	// 17:00 UTC on the 3rd is 01:00 on the 4th in UTC+8.
	clock := time.Date(2024, time.March, 3, 17, 0, 0, 0, time.UTC)
	svc := newTestService(repo, nil, &clock)

	resp, err := svc.RecordPunch(context.Background(), employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
}

func TestListMine(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clock := time.Date(2024, time.March, 4, 8, 0, 0, 0, manila)
	svc := newTestService(repo, nil, &clock)
	ctx := context.Background()

	_, err := svc.RecordPunch(ctx, employeePrincipal, attendance.RecordPunchRequest{Kind: "time_in"})
	require.NoError(t, err)

	list, err := svc.ListMine(ctx, employeePrincipal, attendance.ListMyAttendanceRequest{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListMine(ctx, employeePrincipal, attendance.ListMyAttendanceRequest{From: "2024-03-31", To: "2024-03-01"})
	assert.Error(t, err)
}
