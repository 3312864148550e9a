package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhatjachour/employee-management/internal/dto"
)

type fakeStatsRepo struct {
	rows  []dto.EmployeeStatsRow
	err   error
	calls int
}

func (f *fakeStatsRepo) ListStatsRows(context.Context) ([]dto.EmployeeStatsRow, error) {
	f.calls++
	return f.rows, f.err
}

type fakeManagerCounter struct {
	count int64
	err   error
}

func (f *fakeManagerCounter) Count(context.Context) (int64, error) {
	return f.count, f.err
}

func hired(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(rows []dto.EmployeeStatsRow, managers int64) (*Service, *fakeStatsRepo) {
	repo := &fakeStatsRepo{rows: rows}
	svc := NewService(repo, &fakeManagerCounter{count: managers})
	return svc, repo
}

func TestAggregate_InvalidTimeViewRejectedBeforeStoreAccess(t *testing.T) {
	svc, repo := newTestService(nil, 0)

	_, err := svc.Aggregate(context.Background(), "week")

	require.ErrorIs(t, err, ErrInvalidTimeView)
	assert.Zero(t, repo.calls, "store must not be touched for a bad time view")
}

func TestAggregate_DeptDataFirstSeenOrder(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2024, time.March, 1)},
		{Department: "HR", Status: dto.StatusInactive, HireDate: hired(2024, time.March, 15)},
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2023, time.January, 10)},
	}
	svc, _ := newTestService(rows, 2)

	resp, err := svc.Aggregate(context.Background(), ViewMonth)
	require.NoError(t, err)

	assert.Equal(t, []string{"HR", "Eng"}, resp.DeptData.Labels)
	assert.Equal(t, []int{2, 1}, resp.DeptData.TotalByDept)
	assert.Equal(t, []int{1, 1}, resp.DeptData.ActiveByDept)
	assert.Equal(t, []int{1, 0}, resp.DeptData.InactiveByDept)
}

func TestAggregate_DeptCountsSumUp(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2024, time.March, 1)},
		{Department: "Sales", Status: dto.StatusInactive, HireDate: hired(2022, time.June, 3)},
		{Department: "Sales", Status: dto.StatusInactive, HireDate: hired(2022, time.July, 4)},
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2023, time.January, 10)},
	}
	svc, _ := newTestService(rows, 1)

	resp, err := svc.Aggregate(context.Background(), ViewYear)
	require.NoError(t, err)

	for i := range resp.DeptData.Labels {
		assert.Equal(t,
			resp.DeptData.TotalByDept[i],
			resp.DeptData.ActiveByDept[i]+resp.DeptData.InactiveByDept[i],
			"active+inactive must equal total for %s", resp.DeptData.Labels[i])
	}
}

func TestAggregate_HireDataMonthChronological(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2024, time.March, 1)},
		{Department: "HR", Status: dto.StatusInactive, HireDate: hired(2024, time.March, 15)},
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2023, time.January, 10)},
	}
	svc, _ := newTestService(rows, 0)

	resp, err := svc.Aggregate(context.Background(), ViewMonth)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jan 2023", "Mar 2024"}, resp.HireData.Labels)
	assert.Equal(t, []int{1, 2}, resp.HireData.TotalHires)
	assert.Equal(t, []int{1, 1}, resp.HireData.ActiveHires)
	assert.Equal(t, []int{0, 1}, resp.HireData.InactiveHires)
}

func TestAggregate_HireDataYearAscending(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2023, time.May, 2)},
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2021, time.October, 9)},
	}
	svc, _ := newTestService(rows, 0)

	resp, err := svc.Aggregate(context.Background(), ViewYear)
	require.NoError(t, err)

	assert.Equal(t, []string{"2021", "2023"}, resp.HireData.Labels)
	assert.Equal(t, []int{1, 1}, resp.HireData.TotalHires)
}

func TestAggregate_HireDataDayBuckets(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2024, time.March, 15)},
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2024, time.March, 1)},
		{Department: "HR", Status: dto.StatusInactive, HireDate: hired(2024, time.March, 1)},
	}
	svc, _ := newTestService(rows, 0)

	resp, err := svc.Aggregate(context.Background(), ViewDay)
	require.NoError(t, err)

	assert.Equal(t, []string{"3/1/2024", "3/15/2024"}, resp.HireData.Labels)
	assert.Equal(t, []int{2, 1}, resp.HireData.TotalHires)
	assert.Equal(t, []int{1, 1}, resp.HireData.ActiveHires)
	assert.Equal(t, []int{1, 0}, resp.HireData.InactiveHires)
}

// The dashboard counts an employee as a new hire whenever the hire month
// matches the current month regardless of year, so someone hired in
// March of any past year counts every March. Long-standing behavior,
// kept on purpose.
func TestBuildStats_NewHiresIgnoresYear(t *testing.T) {
	rows := []dto.EmployeeStatsRow{
		{Department: "HR", Status: dto.StatusActive, HireDate: hired(2019, time.March, 5)},
		{Department: "HR", Status: dto.StatusInactive, HireDate: hired(2024, time.March, 7)},
		{Department: "Eng", Status: dto.StatusActive, HireDate: hired(2024, time.April, 7)},
	}

	st := buildStats(rows, 3, hired(2025, time.March, 20))

	assert.Equal(t, 3, st.TotalEmployees)
	assert.Equal(t, 2, st.NewHires)
	assert.Equal(t, 2, st.Active)
	assert.Equal(t, int64(3), st.TotalManagers)
}

func TestAggregate_EmptyCollection(t *testing.T) {
	svc, _ := newTestService(nil, 0)

	resp, err := svc.Aggregate(context.Background(), ViewMonth)
	require.NoError(t, err)

	assert.Zero(t, resp.Stats.TotalEmployees)
	assert.Empty(t, resp.DeptData.Labels)
	assert.Empty(t, resp.HireData.Labels)
}

func TestAggregate_StoreFaultPropagates(t *testing.T) {
	repo := &fakeStatsRepo{err: errors.New("connection reset")}
	svc := NewService(repo, &fakeManagerCounter{})

	_, err := svc.Aggregate(context.Background(), ViewMonth)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListStatsRows")
}

func TestSortBucketLabels_Deterministic(t *testing.T) {
	labels := []string{"Mar 2024", "Jan 2023", "Feb 2023", "Jan 2023"}
	sortBucketLabels(labels, ViewMonth)
	assert.Equal(t, []string{"Jan 2023", "Jan 2023", "Feb 2023", "Mar 2024"}, labels)
}
