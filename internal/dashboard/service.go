// Package dashboard derives the HR dashboard payload (summary stats,
// per-department breakdowns and hire-trend buckets) from the full
// employee collection.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/medhatjachour/employee-management/internal/dto"
)

// Supported time views for the hire-trend chart.
const (
	ViewDay   = "day"
	ViewMonth = "month"
	ViewYear  = "year"
)

var ErrInvalidTimeView = errors.New(`invalid timeView parameter, use "day", "month" or "year"`)

type StatsRepository interface {
	ListStatsRows(ctx context.Context) ([]dto.EmployeeStatsRow, error)
}

type ManagerCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Stats struct {
	TotalEmployees int   `json:"totalEmployees"`
	NewHires       int   `json:"newHires"`
	Active         int   `json:"active"`
	TotalManagers  int64 `json:"totalManagers"`
}

type DeptData struct {
	Labels         []string `json:"labels"`
	TotalByDept    []int    `json:"totalByDept"`
	ActiveByDept   []int    `json:"activeByDept"`
	InactiveByDept []int    `json:"inactiveByDept"`
}

type HireData struct {
	Labels        []string `json:"labels"`
	TotalHires    []int    `json:"totalHires"`
	ActiveHires   []int    `json:"activeHires"`
	InactiveHires []int    `json:"inactiveHires"`
}

type Response struct {
	Stats    Stats    `json:"stats"`
	DeptData DeptData `json:"deptData"`
	HireData HireData `json:"hireData"`
}

type Service struct {
	employees StatsRepository
	managers  ManagerCounter
	now       func() time.Time
}

func NewService(employees StatsRepository, managers ManagerCounter) *Service {
	return &Service{
		employees: employees,
		managers:  managers,
		now:       time.Now,
	}
}

// Aggregate computes the dashboard payload for the given time view.
// The view is validated before any store access; the employee read is a
// full-collection scan.
func (s *Service) Aggregate(ctx context.Context, timeView string) (*Response, error) {
	switch timeView {
	case ViewDay, ViewMonth, ViewYear:
	default:
		return nil, ErrInvalidTimeView
	}

	rows, err := s.employees.ListStatsRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("employees.ListStatsRows: %w", err)
	}

	totalManagers, err := s.managers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("managers.Count: %w", err)
	}

	return &Response{
		Stats:    buildStats(rows, totalManagers, s.now()),
		DeptData: buildDeptData(rows),
		HireData: buildHireData(rows, timeView),
	}, nil
}

// buildStats counts totals and the "new hires" figure. New hires are
// employees whose hire month matches the current calendar month; the
// year is intentionally not compared, matching the dashboard's
// long-standing behavior.
func buildStats(rows []dto.EmployeeStatsRow, totalManagers int64, now time.Time) Stats {
	st := Stats{
		TotalEmployees: len(rows),
		TotalManagers:  totalManagers,
	}

	for _, row := range rows {
		if row.HireDate.Month() == now.Month() {
			st.NewHires++
		}
		if row.Status == dto.StatusActive {
			st.Active++
		}
	}

	return st
}

// buildDeptData groups employees by department. Label order is the
// order departments are first seen in the collection.
func buildDeptData(rows []dto.EmployeeStatsRow) DeptData {
	counts := newBucketCounts()
	for _, row := range rows {
		counts.add(row.Department, row.Status)
	}

	return DeptData{
		Labels:         counts.labels,
		TotalByDept:    counts.series(counts.total),
		ActiveByDept:   counts.series(counts.active),
		InactiveByDept: counts.series(counts.inactive),
	}
}

// buildHireData groups employees into time buckets derived from the
// hire date and orders the buckets chronologically.
func buildHireData(rows []dto.EmployeeStatsRow, timeView string) HireData {
	counts := newBucketCounts()
	for _, row := range rows {
		counts.add(bucketLabel(row.HireDate, timeView), row.Status)
	}

	sortBucketLabels(counts.labels, timeView)

	return HireData{
		Labels:        counts.labels,
		TotalHires:    counts.series(counts.total),
		ActiveHires:   counts.series(counts.active),
		InactiveHires: counts.series(counts.inactive),
	}
}

func bucketLabel(hireDate time.Time, timeView string) string {
	switch timeView {
	case ViewMonth:
		return hireDate.Format("Jan 2006")
	case ViewYear:
		return hireDate.Format("2006")
	default:
		return hireDate.Format("1/2/2006")
	}
}

// sortBucketLabels orders labels ascending: numerically for years,
// chronologically for days and months by parsing the label back to a
// date. Ties fall back to label comparison so the order is stable for
// a fixed input set.
func sortBucketLabels(labels []string, timeView string) {
	if timeView == ViewYear {
		sort.Slice(labels, func(i, j int) bool {
			a, _ := strconv.Atoi(labels[i])
			b, _ := strconv.Atoi(labels[j])
			return a < b
		})
		return
	}

	layout := "1/2/2006"
	if timeView == ViewMonth {
		layout = "Jan 2006"
	}

	sort.SliceStable(labels, func(i, j int) bool {
		a, aerr := time.Parse(layout, labels[i])
		b, berr := time.Parse(layout, labels[j])
		if aerr != nil || berr != nil || a.Equal(b) {
			return labels[i] < labels[j]
		}
		return a.Before(b)
	})
}

// bucketCounts accumulates total/active/inactive counters per label,
// remembering first-seen label order.
type bucketCounts struct {
	labels   []string
	total    map[string]int
	active   map[string]int
	inactive map[string]int
}

func newBucketCounts() *bucketCounts {
	return &bucketCounts{
		total:    make(map[string]int),
		active:   make(map[string]int),
		inactive: make(map[string]int),
	}
}

func (b *bucketCounts) add(label, status string) {
	if _, seen := b.total[label]; !seen {
		b.labels = append(b.labels, label)
	}

	b.total[label]++
	if status == dto.StatusActive {
		b.active[label]++
	} else {
		b.inactive[label]++
	}
}

// series resolves one counter map into a slice aligned with labels;
// labels with no hits report 0, never an omission.
func (b *bucketCounts) series(m map[string]int) []int {
	out := make([]int, len(b.labels))
	for i, label := range b.labels {
		out[i] = m[label]
	}
	return out
}
