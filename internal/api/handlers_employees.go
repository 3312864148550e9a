package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/medhatjachour/employee-management/internal/dto"
)

type employeeListResponse struct {
	Employees []dto.Employee `json:"employees"`
	Total     int64          `json:"total"`
	Pages     int64          `json:"pages"`
}

// @Summary Paginated employee listing with filters
// @Tags    Employees
// @Produce json
// @Param   page       query int    false "Page number (1-based)"
// @Param   limit      query int    false "Page size"
// @Param   search     query string false "Matches full name, employee id or job title"
// @Param   department query string false "Exact department filter"
// @Param   status     query string false "ACTIVE or INACTIVE, case-insensitive"
// @Param   managerId  query int    false "Supervising manager id"
// @Success 200 {object} employeeListResponse
// @Failure 400 {object} errorResponse "validation error"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /employees [get]
func (s *Service) listEmployees(ctx *fasthttp.RequestCtx) {
	filter, msg := parseListFilter(ctx.QueryArgs())
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}

	items, err := s.employees.List(ctx, filter)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.List: %w", err))
		return
	}

	total, err := s.employees.Count(ctx, filter)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Count: %w", err))
		return
	}

	if items == nil {
		items = []dto.Employee{}
	}

	writeJSON(ctx, fasthttp.StatusOK, employeeListResponse{
		Employees: items,
		Total:     total,
		Pages:     pageCount(total, int64(filter.Limit)),
	})
}

// @Summary Get a single employee with relations
// @Tags    Employees
// @Produce json
// @Param   id path int true "Employee id"
// @Success 200 {object} dto.Employee
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /employees/{id} [get]
func (s *Service) getEmployee(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.GetByID: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, emp)
}

// @Summary Create an employee
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   request body employeeRequest true "Employee fields"
// @Success 201 {object} dto.Employee
// @Failure 400 {object} errorResponse "validation error"
// @Failure 409 {object} errorResponse "duplicate employeeId or email"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /employees [post]
func (s *Service) createEmployee(ctx *fasthttp.RequestCtx) {
	var req employeeRequest

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	emp, msg := employeeFromRequest(req)
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}

	addedBy, msg := parseRef(req.AddedByID, "addedById")
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}
	if addedBy == nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrMissingFields)
		return
	}

	// The creator is also the initial updater.
	emp.AddedByID = addedBy
	emp.UpdatedByID = addedBy

	created, err := s.employees.Create(ctx, emp)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrAlreadyExists):
			writeError(ctx, fasthttp.StatusConflict, err)
		case errors.Is(err, dto.ErrInvalidReference):
			writeError(ctx, fasthttp.StatusBadRequest, err)
		default:
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Create: %w", err))
		}
		return
	}

	s.publishEmployee(ctx, "employee.created", *created)

	writeJSON(ctx, fasthttp.StatusCreated, created)
}

// @Summary Update an employee (full replace of mutable fields)
// @Tags    Employees
// @Accept  json
// @Produce json
// @Param   id      path int             true "Employee id"
// @Param   request body employeeRequest true "Employee fields"
// @Success 200 {object} dto.Employee
// @Failure 400 {object} errorResponse "validation error"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 409 {object} errorResponse "duplicate employeeId or email"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /employees/{id} [put]
func (s *Service) updateEmployee(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	var req employeeRequest

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	emp, msg := employeeFromRequest(req)
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}

	updatedBy, msg := parseRef(req.UpdatedByID, "updatedById")
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}
	if updatedBy == nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrMissingFields)
		return
	}

	emp.ID = id
	emp.UpdatedByID = updatedBy

	updated, err := s.employees.Update(ctx, emp)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrNotFound):
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
		case errors.Is(err, dto.ErrAlreadyExists):
			writeError(ctx, fasthttp.StatusConflict, err)
		case errors.Is(err, dto.ErrInvalidReference):
			writeError(ctx, fasthttp.StatusBadRequest, err)
		default:
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Update: %w", err))
		}
		return
	}

	s.publishEmployee(ctx, "employee.updated", *updated)

	writeJSON(ctx, fasthttp.StatusOK, updated)
}

// @Summary Delete an employee (hard delete)
// @Tags    Employees
// @Produce json
// @Param   id path int true "Employee id"
// @Success 204 "deleted"
// @Failure 404 {object} errorResponse "employee not found"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /employees/{id} [delete]
func (s *Service) deleteEmployee(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrEmployeeNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employeeRepository.Delete: %w", err))
		return
	}

	s.publishEmployee(ctx, "employee.deleted", dto.Employee{ID: id})

	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func pathID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrEmployeeIDInvalid
	}

	return id, nil
}

func pageCount(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
