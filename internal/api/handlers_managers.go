package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/medhatjachour/employee-management/internal/dto"
)

// @Summary List all managers
// @Tags    Managers
// @Produce json
// @Success 200 {array} dto.Manager
// @Failure 500 {object} errorResponse "store fault"
// @Router  /managers [get]
func (s *Service) listManagers(ctx *fasthttp.RequestCtx) {
	rows, err := s.managers.List(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("managerRepository.List: %w", err))
		return
	}

	if rows == nil {
		rows = []dto.Manager{}
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Create a manager
// @Tags    Managers
// @Accept  json
// @Produce json
// @Param   request body managerRequest true "Manager fields"
// @Success 201 {object} dto.Manager
// @Failure 400 {object} errorResponse "validation error"
// @Failure 409 {object} errorResponse "manager ID or email already exists"
// @Failure 500 {object} errorResponse "store fault"
// @Router  /managers [post]
func (s *Service) createManager(ctx *fasthttp.RequestCtx) {
	var req managerRequest

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	m, msg := validateManagerRequest(req)
	if msg != "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New(msg))
		return
	}

	// Explicit pre-check so the caller gets a readable conflict message
	// instead of a raw constraint violation.
	exists, err := s.managers.ExistsByKeyOrEmail(ctx, m.ManagerID, m.Email)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("managerRepository.ExistsByKeyOrEmail: %w", err))
		return
	}
	if exists {
		writeError(ctx, fasthttp.StatusConflict, ErrManagerExists)
		return
	}

	created, err := s.managers.Create(ctx, m)
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			writeError(ctx, fasthttp.StatusConflict, ErrManagerExists)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("managerRepository.Create: %w", err))
		return
	}

	s.publishManager(ctx, "manager.created", *created)

	writeJSON(ctx, fasthttp.StatusCreated, created)
}
