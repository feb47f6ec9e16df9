package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/caseworks/user-portal/internal/domain/grid"
	apperrors "github.com/caseworks/user-portal/internal/errors"
	"github.com/caseworks/user-portal/internal/ports"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Directory ports.UserDirectory
	Logger    *slog.Logger // Optional
}

// AdminService owns one grid.Workflow per admin session. The workflow holds
// the fetched row list and the edit/confirm state between requests; mounting
// the admin page again replaces it with a fresh fetch.
type AdminService struct {
	directory ports.UserDirectory
	logger    *slog.Logger

	mu    sync.Mutex
	grids map[string]*grid.Workflow
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	return &AdminService{
		directory: opts.Directory,
		logger:    opts.Logger,
		grids:     make(map[string]*grid.Workflow),
	}
}

// Mount fetches the full user list and installs a fresh workflow for the
// session, discarding any previous one along with its edit state.
func (s *AdminService) Mount(ctx context.Context, sessionID string) (*grid.Workflow, error) {
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	w := grid.New(users)

	s.mu.Lock()
	s.grids[sessionID] = w
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.DebugContext(ctx, "admin table mounted", "rows", len(users))
	}
	return w, nil
}

// Grid returns the session's current workflow, if the admin page is mounted.
func (s *AdminService) Grid(sessionID string) (*grid.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.grids[sessionID]
	return w, ok
}

// Unmount drops the session's workflow. Called on logout.
func (s *AdminService) Unmount(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grids, sessionID)
}

// ConfirmPending commits the session's open confirmation. The confirmation
// is consumed either way; on upstream failure the row state is untouched, so
// a failed save leaves the row in edit mode with its edits and a failed
// delete leaves the list as it was.
func (s *AdminService) ConfirmPending(ctx context.Context, sessionID string) (grid.Confirmation, error) {
	w, ok := s.Grid(sessionID)
	if !ok {
		return grid.Confirmation{}, apperrors.NotFound("admin table is not mounted")
	}
	c, ok := w.TakePending()
	if !ok {
		return grid.Confirmation{}, apperrors.NotFound("no confirmation is pending")
	}

	switch c.Kind {
	case grid.ConfirmSave:
		rec, ok := w.Record(c.RowID)
		if !ok {
			return c, nil
		}
		if err := s.directory.UpdateUser(ctx, c.RowID, rec); err != nil {
			return c, err
		}
		if err := w.FinishSave(c.RowID); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "finish save after acknowledged update", "row", c.RowID, "error", err)
		}
	case grid.ConfirmDelete:
		if err := s.directory.DeleteUser(ctx, c.RowID); err != nil {
			return c, err
		}
		if err := w.Remove(c.RowID); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "remove row after acknowledged delete", "row", c.RowID, "error", err)
		}
	}
	return c, nil
}

// DismissPending drops the session's open confirmation without committing.
func (s *AdminService) DismissPending(sessionID string) {
	if w, ok := s.Grid(sessionID); ok {
		w.Dismiss()
	}
}
