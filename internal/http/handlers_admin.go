package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/caseworks/user-portal/internal/domain/auth"
	"github.com/caseworks/user-portal/internal/domain/grid"
	apperrors "github.com/caseworks/user-portal/internal/errors"
)

// AdminPage mounts a fresh user table for the session and renders it. Every
// full navigation refetches the list; in-flight edit state belongs to the
// mounted table and is discarded on remount.
func (h *UIHandlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())

	wf, err := h.Admin.Mount(r.Context(), sess.ID)
	if err != nil {
		h.render(w, r, h.pageData(w, r, adminMeta()).
			WithError(failureMessage(err, "Failed to fetch users.")).
			With("Rows", []grid.Row{}).Build())
		return
	}
	h.renderAdmin(w, r, wf, "")
}

// renderAdmin renders the admin table from the mounted workflow without
// refetching. Row actions use it so edit state survives the POST.
func (h *UIHandlers) renderAdmin(w http.ResponseWriter, r *http.Request, wf *grid.Workflow, errMsg string) {
	data := h.pageData(w, r, adminMeta()).With("Rows", wf.Rows())
	if c, ok := wf.Pending(); ok {
		data.With("Pending", c)
	}
	if errMsg != "" {
		data.WithError(errMsg)
	}
	h.render(w, r, data.Build())
}

// adminGrid resolves the session's mounted workflow for a row action. When
// the table is not mounted (expired session, restarted server) the browser is
// sent back to /admin for a fresh mount.
func (h *UIHandlers) adminGrid(w http.ResponseWriter, r *http.Request) (*domainauth.Session, *grid.Workflow, bool) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return nil, nil, false
	}
	wf, ok := h.Admin.Grid(sess.ID)
	if !ok {
		redirectBrowser(w, r, "/admin")
		return nil, nil, false
	}
	return sess, wf, true
}

// AdminRowEdit switches a row into edit mode, snapshotting its values.
func (h *UIHandlers) AdminRowEdit(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}
	h.renderAdmin(w, r, wf, gridErrorMessage(wf.EnterEdit(r.PathValue("id"))))
}

// AdminRowCancel leaves edit mode and restores the snapshot.
func (h *UIHandlers) AdminRowCancel(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}
	h.renderAdmin(w, r, wf, gridErrorMessage(wf.CancelEdit(r.PathValue("id"))))
}

// AdminRowSave applies the posted edits to the row and opens the save
// confirmation. Nothing reaches the user service until the dialog is
// confirmed.
func (h *UIHandlers) AdminRowSave(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	err := wf.ApplyEdits(id, grid.Edits{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		MobileNo:  r.PostFormValue("mobile_no"),
		Role:      r.PostFormValue("role"),
	})
	if err == nil {
		_, err = wf.RequestSave(id)
	}
	h.renderAdmin(w, r, wf, gridErrorMessage(err))
}

// AdminRowDelete opens the delete confirmation for a row.
func (h *UIHandlers) AdminRowDelete(w http.ResponseWriter, r *http.Request) {
	_, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}
	_, err := wf.RequestDelete(r.PathValue("id"))
	h.renderAdmin(w, r, wf, gridErrorMessage(err))
}

// AdminConfirm commits the pending confirmation. An upstream failure leaves
// the row state untouched (a failed save keeps the row in edit mode with its
// edits, a failed delete keeps the row) and surfaces the server's message.
func (h *UIHandlers) AdminConfirm(w http.ResponseWriter, r *http.Request) {
	sess, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}

	c, err := h.Admin.ConfirmPending(r.Context(), sess.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			redirectBrowser(w, r, "/admin")
			return
		}
		fallback := "Failed to update user."
		if c.Kind == grid.ConfirmDelete {
			fallback = "Failed to delete user."
		}
		h.renderAdmin(w, r, wf, failureMessage(err, fallback))
		return
	}
	h.renderAdmin(w, r, wf, "")
}

// AdminDismiss drops the pending confirmation without committing.
func (h *UIHandlers) AdminDismiss(w http.ResponseWriter, r *http.Request) {
	sess, wf, ok := h.adminGrid(w, r)
	if !ok {
		return
	}
	h.Admin.DismissPending(sess.ID)
	h.renderAdmin(w, r, wf, "")
}

// gridErrorMessage maps workflow errors to the banner text shown above the
// table. A nil error yields no banner.
func gridErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, grid.ErrConfirmationPending):
		return "Another confirmation is still open. Confirm or cancel it first."
	case errors.Is(err, grid.ErrRowNotFound):
		return "That user is no longer in the list."
	case errors.Is(err, grid.ErrAlreadyEditing):
		return "Finish editing this row first."
	case errors.Is(err, grid.ErrNotEditing):
		return "This row is not being edited."
	default:
		return genericFailureMessage
	}
}

func adminMeta() PageMeta {
	return PageMeta{Title: "User Management", PageTitle: "User Management", CurrentPage: PageAdmin}
}
