package handlers

import (
	"net/http"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/middleware"
)

// AccountHandler serves account resource reads. Requires the session gate.
type AccountHandler struct {
	accounts ports.AccountRepository
}

func NewAccountHandler(accounts ports.AccountRepository) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Me returns the authenticated account's public view. Secret digest and
// token fields are never serialized.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, KindUnauthenticated, "please login first to access our services")
		return
	}
	account, err := h.accounts.GetByID(r.Context(), identity.AccountID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		return
	}
	if account == nil {
		writeErr(w, http.StatusNotFound, KindAccountNotFound, "Account not found.")
		return
	}
	writeData(w, http.StatusOK, "", account.Public())
}
