package http

import (
	"fmt"
	"net/http"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/httpx"
	"portfolio/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type userHandler struct {
	auth  service.AuthService
	users service.UserService
	jar   cookieJar
	responder
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

type currentUserResponse struct {
	User *domain.User `json:"user"`
}

func (h userHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

func (h userHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.session(w, r, http.StatusOK)(h.auth.Verify(r.Context(), req))
}

func (h userHandler) resend(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.auth.ResendVerification(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h userHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.session(w, r, http.StatusOK)(h.auth.Login(r.Context(), req))
}

func (h userHandler) google(w http.ResponseWriter, r *http.Request) {
	var req dto.GoogleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.session(w, r, http.StatusOK)(h.auth.GoogleLogin(r.Context(), req))
}

func (h userHandler) refresh(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	h.session(w, r, http.StatusOK)(h.auth.Refresh(r.Context(), user))
}

func (h userHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	h.jar.clear(w)
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logout berhasil"})
}

// session returns a sink for (session, error) pairs that sets the cookie and
// writes the session document.
func (h userHandler) session(w http.ResponseWriter, r *http.Request, status int) func(*dto.Session, error) {
	return func(s *dto.Session, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.jar.set(w, s.Token)
		httpx.WriteJSON(w, status, s.Response())
	}
}

func (h userHandler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	fresh, err := h.users.Get(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, currentUserResponse{User: fresh})
}

func (h userHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	f, err := readForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req := dto.UpdateProfileRequest{
		FullName:    f.ptr("fullName"),
		Email:       f.ptr("email"),
		Phone:       f.ptr("phone"),
		Gender:      f.ptr("gender"),
		Address:     f.ptr("address"),
		OldPassword: f.str("oldPassword"),
		Password:    f.str("password"),
	}
	updated, err := h.users.UpdateProfile(r.Context(), user, req, f.file("profilePicture"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, currentUserResponse{User: updated})
}

func (h userHandler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	var req dto.DeleteAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.users.DeleteAccount(r.Context(), user, req.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.jar.clear(w)
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Akun Anda telah berhasil dihapus secara permanen."})
}

func (h userHandler) stats(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h userHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	httpx.WriteJSON(w, http.StatusOK, usersResponse{Users: users})
}

func (h userHandler) management(w http.ResponseWriter, r *http.Request) {
	res, err := h.users.ListManagement(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h userHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Pengguna tidak ditemukan atau bukan role user")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Data Pengguna terkait, berhasil dihapus!"})
}

func (h userHandler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	admin, err := h.users.CreateAdmin(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, admin)
}

func (h userHandler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Admin tidak ditemukan")
	if !ok {
		return
	}
	var req dto.UpdateAdminRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	admin, err := h.users.UpdateAdmin(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, admin)
}

func (h userHandler) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Admin tidak ditemukan")
	if !ok {
		return
	}
	if err := h.users.DeleteAdmin(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Admin berhasil dihapus"})
}

func (h userHandler) deleteSuperAdmin(w http.ResponseWriter, r *http.Request) {
	actor, _ := UserFromContext(r.Context())
	id, ok := h.pathID(w, r, "Super Admin tidak ditemukan.")
	if !ok {
		return
	}
	if err := h.users.DeleteSuperAdmin(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Super Admin berhasil dihapus."})
}

func (h userHandler) updateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "Pengguna tidak ditemukan")
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.users.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Role pengguna berhasil diubah menjadi %s", u.Role)})
}

// pathID parses the {id} URL parameter. Malformed ids answer 404 with
// notFound, the same as ids that do not exist.
func (rs responder) pathID(w http.ResponseWriter, r *http.Request, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rs.writeError(w, r, domain.NotFound(notFound))
		return uuid.Nil, false
	}
	return id, true
}
