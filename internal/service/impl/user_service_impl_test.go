package impl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/media"
	"portfolio/internal/store"

	"github.com/google/uuid"
)

func newTestUsers(t *testing.T) (*UserServiceImpl, *store.Store, *fakeMedia) {
	t.Helper()
	st := setupStore(t)
	fm := &fakeMedia{}
	return NewUserServiceImpl(st, NewPasswordServiceWithParams(cheapArgon), fm), st, fm
}

func seedUser(t *testing.T, svc *UserServiceImpl, email string, role domain.Role, password string) *domain.User {
	t.Helper()
	hash, err := svc.PasswordService.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{FullName: "Seeded " + string(role), Email: email, PasswordHash: hash, Role: role, IsVerified: true}
	if err := svc.Store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return u
}

func strp(s string) *string { return &s }

func TestUpdateProfileFieldsAndPhoto(t *testing.T) {
	svc, _, fm := newTestUsers(t)
	ctx := context.Background()
	u := seedUser(t, svc, "me@example.com", domain.RoleUser, "rahasia123")

	first, err := svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{
		FullName: strp("  New Name "),
		Gender:   strp(domain.GenderFemale),
		Address:  strp("Semarang"),
	}, imageFile())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if first.FullName != "New Name" || first.Gender != domain.GenderFemale || first.Address != "Semarang" {
		t.Fatalf("fields not applied: %+v", first)
	}
	if first.Email != "me@example.com" {
		t.Fatal("email must stay when not provided")
	}
	oldID := first.ProfilePictureID
	if oldID == "" || len(fm.discarded) != 0 {
		t.Fatalf("expected a stored photo and no cleanup, got id=%q discarded=%v", oldID, fm.discarded)
	}

	second, err := svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{}, imageFile())
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if second.ProfilePictureID == oldID {
		t.Fatal("photo should be replaced")
	}
	if !fm.wasDiscarded(oldID) {
		t.Fatal("old photo should be discarded")
	}
}

func TestUpdateProfileRejectsLargePhotoBeforeUpload(t *testing.T) {
	svc, _, fm := newTestUsers(t)
	u := seedUser(t, svc, "me@example.com", domain.RoleUser, "rahasia123")

	big := &media.File{Filename: "big.jpg", ContentType: "image/jpeg", Data: make([]byte, media.MaxProfilePhotoSize+1)}
	_, err := svc.UpdateProfile(context.Background(), u, dto.UpdateProfileRequest{}, big)
	if !errors.Is(err, domain.ErrProfilePhotoTooBig) {
		t.Fatalf("expected photo too big, got %v", err)
	}
	if len(fm.puts) != 0 {
		t.Fatal("no upload should happen")
	}
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	u := seedUser(t, svc, "me@example.com", domain.RoleUser, "rahasia123")

	_, err := svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{OldPassword: "wrong-one", Password: "baru12345"}, nil)
	if !errors.Is(err, domain.ErrWrongOldPassword) {
		t.Fatalf("expected wrong old password, got %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, u, dto.UpdateProfileRequest{OldPassword: "rahasia123", Password: "baru12345"}, nil)
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, ok := svc.PasswordService.Verify("baru12345", updated.PasswordHash); !ok {
		t.Fatal("new password should verify")
	}
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	seedUser(t, svc, "taken@example.com", domain.RoleUser, "rahasia123")
	u := seedUser(t, svc, "me@example.com", domain.RoleUser, "rahasia123")

	_, err := svc.UpdateProfile(context.Background(), u, dto.UpdateProfileRequest{Email: strp("Taken@Example.com")}, nil)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(domain.MessageOf(err), "email") {
		t.Fatalf("message should name the field: %q", domain.MessageOf(err))
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, st, fm := newTestUsers(t)
	ctx := context.Background()
	u := seedUser(t, svc, "me@example.com", domain.RoleUser, "rahasia123")
	u.SetPhoto(domain.MediaRef{URL: "https://media.test/p.jpg", ID: "profile_pictures/p"})
	if err := st.Users().Save(ctx, u); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.DeleteAccount(ctx, u, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing password: got %v", err)
	}
	if err := svc.DeleteAccount(ctx, u, "nope"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("wrong password: got %v", err)
	}
	if err := svc.DeleteAccount(ctx, u, "rahasia123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Users().GetByID(ctx, u.ID); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if !fm.wasDiscarded("profile_pictures/p") {
		t.Fatal("photo should be discarded")
	}
}

func TestStatsAndListings(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	seedUser(t, svc, "u1@example.com", domain.RoleUser, "x")
	seedUser(t, svc, "u2@example.com", domain.RoleUser, "x")
	seedUser(t, svc, "a1@example.com", domain.RoleAdmin, "x")
	seedUser(t, svc, "s1@example.com", domain.RoleSuperAdmin, "x")

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalAdmins != 1 || stats.TotalSuperAdmins != 1 || stats.Total != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil || len(users) != 2 {
		t.Fatalf("list users: %d %v", len(users), err)
	}
	mgmt, err := svc.ListManagement(ctx)
	if err != nil {
		t.Fatalf("management: %v", err)
	}
	if len(mgmt.Admins) != 1 || len(mgmt.SuperAdmins) != 1 {
		t.Fatalf("unexpected management listing %+v", mgmt)
	}
}

func TestDeleteUserOnlyTouchesUserRole(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	plain := seedUser(t, svc, "u@example.com", domain.RoleUser, "x")
	admin := seedUser(t, svc, "a@example.com", domain.RoleAdmin, "x")

	if err := svc.DeleteUser(ctx, admin.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("admin target: expected not found, got %v", err)
	}
	if err := svc.DeleteUser(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown target: expected not found, got %v", err)
	}
	if err := svc.DeleteUser(ctx, plain.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
}

func TestCreateAdminPasswordPolicy(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	seedUser(t, svc, "exists@example.com", domain.RoleUser, "x")

	base := dto.CreateAdminRequest{FullName: "Rina Wati", Email: "rina.w@example.com", Password: "Kopi58Susu"}

	cases := map[string]func(*dto.CreateAdminRequest){
		"short":          func(r *dto.CreateAdminRequest) { r.Password = "ab12" },
		"contains admin": func(r *dto.CreateAdminRequest) { r.Password = "myAdmin58x" },
		"digits only":    func(r *dto.CreateAdminRequest) { r.Password = "58205820" },
		"letters only":   func(r *dto.CreateAdminRequest) { r.Password = "kopisusuteh" },
		"sequence":       func(r *dto.CreateAdminRequest) { r.Password = "kopi123susu" },
		"name part":      func(r *dto.CreateAdminRequest) { r.Password = "rina5820xy" },
		"email local":    func(r *dto.CreateAdminRequest) { r.Password = "xrina.w58z" },
		"one digit":      func(r *dto.CreateAdminRequest) { r.Password = "kopisusu5" },
		"taken email":    func(r *dto.CreateAdminRequest) { r.Email = "exists@example.com" },
		"bad email":      func(r *dto.CreateAdminRequest) { r.Email = "no-at-sign" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := base
			mutate(&r)
			if _, err := svc.CreateAdmin(ctx, r); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	admin, err := svc.CreateAdmin(ctx, base)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != domain.RoleAdmin || !admin.IsVerified {
		t.Fatalf("unexpected admin %+v", admin)
	}
}

func TestUpdateAdmin(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	admin := seedUser(t, svc, "a@example.com", domain.RoleAdmin, "x")
	plain := seedUser(t, svc, "u@example.com", domain.RoleUser, "x")

	if _, err := svc.UpdateAdmin(ctx, plain.ID, dto.UpdateAdminRequest{FullName: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("non-admin target: got %v", err)
	}
	if _, err := svc.UpdateAdmin(ctx, admin.ID, dto.UpdateAdminRequest{Password: "Kopi58Su"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("too short for a reset: got %v", err)
	}
	if _, err := svc.UpdateAdmin(ctx, admin.ID, dto.UpdateAdminRequest{Password: "KopiSusu58x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("two digits for a reset: got %v", err)
	}

	updated, err := svc.UpdateAdmin(ctx, admin.ID, dto.UpdateAdminRequest{FullName: "Renamed", Password: "Kopi5820Susu"})
	if err != nil {
		t.Fatalf("update admin: %v", err)
	}
	if updated.FullName != "Renamed" {
		t.Fatalf("name not updated: %q", updated.FullName)
	}
	if _, ok := svc.PasswordService.Verify("Kopi5820Susu", updated.PasswordHash); !ok {
		t.Fatal("new password should verify")
	}
}

func TestDeleteSuperAdmin(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	me := seedUser(t, svc, "s1@example.com", domain.RoleSuperAdmin, "x")
	other := seedUser(t, svc, "s2@example.com", domain.RoleSuperAdmin, "x")
	admin := seedUser(t, svc, "a@example.com", domain.RoleAdmin, "x")

	if err := svc.DeleteSuperAdmin(ctx, me, me.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("self delete: got %v", err)
	}
	if err := svc.DeleteSuperAdmin(ctx, me, admin.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("admin target: got %v", err)
	}
	if err := svc.DeleteSuperAdmin(ctx, me, other.ID); err != nil {
		t.Fatalf("delete other: %v", err)
	}
	if err := svc.DeleteAdmin(ctx, admin.ID); err != nil {
		t.Fatalf("delete admin: %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	svc, _, _ := newTestUsers(t)
	ctx := context.Background()
	plain := seedUser(t, svc, "u@example.com", domain.RoleUser, "x")
	super := seedUser(t, svc, "s@example.com", domain.RoleSuperAdmin, "x")

	if _, err := svc.UpdateRole(ctx, plain.ID, "superAdmin"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("promoting to superAdmin: got %v", err)
	}
	if _, err := svc.UpdateRole(ctx, super.ID, "user"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("demoting a superAdmin: got %v", err)
	}
	if _, err := svc.UpdateRole(ctx, uuid.New(), "admin"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown target: got %v", err)
	}

	u, err := svc.UpdateRole(ctx, plain.ID, "admin")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("role = %s", u.Role)
	}
}
