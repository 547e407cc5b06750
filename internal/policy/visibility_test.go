package policy

import (
	"testing"

	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/utils"
)

func uptr(v uint64) *uint64 { return &v }

func TestCanSeeUser(t *testing.T) {
	tests := []struct {
		name   string
		caller utils.Claims
		target model.User
		want   bool
	}{
		{
			name:   "superuser sees anyone",
			caller: utils.Claims{UserID: 1, Role: model.RoleUser, IsSuperuser: true},
			target: model.User{ID: 99, TribeID: uptr(5)},
			want:   true,
		},
		{
			name:   "user sees self",
			caller: utils.Claims{UserID: 7, Role: model.RoleUser},
			target: model.User{ID: 7},
			want:   true,
		},
		{
			name:   "user cannot see others",
			caller: utils.Claims{UserID: 7, Role: model.RoleUser, TribeID: uptr(2)},
			target: model.User{ID: 8, TribeID: uptr(2)},
			want:   false,
		},
		{
			name:   "admin sees same tribe",
			caller: utils.Claims{UserID: 3, Role: model.RoleAdmin, TribeID: uptr(2)},
			target: model.User{ID: 8, TribeID: uptr(2)},
			want:   true,
		},
		{
			name:   "admin cannot see other tribe",
			caller: utils.Claims{UserID: 3, Role: model.RoleAdmin, TribeID: uptr(2)},
			target: model.User{ID: 8, TribeID: uptr(4)},
			want:   false,
		},
		{
			name:   "admin cannot see tribe-less user",
			caller: utils.Claims{UserID: 3, Role: model.RoleAdmin, TribeID: uptr(2)},
			target: model.User{ID: 8},
			want:   false,
		},
		{
			name:   "tribe-less admin sees only self",
			caller: utils.Claims{UserID: 3, Role: model.RoleAdmin},
			target: model.User{ID: 8, TribeID: uptr(2)},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSeeUser(tt.caller, tt.target); got != tt.want {
				t.Fatalf("CanSeeUser = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterUsers(t *testing.T) {
	users := []model.User{
		{ID: 1, TribeID: uptr(2)},
		{ID: 2, TribeID: uptr(2)},
		{ID: 3, TribeID: uptr(9)},
		{ID: 4},
	}
	admin := utils.Claims{UserID: 1, Role: model.RoleAdmin, TribeID: uptr(2)}
	got := FilterUsers(admin, users)
	if len(got) != 2 {
		t.Fatalf("admin sees %d users, want 2", len(got))
	}

	plain := utils.Claims{UserID: 3, Role: model.RoleUser, TribeID: uptr(9)}
	got = FilterUsers(plain, users)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("plain user sees %v, want only self", got)
	}

	su := utils.Claims{UserID: 4, IsSuperuser: true}
	if got := FilterUsers(su, users); len(got) != 4 {
		t.Fatalf("superuser sees %d users, want 4", len(got))
	}
}
