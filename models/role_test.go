package models

import (
	"reflect"
	"testing"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want Capabilities
	}{
		{
			name: "admin",
			role: RoleAdmin,
			want: Capabilities{
				CanInviteMembers:     true,
				CanManageMembers:     true,
				CanEditAlbum:         true,
				CanDeleteAlbum:       true,
				CanCreatePosts:       true,
				CanDeleteOthersPosts: true,
			},
		},
		{
			name: "contributor",
			role: RoleContributor,
			want: Capabilities{CanCreatePosts: true},
		},
		{
			name: "viewer",
			role: RoleViewer,
			want: Capabilities{},
		},
		{
			name: "none",
			role: RoleNone,
			want: Capabilities{},
		},
		{
			name: "unknown",
			role: Role("owner"),
			want: Capabilities{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapabilitiesFor(tt.role); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CapabilitiesFor(%q) = %+v, want %+v", tt.role, got, tt.want)
			}
		})
	}
}

func TestRole_IsAssignable(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleContributor, true},
		{RoleViewer, true},
		{RoleNone, false},
		{Role("Admin"), false},
		{Role("owner"), false},
	}
	for _, tt := range tests {
		if got := tt.role.IsAssignable(); got != tt.want {
			t.Errorf("Role(%q).IsAssignable() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
