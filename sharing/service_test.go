package sharing

import (
	"reflect"
	"testing"

	"albumserver/models"
)

func TestGetAccess(t *testing.T) {
	f := newFixture(t)
	owner := f.user("Owner", "owner@example.com")
	admin := f.user("Admin", "admin@example.com")
	contributor := f.user("Contributor", "contributor@example.com")
	viewer := f.user("Viewer", "viewer@example.com")
	stranger := f.user("Stranger", "stranger@example.com")
	album := f.album(owner, models.PrivacyPrivate)
	f.member(album.ID, owner, models.RoleViewer) // stale row, the creator stays admin
	f.member(album.ID, admin, models.RoleAdmin)
	f.member(album.ID, contributor, models.RoleContributor)
	f.member(album.ID, viewer, models.RoleViewer)

	tests := []struct {
		name      string
		caller    *Identity
		role      models.Role
		isCreator bool
	}{
		{"creator", owner, models.RoleAdmin, true},
		{"admin", admin, models.RoleAdmin, false},
		{"contributor", contributor, models.RoleContributor, false},
		{"viewer", viewer, models.RoleViewer, false},
		{"stranger", stranger, models.RoleNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := f.svc.GetAccess(ctx, tt.caller, album.ID)
			if err != nil {
				t.Fatal(err)
			}
			if access.Role != tt.role || access.IsCreator != tt.isCreator {
				t.Errorf("got role %q creator %v, want %q %v", access.Role, access.IsCreator, tt.role, tt.isCreator)
			}
			if !reflect.DeepEqual(access.Capabilities, models.CapabilitiesFor(tt.role)) {
				t.Errorf("capabilities %+v do not match role %q", access.Capabilities, tt.role)
			}
		})
	}

	_, err := f.svc.GetAccess(ctx, nil, album.ID)
	expectKind(t, err, KindNotAuthenticated)
	_, err = f.svc.GetAccess(ctx, owner, album.ID+100)
	expectKind(t, err, KindNotFound)
}

func TestAcceptURL(t *testing.T) {
	f := newFixture(t)
	if got := f.svc.AcceptURL("abc"); got != "https://albums.test/w/invite/abc/" {
		t.Errorf("AcceptURL() = %q", got)
	}
	svc := NewService(f.db, Options{})
	if got := svc.AcceptURL("abc"); got != "/w/invite/abc/" {
		t.Errorf("default AcceptURL() = %q", got)
	}
}
