package sharing

import (
	"testing"

	"albumserver/models"
)

func TestListMembers(t *testing.T) {
	f := newFixture(t)
	owner := f.user("Owner", "owner@example.com")
	viewer := f.user("Viewer", "viewer@example.com")
	contributor := f.user("Contributor", "contributor@example.com")
	album := f.album(owner, models.PrivacyPrivate)
	f.member(album.ID, viewer, models.RoleViewer)
	f.member(album.ID, contributor, models.RoleContributor)

	members, err := f.svc.ListMembers(ctx, viewer, album.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	if !members[0].IsCreator || members[0].UserID != owner.ID || members[0].Role != models.RoleAdmin || members[0].ID != 0 {
		t.Errorf("creator should come first as admin: %+v", members[0])
	}
	if members[1].UserID != viewer.ID || members[1].Role != models.RoleViewer || members[1].Email != "viewer@example.com" {
		t.Errorf("unexpected member %+v", members[1])
	}
	if members[2].UserID != contributor.ID || members[2].Role != models.RoleContributor || members[2].ID == 0 {
		t.Errorf("unexpected member %+v", members[2])
	}

	stranger := f.user("Stranger", "stranger@example.com")
	_, err = f.svc.ListMembers(ctx, stranger, album.ID)
	expectKind(t, err, KindNotAMember)
}

func TestAddMember(t *testing.T) {
	f := newFixture(t)
	owner := f.user("Owner", "owner@example.com")
	contributor := f.user("Contributor", "contributor@example.com")
	newcomer := f.user("New", "new@example.com")
	album := f.album(owner, models.PrivacyPrivate)
	f.member(album.ID, contributor, models.RoleContributor)

	member, err := f.svc.AddMember(ctx, owner, album.ID, newcomer.ID, models.RoleViewer)
	if err != nil {
		t.Fatal(err)
	}
	if member.ID == 0 || member.Role != models.RoleViewer {
		t.Errorf("unexpected member %+v", member)
	}
	if role := f.roleOf(album.ID, newcomer); role != models.RoleViewer {
		t.Errorf("role = %q", role)
	}

	tests := []struct {
		name   string
		caller *Identity
		userID uint64
		role   models.Role
		want   Kind
	}{
		{"again", owner, newcomer.ID, models.RoleAdmin, KindAlreadyMember},
		{"creator", owner, owner.ID, models.RoleViewer, KindAlreadyMember},
		{"unknown user", owner, newcomer.ID + 100, models.RoleViewer, KindNotFound},
		{"unknown role", owner, newcomer.ID, models.Role("owner"), KindInvalidArgument},
		{"contributor", contributor, newcomer.ID, models.RoleViewer, KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddMember(ctx, tt.caller, album.ID, tt.userID, tt.role)
			expectKind(t, err, tt.want)
		})
	}
}

func TestChangeRole(t *testing.T) {
	f := newFixture(t)
	owner := f.user("Owner", "owner@example.com")
	admin := f.user("Admin", "admin@example.com")
	contributor := f.user("Contributor", "contributor@example.com")
	album := f.album(owner, models.PrivacyPrivate)
	creatorRow := f.member(album.ID, owner, models.RoleViewer)
	adminRow := f.member(album.ID, admin, models.RoleAdmin)
	contributorRow := f.member(album.ID, contributor, models.RoleContributor)

	updated, err := f.svc.ChangeRole(ctx, admin, contributorRow.ID, models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != models.RoleAdmin || f.roleOf(album.ID, contributor) != models.RoleAdmin {
		t.Errorf("role was not changed: %+v", updated)
	}

	_, err = f.svc.ChangeRole(ctx, admin, creatorRow.ID, models.RoleViewer)
	expectKind(t, err, KindForbidden)
	if f.roleOf(album.ID, owner) != models.RoleAdmin {
		t.Error("the creator must stay admin")
	}
	_, err = f.svc.ChangeRole(ctx, admin, adminRow.ID, models.RoleViewer)
	expectKind(t, err, KindForbidden)
	if _, err := f.svc.ChangeRole(ctx, owner, adminRow.ID, models.RoleViewer); err != nil {
		t.Errorf("the creator can demote other admins: %v", err)
	}
	_, err = f.svc.ChangeRole(ctx, admin, contributorRow.ID, models.RoleViewer)
	expectKind(t, err, KindForbidden)
	_, err = f.svc.ChangeRole(ctx, owner, contributorRow.ID, models.RoleNone)
	expectKind(t, err, KindInvalidArgument)
	_, err = f.svc.ChangeRole(ctx, owner, contributorRow.ID+100, models.RoleViewer)
	expectKind(t, err, KindNotFound)
	_, err = f.svc.ChangeRole(ctx, nil, contributorRow.ID, models.RoleViewer)
	expectKind(t, err, KindNotAuthenticated)
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	owner := f.user("Owner", "owner@example.com")
	viewer := f.user("Viewer", "viewer@example.com")
	album := f.album(owner, models.PrivacyPrivate)
	viewerRow := f.member(album.ID, viewer, models.RoleViewer)

	err := f.svc.RemoveMember(ctx, viewer, viewerRow.ID)
	expectKind(t, err, KindForbidden)

	if err := f.svc.RemoveMember(ctx, owner, viewerRow.ID); err != nil {
		t.Fatal(err)
	}
	if role := f.roleOf(album.ID, viewer); role != models.RoleNone {
		t.Errorf("removed member still has role %q", role)
	}
	err = f.svc.RemoveMember(ctx, owner, viewerRow.ID)
	expectKind(t, err, KindNotFound)

	inv, err := f.svc.InviteByEmail(ctx, owner, album.ID, viewer.Email, models.RoleContributor)
	if err != nil {
		t.Fatalf("removed members can be invited again: %v", err)
	}
	if _, err := f.svc.AcceptInvite(ctx, viewer, inv.Token); err != nil {
		t.Fatal(err)
	}
	if role := f.roleOf(album.ID, viewer); role != models.RoleContributor {
		t.Errorf("role after rejoining = %q", role)
	}
}
