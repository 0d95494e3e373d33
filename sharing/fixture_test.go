package sharing

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"albumserver/config"
	"albumserver/db"
	"albumserver/models"
	"albumserver/utils"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ctx = context.Background()

type recordingNotifier struct {
	mu      sync.Mutex
	notices []InvitationNotice
	err     error
}

func (n *recordingNotifier) SendInvitationNotice(_ context.Context, notice InvitationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *recordingNotifier) sent() []InvitationNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]InvitationNotice(nil), n.notices...)
}

type fixture struct {
	t        *testing.T
	db       *gorm.DB
	svc      *Service
	notifier *recordingNotifier
	now      time.Time
	hooks    int
}

// newFixture runs the service on a fresh SQLite file with a fixed clock
func newFixture(t *testing.T) *fixture {
	t.Helper()
	config.DEBUG_MODE = false
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "sharing.db"))
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := models.Migrate(conn); err != nil {
		t.Fatal(err)
	}
	f := &fixture{
		t:        t,
		db:       conn,
		notifier: &recordingNotifier{},
		now:      time.Unix(1700000000, 0),
	}
	f.svc = NewService(conn, Options{
		Notifier:          f.notifier,
		Logger:            zerolog.Nop(),
		AcceptURLTemplate: "https://albums.test/w/invite/%s/",
		Now:               func() time.Time { return f.now },
		JoinRequestLimit:  3,
		JoinRequestWindow: time.Hour,
	})
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) user(name, email string) *Identity {
	f.t.Helper()
	u := models.User{Name: name, Email: utils.NormalizeEmail(email)}
	if err := f.db.Create(&u).Error; err != nil {
		f.t.Fatal(err)
	}
	return &Identity{ID: u.ID, Email: u.Email}
}

func (f *fixture) album(owner *Identity, privacy string) models.Album {
	f.t.Helper()
	album, err := f.svc.CreateAlbum(ctx, owner, AlbumInput{Name: "Summer trip", Privacy: privacy})
	if err != nil {
		f.t.Fatal(err)
	}
	return album
}

// member stores a membership row directly, bypassing every check
func (f *fixture) member(albumID uint64, user *Identity, role models.Role) models.AlbumMember {
	f.t.Helper()
	m := models.AlbumMember{AlbumID: albumID, UserID: user.ID, Role: role, CreatedAt: f.now.Unix(), UpdatedAt: f.now.Unix()}
	if err := f.db.Create(&m).Error; err != nil {
		f.t.Fatal(err)
	}
	return m
}

func (f *fixture) invitation(id uint64) models.Invitation {
	f.t.Helper()
	inv := models.Invitation{}
	if err := f.db.First(&inv, "id = ?", id).Error; err != nil {
		f.t.Fatal(err)
	}
	return inv
}

func (f *fixture) roleOf(albumID uint64, user *Identity) models.Role {
	f.t.Helper()
	access, err := f.svc.GetAccess(ctx, user, albumID)
	if err != nil {
		f.t.Fatal(err)
	}
	return access.Role
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	if err := f.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		f.t.Fatal(err)
	}
	return n
}

// afterRead executes sql once, right after the next query on table has returned.
// It stands in for another instance writing between the checks and the transaction.
func (f *fixture) afterRead(table, sql string, args ...interface{}) {
	f.t.Helper()
	fired := false
	f.hooks++
	name := fmt.Sprintf("test:after_read_%d", f.hooks)
	err := f.db.Callback().Query().After("gorm:query").Register(name, func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec(sql, args...).Error; err != nil {
			f.t.Errorf("concurrent write failed: %v", err)
		}
	})
	if err != nil {
		f.t.Fatal(err)
	}
}

func expectKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, got, err)
	}
}

func intPtr(i int) *int {
	return &i
}
