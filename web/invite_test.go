package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"albumserver/config"
	"albumserver/db"
	"albumserver/handlers"
	"albumserver/models"
	"albumserver/sharing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setup(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.DEBUG_MODE = false
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := models.Migrate(conn); err != nil {
		t.Fatal(err)
	}
	owner := models.User{Name: "Owner", Email: "owner@example.com"}
	if err := conn.Create(&owner).Error; err != nil {
		t.Fatal(err)
	}
	service := sharing.NewService(conn, sharing.Options{Logger: zerolog.Nop()})
	caller := &sharing.Identity{ID: owner.ID, Email: owner.Email}
	album, err := service.CreateAlbum(context.Background(), caller, sharing.AlbumInput{Name: "Summer trip"})
	if err != nil {
		t.Fatal(err)
	}
	maxUses := 5
	link, err := service.CreateShareable(context.Background(), caller, album.ID, models.RoleContributor, &maxUses)
	if err != nil {
		t.Fatal(err)
	}

	pages := &Pages{Sharing: service, API: &handlers.API{Sharing: service, Log: zerolog.Nop()}}
	router := gin.New()
	router.SetHTMLTemplate(Templates())
	router.GET("/w/invite/:token/", pages.InviteView)
	router.GET("/robots.txt", DisallowRobots)
	return router, link.Token
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestInviteView(t *testing.T) {
	router, token := setup(t)

	w := get(router, "/w/invite/"+token+"/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Summer trip", "Owner invited you", "contributor", "5 uses left", token} {
		if !strings.Contains(body, want) {
			t.Errorf("page lacks %q", want)
		}
	}

	w = get(router, "/w/invite/"+token+"/?format=json")
	preview := sharing.InvitePreview{}
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatal(err)
	}
	if preview.AlbumName != "Summer trip" || !preview.Shareable || preview.UsesLeft == nil || *preview.UsesLeft != 5 {
		t.Errorf("unexpected preview %+v", preview)
	}

	w = get(router, "/w/invite/nope/")
	if w.Code != http.StatusGone || !strings.Contains(w.Body.String(), "Invitation unavailable") {
		t.Errorf("unknown token: %d %s", w.Code, w.Body.String())
	}
	w = get(router, "/w/invite/nope/?format=json")
	if w.Code != http.StatusGone || !strings.Contains(w.Body.String(), string(sharing.KindInvalidOrExpiredInvite)) {
		t.Errorf("unknown token json: %d %s", w.Code, w.Body.String())
	}
}

func TestDisallowRobots(t *testing.T) {
	router, _ := setup(t)
	w := get(router, "/robots.txt")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Disallow: /") {
		t.Errorf("robots.txt: %d %q", w.Code, w.Body.String())
	}
}
