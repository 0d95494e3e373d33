package web

import (
	"embed"
	"html/template"
	"net/http"

	"albumserver/handlers"
	"albumserver/sharing"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the HTML pages served under /w/
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

type Pages struct {
	Sharing *sharing.Service
	API     *handlers.API
}

// InviteView shows what an invite link grants before the visitor logs in to accept it
func (p *Pages) InviteView(c *gin.Context) {
	token := c.Param("token")
	preview, err := p.Sharing.PreviewInvite(c.Request.Context(), token)
	if c.Query("format") == "json" {
		if err != nil {
			p.API.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, preview)
		return
	}
	if err != nil {
		status := http.StatusGone
		if sharing.KindOf(err) == sharing.KindStoreFailure {
			status = http.StatusInternalServerError
		}
		c.HTML(status, "invite_view.tmpl", gin.H{"error": sharing.ErrInvalidOrExpiredInvite.Message})
		return
	}
	data := gin.H{
		"token":        token,
		"album_name":   preview.AlbumName,
		"inviter_name": preview.InviterName,
		"role":         preview.Role,
		"email":        preview.Email,
	}
	if preview.UsesLeft != nil {
		data["uses_left"] = *preview.UsesLeft
	}
	c.HTML(http.StatusOK, "invite_view.tmpl", data)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
