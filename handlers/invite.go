package handlers

import (
	"net/http"

	"albumserver/models"
	"albumserver/sharing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InviteInfo struct {
	ID        uint64      `json:"id"`
	AlbumID   uint64      `json:"album_id"`
	AlbumName string      `json:"album_name,omitempty"`
	Email     string      `json:"email,omitempty"`
	Role      models.Role `json:"role"`
	Shareable bool        `json:"shareable"`
	URL       string      `json:"url"`
	InvitedBy string      `json:"invited_by,omitempty"`
	Created   int64       `json:"created"`
	ExpiresAt int64       `json:"expires_at"`
	UsedAt    *int64      `json:"used_at,omitempty"`
	MaxUses   *int        `json:"max_uses,omitempty"`
	UsesCount int         `json:"uses_count"`
	UsesLeft  *int        `json:"uses_left,omitempty"`
}

type InviteEmailRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Email   string `form:"email" binding:"required"`
	Role    string `form:"role"`
}

type InviteLinkRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Role    string `form:"role"`
	MaxUses *int   `form:"max_uses"`
}

type InviteListRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	Filter  string `form:"filter"`
}

type InviteIDRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

type InviteTokenRequest struct {
	Token string `form:"token" binding:"required"`
}

func (a *API) inviteInfo(invitation *models.Invitation) InviteInfo {
	return InviteInfo{
		ID:        invitation.ID,
		AlbumID:   invitation.AlbumID,
		AlbumName: invitation.Album.Name,
		Email:     invitation.Email,
		Role:      invitation.Role,
		Shareable: invitation.Shareable,
		URL:       a.Sharing.AcceptURL(invitation.Token),
		InvitedBy: invitation.InvitedBy.Name,
		Created:   invitation.CreatedAt,
		ExpiresAt: invitation.ExpiresAt,
		UsedAt:    invitation.UsedAt,
		MaxUses:   invitation.MaxUses,
		UsesCount: invitation.UsesCount,
		UsesLeft:  invitation.UsesLeft(),
	}
}

func roleOrViewer(role string) models.Role {
	if role == "" {
		return models.RoleViewer
	}
	return models.Role(role)
}

func (a *API) InviteEmail(c *gin.Context, caller *sharing.Identity) {
	r := InviteEmailRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	invitation, err := a.Sharing.InviteByEmail(c.Request.Context(), caller, r.AlbumID, r.Email, roleOrViewer(r.Role))
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a.inviteInfo(&invitation))
}

func (a *API) InviteLink(c *gin.Context, caller *sharing.Identity) {
	r := InviteLinkRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	invitation, err := a.Sharing.CreateShareable(c.Request.Context(), caller, r.AlbumID, roleOrViewer(r.Role), r.MaxUses)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a.inviteInfo(&invitation))
}

func (a *API) InviteList(c *gin.Context, caller *sharing.Identity) {
	r := InviteListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		badRequest(c, err)
		return
	}
	invitations, err := a.Sharing.ListInvites(c.Request.Context(), caller, r.AlbumID, sharing.InviteFilter(r.Filter))
	if err != nil {
		a.Fail(c, err)
		return
	}
	result := make([]InviteInfo, 0, len(invitations))
	for i := range invitations {
		result = append(result, a.inviteInfo(&invitations[i]))
	}
	c.JSON(http.StatusOK, result)
}

func (a *API) InviteCancel(c *gin.Context, caller *sharing.Identity) {
	r := InviteIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Sharing.CancelInvite(c.Request.Context(), caller, r.ID); err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func (a *API) InviteRevoke(c *gin.Context, caller *sharing.Identity) {
	r := InviteIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Sharing.RevokeShareable(c.Request.Context(), caller, r.ID); err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// AlbumJoin asks to join a public album, answered with an invite to the caller's own address
func (a *API) AlbumJoin(c *gin.Context, caller *sharing.Identity) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	invitation, err := a.Sharing.RequestJoin(c.Request.Context(), caller, r.AlbumID)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a.inviteInfo(&invitation))
}

func (a *API) InviteMine(c *gin.Context, caller *sharing.Identity) {
	invitations, err := a.Sharing.ListMyInvites(c.Request.Context(), caller)
	if err != nil {
		a.Fail(c, err)
		return
	}
	result := make([]InviteInfo, 0, len(invitations))
	for i := range invitations {
		result = append(result, a.inviteInfo(&invitations[i]))
	}
	c.JSON(http.StatusOK, result)
}

func (a *API) InviteAccept(c *gin.Context, caller *sharing.Identity) {
	r := InviteTokenRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	albumID, err := a.Sharing.AcceptInvite(c.Request.Context(), caller, r.Token)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "album_id": albumID})
}

func (a *API) InviteDecline(c *gin.Context, caller *sharing.Identity) {
	r := InviteTokenRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Sharing.DeclineInvite(c.Request.Context(), caller, r.Token); err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
