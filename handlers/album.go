package handlers

import (
	"net/http"

	"albumserver/models"
	"albumserver/sharing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumInfo struct {
	ID          uint64 `json:"id"`
	Owner       uint64 `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Privacy     string `json:"privacy"`
}

type AlbumCreateRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Privacy     string `form:"privacy"`
}

type AlbumSaveRequest struct {
	AlbumID     uint64  `form:"album_id" binding:"required"`
	Name        string  `form:"name" binding:"required"`
	Description *string `form:"description"` // absent keeps the current description
	Privacy     string `form:"privacy"`
}

type AlbumIDRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
}

func (a *API) AlbumList(c *gin.Context, caller *sharing.Identity) {
	albums, err := a.Sharing.ListAlbums(c.Request.Context(), caller)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (a *API) AlbumCreate(c *gin.Context, caller *sharing.Identity) {
	r := AlbumCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	album, err := a.Sharing.CreateAlbum(c.Request.Context(), caller, sharing.AlbumInput{
		Name:        r.Name,
		Description: &r.Description,
		Privacy:     r.Privacy,
	})
	if err != nil {
		a.Fail(c, err)
		return
	}
	info := AlbumInfo{ID: album.ID, Owner: album.UserID, Name: album.Name, Privacy: album.Privacy}
	if album.Description != nil {
		info.Description = *album.Description
	}
	c.JSON(http.StatusOK, info)
}

func (a *API) AlbumSave(c *gin.Context, caller *sharing.Identity) {
	r := AlbumSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	album, err := a.Sharing.UpdateAlbum(c.Request.Context(), caller, r.AlbumID, sharing.AlbumInput{
		Name:        r.Name,
		Description: r.Description,
		Privacy:     r.Privacy,
	})
	if err != nil {
		a.Fail(c, err)
		return
	}
	info := AlbumInfo{ID: album.ID, Owner: album.UserID, Name: album.Name, Privacy: album.Privacy}
	if album.Description != nil {
		info.Description = *album.Description
	}
	c.JSON(http.StatusOK, info)
}

func (a *API) AlbumDelete(c *gin.Context, caller *sharing.Identity) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Sharing.DeleteAlbum(c.Request.Context(), caller, r.AlbumID); err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// AlbumAccess returns the caller's role and capabilities, used by the album/post layers and the UI
func (a *API) AlbumAccess(c *gin.Context, caller *sharing.Identity) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		badRequest(c, err)
		return
	}
	access, err := a.Sharing.GetAccess(c.Request.Context(), caller, r.AlbumID)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

type MemberAddRequest struct {
	AlbumID uint64 `form:"album_id" binding:"required"`
	UserID  uint64 `form:"user_id" binding:"required"`
	Role    string `form:"role" binding:"required"`
}

type MemberRoleRequest struct {
	MemberID uint64 `form:"member_id" binding:"required"`
	Role     string `form:"role" binding:"required"`
}

type MemberIDRequest struct {
	MemberID uint64 `form:"member_id" binding:"required"`
}

func (a *API) AlbumMembers(c *gin.Context, caller *sharing.Identity) {
	r := AlbumIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		badRequest(c, err)
		return
	}
	members, err := a.Sharing.ListMembers(c.Request.Context(), caller, r.AlbumID)
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (a *API) MemberAdd(c *gin.Context, caller *sharing.Identity) {
	r := MemberAddRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	member, err := a.Sharing.AddMember(c.Request.Context(), caller, r.AlbumID, r.UserID, models.Role(r.Role))
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": member.ID, "role": member.Role})
}

func (a *API) MemberRole(c *gin.Context, caller *sharing.Identity) {
	r := MemberRoleRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	member, err := a.Sharing.ChangeRole(c.Request.Context(), caller, r.MemberID, models.Role(r.Role))
	if err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": member.ID, "role": member.Role})
}

func (a *API) MemberRemove(c *gin.Context, caller *sharing.Identity) {
	r := MemberIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.Sharing.RemoveMember(c.Request.Context(), caller, r.MemberID); err != nil {
		a.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
