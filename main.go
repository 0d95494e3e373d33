package main

import (
	"log"
	"strings"
	"time"

	"albumserver/auth"
	"albumserver/config"
	"albumserver/db"
	"albumserver/handlers"
	"albumserver/models"
	"albumserver/push"
	"albumserver/sharing"
	"albumserver/utils"
	"albumserver/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	logger := utils.NewLogger(config.LOG_LEVEL, config.DEBUG_MODE)
	conn := db.Init()
	if err := models.Migrate(conn); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database")
	}

	service := sharing.NewService(conn, sharing.Options{
		Notifier:          notifiers(conn, logger),
		Logger:            logger,
		AcceptURLTemplate: config.INVITE_URL_TEMPLATE,
		JoinRequestLimit:  config.JOIN_REQUEST_LIMIT,
		JoinRequestWindow: time.Duration(config.JOIN_REQUEST_WINDOW) * time.Second,
	})
	api := &handlers.API{
		Sharing: service,
		DB:      conn,
		Log:     logger,
		Login:   handlers.LoginLimits{Attempts: config.LOGIN_ATTEMPT_LIMIT, Window: int64(config.LOGIN_ATTEMPT_WINDOW)},
	}
	pages := &web.Pages{Sharing: service, API: api}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	router.Use(utils.RequestID)
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware(logger))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	router.SetHTMLTemplate(web.Templates())

	cookieStore := gormsessions.NewStore(conn, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	router.Use(utils.NoCache)

	routes(router, &auth.Router{Base: router, Identity: auth.SessionIdentity(conn)}, api, pages)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

func routes(router gin.IRouter, authRouter *auth.Router, api *handlers.API, pages *web.Pages) {
	// User handlers
	router.POST("/user/signup", api.UserSignup)
	router.POST("/user/login", api.UserLogin)
	authRouter.GET("/user/status", api.UserStatus)
	authRouter.POST("/user/logout", api.UserLogout)
	// Album handlers
	authRouter.GET("/album/list", api.AlbumList)
	authRouter.POST("/album/create", api.AlbumCreate)
	authRouter.POST("/album/save", api.AlbumSave)
	authRouter.POST("/album/delete", api.AlbumDelete)
	authRouter.GET("/album/access", api.AlbumAccess)
	authRouter.POST("/album/join", api.AlbumJoin)
	// Membership handlers
	authRouter.GET("/album/members", api.AlbumMembers)
	authRouter.POST("/album/member/add", api.MemberAdd)
	authRouter.POST("/album/member/role", api.MemberRole)
	authRouter.POST("/album/member/remove", api.MemberRemove)
	// Invitation handlers
	authRouter.POST("/album/invite", api.InviteEmail)
	authRouter.POST("/album/invite/link", api.InviteLink)
	authRouter.GET("/album/invites", api.InviteList)
	authRouter.POST("/album/invite/cancel", api.InviteCancel)
	authRouter.POST("/album/invite/revoke", api.InviteRevoke)
	authRouter.GET("/invite/mine", api.InviteMine)
	authRouter.POST("/invite/accept", api.InviteAccept)
	authRouter.POST("/invite/decline", api.InviteDecline)

	/*
	 *	Web interface
	 */
	router.GET("/w/invite/:token/", pages.InviteView)
	router.GET("/robots.txt", web.DisallowRobots)
}

// notifiers wires every configured delivery channel, nil when none is
func notifiers(conn *gorm.DB, logger zerolog.Logger) sharing.Notifier {
	channels := push.Fanout{}
	if config.SMTP_HOST != "" {
		mailer, err := push.NewMailer(push.MailConfig{
			Host:     config.SMTP_HOST,
			Port:     config.SMTP_PORT,
			Username: config.SMTP_USERNAME,
			Password: config.SMTP_PASSWORD,
			From:     config.SMTP_FROM,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("invitation emails disabled")
		} else {
			channels = append(channels, mailer)
		}
	}
	if config.PUSH_SERVER != "" {
		channels = append(channels, push.NewPusher(push.NewClient(config.PUSH_SERVER), conn))
	}
	if len(channels) == 0 {
		logger.Warn().Msg("no invitation notice channel configured, invite links must be shared by hand")
		return nil
	}
	return channels
}
