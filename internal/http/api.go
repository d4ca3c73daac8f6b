package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"softveda-site/internal/archive"
	"softveda-site/internal/domain"
	"softveda-site/internal/service"
	"softveda-site/internal/session"
)

const (
	loginPage          = "/login.html"
	landingPage        = "/"
	userDashboardPage  = "/user-dashboard.html"
	adminDashboardPage = "/admin/dashboard.html"
)

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// WebDirs locates the HTML served by the router. Pages behind a guard live in
// ViewsDir so the public file server can never expose them.
type WebDirs struct {
	PublicDir string
	ViewsDir  string
}

// Deps lists everything the handler needs. Archiver and Metrics are optional.
type Deps struct {
	Auth      service.AuthService
	Directory service.DirectoryService
	Contacts  service.ContactService
	Archiver  archive.Manager
	Sessions  session.Store
	Cookies   *session.CookieCodec
	Cookie    CookieOptions
	Web       WebDirs
	Metrics   http.Handler
	Logger    *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	directory service.DirectoryService
	contacts  service.ContactService
	archiver  archive.Manager
	sessions  session.Store
	cookies   *session.CookieCodec
	cookie    CookieOptions
	web       WebDirs
	metrics   http.Handler
	logger    *logrus.Logger
}

func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	if deps.Cookie.Name == "" {
		deps.Cookie.Name = "softveda.sid"
	}
	if deps.Cookie.TTL <= 0 {
		deps.Cookie.TTL = 24 * time.Hour
	}
	return &Handler{
		auth:      deps.Auth,
		directory: deps.Directory,
		contacts:  deps.Contacts,
		archiver:  deps.Archiver,
		sessions:  deps.Sessions,
		cookies:   deps.Cookies,
		cookie:    deps.Cookie,
		web:       deps.Web,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(h.loadSession())

	router.GET(landingPage, h.servePublic("index.html"))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}
	router.GET("/logout", h.logout)
	router.POST("/contact", h.submitContact)
	router.GET("/api/me", h.me)

	pages := []string{http.MethodGet, http.MethodHead}
	router.Match(pages, userDashboardPage, h.requireUser(), h.serveView("user-dashboard.html"))
	router.Match(pages, adminDashboardPage, h.requireAdmin(), h.serveView("admin-dashboard.html"))
	admin := router.Group("/api/admin", h.requireAdmin())
	{
		admin.GET("/users", h.listUsers)
		admin.GET("/admins", h.listAdmins)
		admin.GET("/contacts", h.listContacts)
	}

	publicFiles := http.FileServer(gin.Dir(h.web.PublicDir, false))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		publicFiles.ServeHTTP(c.Writer, c.Request)
	})
}

type registerRequest struct {
	Role        string `form:"role" json:"role"`
	Name        string `form:"name" json:"name"`
	Email       string `form:"email" json:"email"`
	Username    string `form:"username" json:"username"`
	Password    string `form:"password" json:"password"`
	AdminSecret string `form:"adminSecret" json:"adminSecret"`
}

type loginRequest struct {
	Role            string `form:"role" json:"role"`
	EmailOrUsername string `form:"emailOrUsername" json:"emailOrUsername"`
	Password        string `form:"password" json:"password"`
}

type contactRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	res, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Role:        req.Role,
		Name:        req.Name,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		AdminSecret: req.AdminSecret,
	}, identityFrom(c))
	if err != nil {
		c.String(statusFor(err), messageFor(err))
		return
	}

	if res.ByAdmin {
		c.Redirect(http.StatusFound, adminDashboardPage)
		return
	}
	c.Redirect(http.StatusFound, loginPage)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}

	identity, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Role:       req.Role,
		Identifier: req.EmailOrUsername,
		Password:   req.Password,
	})
	if err != nil {
		c.String(statusFor(err), messageFor(err))
		return
	}

	// a session never changes identity: drop the old one and mint a fresh id
	if prev := sessionFrom(c); prev != nil {
		if err := h.sessions.Destroy(c.Request.Context(), prev.ID); err != nil {
			h.logger.WithError(err).Warn("destroy previous session")
		}
	}

	sess, err := h.sessions.Create(c.Request.Context(), identity)
	if err != nil {
		h.logger.WithError(err).Error("create session")
		c.String(http.StatusInternalServerError, messageFor(err))
		return
	}
	if err := h.setSessionCookie(c, sess); err != nil {
		h.logger.WithError(err).Error("encode session cookie")
		_ = h.sessions.Destroy(c.Request.Context(), sess.ID)
		c.String(http.StatusInternalServerError, messageFor(err))
		return
	}

	if identity.IsAdmin() {
		c.Redirect(http.StatusFound, adminDashboardPage)
		return
	}
	c.Redirect(http.StatusFound, userDashboardPage)
}

// logout answers 500 and keeps the cookie when the store cannot drop the session.
func (h *Handler) logout(c *gin.Context) {
	if sess := sessionFrom(c); sess != nil {
		if err := h.sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
			h.logger.WithError(err).Error("destroy session")
			c.String(http.StatusInternalServerError, messageFor(err))
			return
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, landingPage)
}

func (h *Handler) me(c *gin.Context) {
	identity := identityFrom(c)
	resp := MeResponse{Role: string(domain.RoleAnonymous)}
	switch {
	case identity.IsUser():
		resp = MeResponse{Role: string(domain.RoleUser), ID: identity.UserID, Name: identity.UserName}
	case identity.IsAdmin():
		resp = MeResponse{Role: string(domain.RoleAdmin), ID: identity.AdminID}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	contact, err := h.contacts.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if !errors.Is(err, service.ErrValidation) {
			h.logger.WithError(err).Error("store contact submission")
		}
		c.JSON(statusFor(err), gin.H{"success": false})
		return
	}

	if h.archiver != nil {
		if err := h.archiver.Enqueue(c.Request.Context(), contact.ID); err != nil {
			h.logger.WithError(err).WithField("contact_id", contact.ID).Warn("enqueue contact archive")
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.directory.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": messageFor(err)})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listAdmins(c *gin.Context) {
	admins, err := h.directory.ListAdmins(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list admins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": messageFor(err)})
		return
	}

	resp := make([]AdminResponse, len(admins))
	for i := range admins {
		resp[i] = adminToResponse(admins[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": messageFor(err)})
		return
	}

	resp := make([]ContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = contactToResponse(contacts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) servePublic(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(h.web.PublicDir, name))
	}
}

func (h *Handler) serveView(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(h.web.ViewsDir, name))
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
