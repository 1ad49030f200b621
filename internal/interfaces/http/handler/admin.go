package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/admin"
	"github.com/shopfront/backend/internal/application/visitor"
	"github.com/shopfront/backend/internal/domain/shop"
	"github.com/shopfront/backend/internal/infrastructure/logger"
)

// AdminCookieConfig holds session cookie settings for the admin
// surface.
type AdminCookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AdminHandler serves the visitor log and, in session mode, the
// login/dashboard pages.
type AdminHandler struct {
	BaseHandler
	admins   *admin.Service
	visitors *visitor.Recorder
	cookie   AdminCookieConfig
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admins *admin.Service, visitors *visitor.Recorder, cookie AdminCookieConfig) *AdminHandler {
	return &AdminHandler{
		admins:   admins,
		visitors: visitors,
		cookie:   cookie,
	}
}

// visitorDisplayLimit caps how many entries the admin views render.
// The store retains more; the display stays skimmable.
const visitorDisplayLimit = 50

// visitorsResponse is the visitor log payload. Count is the total
// retained, Visits the displayed newest-first slice.
type visitorsResponse struct {
	Count  int               `json:"count"`
	Visits []shop.VisitEntry `json:"visits"`
}

// ListVisitors handles GET /admin/visitors
func (h *AdminHandler) ListVisitors(c *gin.Context) {
	resp, err := h.visitorLog(c)
	if err != nil {
		logger.FromGin(c).Error("Failed to read visitor log", zap.Error(err))
		h.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to read visitor log")
		return
	}
	h.Success(c, resp)
}

func (h *AdminHandler) visitorLog(c *gin.Context) (visitorsResponse, error) {
	ctx := c.Request.Context()
	visits, err := h.visitors.Recent(ctx, visitorDisplayLimit)
	if err != nil {
		return visitorsResponse{}, err
	}
	count, err := h.visitors.Count(ctx)
	if err != nil {
		return visitorsResponse{}, err
	}
	return visitorsResponse{Count: count, Visits: visits}, nil
}

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Admin Login</title></head>
<body>
  <h1>Admin Login</h1>
  {{if .Failed}}<p>Invalid username or password.</p>{{end}}
  <form method="post" action="/login">
    <label>Username <input type="text" name="username" autocomplete="username"></label>
    <label>Password <input type="password" name="password" autocomplete="current-password"></label>
    <button type="submit">Log in</button>
  </form>
</body>
</html>`))

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Visitor Dashboard</title></head>
<body>
  <h1>Visitors ({{.Count}})</h1>
  <p><a href="/logout">Log out</a></p>
  <table border="1">
    <tr><th>Time</th><th>IP</th><th>Path</th><th>Location</th><th>Org</th></tr>
    {{range .Visits}}
    <tr>
      <td>{{.Timestamp.Format "2006-01-02 15:04:05"}}</td>
      <td>{{.IP}}</td>
      <td>{{.Path}}</td>
      <td>{{.Location.City}} {{.Location.Region}} {{.Location.Country}}</td>
      <td>{{.Location.Org}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`))

// ShowLogin handles GET /login
func (h *AdminHandler) ShowLogin(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, false)
}

// Login handles POST /login
func (h *AdminHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, expiresAt, err := h.admins.Login(username, password)
	if err != nil {
		h.renderLogin(c, http.StatusUnauthorized, true)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout handles GET /logout
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard handles GET /dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.visitorLog(c)
	if err != nil {
		logger.FromGin(c).Error("Failed to read visitor log", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to read visitor log")
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardPage.Execute(c.Writer, resp); err != nil {
		logger.FromGin(c).Error("Failed to render dashboard", zap.Error(err))
	}
}

func (h *AdminHandler) renderLogin(c *gin.Context, status int, failed bool) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := loginPage.Execute(c.Writer, gin.H{"Failed": failed}); err != nil {
		logger.FromGin(c).Error("Failed to render login page", zap.Error(err))
	}
}
