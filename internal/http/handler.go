package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/authz"
	"github.com/nurpe/contracts-admin/internal/excel"
	"github.com/nurpe/contracts-admin/internal/http/middleware"
	"github.com/nurpe/contracts-admin/internal/pdf"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/service"
	"github.com/nurpe/contracts-admin/internal/session"
	"github.com/nurpe/contracts-admin/internal/table"
	"github.com/nurpe/contracts-admin/internal/view"
)

type Options struct {
	PageSize      int
	PageSizes     []int
	ExpiringDays  int
	SecureCookies bool
}

type Handler struct {
	res      *resource.Resources
	auth     *service.AuthService
	sessions *session.Manager
	registry *query.Registry
	authz    *authz.Enforcer
	excel    *excel.Generator
	pdf      *pdf.Generator
	opts     Options
	log      zerolog.Logger
	now      func() time.Time
}

func NewHandler(
	res *resource.Resources,
	auth *service.AuthService,
	sessions *session.Manager,
	registry *query.Registry,
	enforcer *authz.Enforcer,
	opts Options,
	log zerolog.Logger,
) *Handler {
	if opts.PageSize <= 0 {
		opts.PageSize = table.DefaultPageSize
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = []int{10, 20, 50}
	}
	if opts.ExpiringDays <= 0 {
		opts.ExpiringDays = 30
	}
	return &Handler{
		res:      res,
		auth:     auth,
		sessions: sessions,
		registry: registry,
		authz:    enforcer,
		excel:    excel.NewGenerator(),
		pdf:      pdf.NewGenerator(),
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

func (h *Handler) Register(router *gin.Engine, protected *gin.RouterGroup, api *gin.RouterGroup) {
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.GET("/healthz", h.healthz)

	protected.POST("/logout", h.logout)
	protected.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/dashboard") })
	protected.GET("/dashboard", h.dashboard)

	api.GET("/dashboard/stats", h.apiStats)
	api.GET("/dashboard/by-area", h.apiByArea)
	api.GET("/dashboard/timeline", h.apiTimeline)
	api.GET("/dashboard/top-managers", h.apiTopManagers)

	h.contractPages().register(protected)
	protected.GET("/contracts/export/excel", h.exportContractsExcel)
	protected.GET("/contracts/export/pdf", h.exportContractsPDF)
	protected.GET("/contracts/:id", h.contractDetail)
	protected.GET("/contracts/:id/sheet.pdf", h.contractSheet)

	h.businessAreaPages().register(protected)
	h.managerPages().register(protected)
	h.userPages().register(protected)
	h.financialValuePages().register(protected)
	protected.GET("/financial-values/export/excel", h.exportFinancialValues)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": h.now().UTC().Format(time.RFC3339)})
}

// render writes a full page unless the session was rejected during the
// request, in which case the session middleware redirects instead.
func (h *Handler) render(c *gin.Context, status int, name, title, section string, data any) {
	if middleware.Rejected(c) {
		return
	}
	page := view.Page{
		Title:     title,
		Section:   section,
		Flash:     h.takeFlash(c),
		RequestID: middleware.GetRequestID(c),
		Data:      data,
	}
	if s := middleware.CurrentSession(c); s != nil {
		u := s.User
		page.User = &u
	}
	c.HTML(status, name, page)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if middleware.Rejected(c) {
		return
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		h.sessions.ExpireCookie(c.Writer)
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Str("request_id", middleware.GetRequestID(c)).Msg("request failed")
	} else {
		h.log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("request rejected")
	}
	_ = c.Error(err)

	if isAPI(c) {
		c.JSON(status, gin.H{"error": apiclient.MessageOf(err, http.StatusText(status))})
		return
	}
	h.render(c, status, "error", http.StatusText(status), "", view.ErrorData{
		Status:  status,
		Message: apiclient.MessageOf(err, defaultMessage(err, status)),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, errBadID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func defaultMessage(err error, status int) string {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		return "You do not have permission to perform this action."
	case errors.Is(err, errBadID):
		return "Invalid identifier."
	case status == http.StatusBadGateway:
		return "The contracts service is unavailable. Please try again."
	default:
		return http.StatusText(status)
	}
}

var (
	errBadID  = errors.New("invalid id")
	errNoData = errors.New("no data returned")
)

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func (h *Handler) authorize(c *gin.Context, object, action string) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		return apiclient.ErrUnauthorized
	}
	return h.authz.Authorize(s.Role(), object, action)
}

func (h *Handler) affordances(c *gin.Context, object string) authz.Affordances {
	s := middleware.CurrentSession(c)
	if s == nil {
		return authz.Affordances{}
	}
	return h.authz.For(s.Role(), object)
}

func (h *Handler) params(c *gin.Context) table.Params {
	return table.ParseParams(c.Request.URL.Query(), h.opts.PageSize, h.opts.PageSizes)
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
