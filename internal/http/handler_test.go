package http_test

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-admin/internal/apiclient"
	"github.com/nurpe/contracts-admin/internal/authz"
	httphandler "github.com/nurpe/contracts-admin/internal/http"
	"github.com/nurpe/contracts-admin/internal/model"
	"github.com/nurpe/contracts-admin/internal/query"
	"github.com/nurpe/contracts-admin/internal/resource"
	"github.com/nurpe/contracts-admin/internal/service"
	"github.com/nurpe/contracts-admin/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// backend is a minimal stand-in for the contracts REST API.
type backend struct {
	mu           sync.Mutex
	areas        []model.BusinessArea
	contracts    []model.Contract
	writes       int
	values       []model.FinancialValue
	history      []model.ContractHistory
	failing      map[string]bool
	exportName   string
	rejectAll    bool
	deleteStatus int
	deleteBody   string
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, model.AuthResponse{Token: "backend-token"})
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	})
	mux.HandleFunc("GET /api/v1/business-areas", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.areas)
	})
	mux.HandleFunc("GET /api/v1/business-areas/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, a := range b.areas {
			if r.PathValue("id") == strconv.FormatInt(a.ID, 10) {
				writeJSON(w, http.StatusOK, a)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Business area not found"})
	})
	mux.HandleFunc("POST /api/v1/business-areas", func(w http.ResponseWriter, r *http.Request) {
		var p model.BusinessAreaPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.writes++
		a := model.BusinessArea{ID: int64(len(b.areas) + 1), Name: p.Name, Description: p.Description}
		b.areas = append(b.areas, a)
		writeJSON(w, http.StatusCreated, a)
	})
	mux.HandleFunc("DELETE /api/v1/business-areas/{id}", func(w http.ResponseWriter, r *http.Request) {
		if b.deleteStatus != 0 {
			writeJSON(w, b.deleteStatus, map[string]string{"message": b.deleteBody})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/v1/managers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Manager{{ID: 1, FirstName: "Ana", LastName: "Silva", Department: "Sales"}})
	})
	mux.HandleFunc("POST /api/v1/contracts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.writes++
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, model.Contract{ID: 99})
	})
	mux.HandleFunc("GET /api/v1/contracts/search", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		status := r.URL.Query().Get("status")
		var rows []model.Contract
		for _, c := range b.contracts {
			if status == "" || string(c.Status) == status {
				rows = append(rows, c)
			}
		}
		writeJSON(w, http.StatusOK, model.Page[model.Contract]{Content: rows, TotalElements: int64(len(rows)), TotalPages: 1})
	})
	mux.HandleFunc("GET /api/v1/contracts/stats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, model.ContractStats{Total: int64(len(b.contracts))})
	})
	mux.HandleFunc("GET /api/v1/contracts/stats/by-area", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.AreaCount{{AreaName: "North", Count: 4}})
	})
	mux.HandleFunc("GET /api/v1/contracts/stats/timeline", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.TimelinePoint{{Month: "2024-05", Count: 2}})
	})
	mux.HandleFunc("GET /api/v1/contracts/stats/top-managers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.ManagerCount{{ManagerName: "Ana Silva", ContractsCount: 3}})
	})
	mux.HandleFunc("GET /api/v1/contracts/expiring", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Contract{})
	})
	mux.HandleFunc("GET /api/v1/contracts/export/excel", func(w http.ResponseWriter, r *http.Request) {
		if b.exportName == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "no export"})
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": b.exportName}))
		_, _ = w.Write([]byte("xlsx"))
	})
	mux.HandleFunc("GET /api/v1/contracts/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, c := range b.contracts {
			if r.PathValue("id") == strconv.FormatInt(c.ID, 10) {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Contract not found"})
	})
	mux.HandleFunc("GET /api/v1/financial-values/by-contract/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		rows := []model.FinancialValue{}
		for _, v := range b.values {
			if r.PathValue("id") == strconv.FormatInt(v.ContractID, 10) {
				rows = append(rows, v)
			}
		}
		writeJSON(w, http.StatusOK, rows)
	})
	mux.HandleFunc("GET /api/v1/contract-history/contract/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.history)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		reject := b.rejectAll
		failing := b.failing[r.URL.Path]
		b.mu.Unlock()
		if reject && !strings.HasSuffix(r.URL.Path, "/auth/login") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		}
		if failing {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database unavailable"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

type app struct {
	router   *gin.Engine
	sessions *session.Manager
	store    *session.MemoryStore
	registry *query.Registry
	backend  *backend
}

func newApp(t *testing.T, be *backend) *app {
	t.Helper()
	server := httptest.NewServer(be.handler())
	t.Cleanup(server.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: server.URL + "/api/v1", Timeout: 2 * time.Second})
	require.NoError(t, err)

	log := zerolog.Nop()
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, session.Config{CookieName: "auth_token"}, log)
	registry := query.NewRegistry(log)
	enforcer, err := authz.New([]string{model.RoleAdmin}, log)
	require.NoError(t, err)

	h := httphandler.NewHandler(
		resource.New(client, resource.DefaultPolicy()),
		service.NewAuthService(client),
		sessions,
		registry,
		enforcer,
		httphandler.Options{PageSize: 10, PageSizes: []int{10, 20}},
		log,
	)
	router, err := httphandler.NewRouter(h, "test", nil)
	require.NoError(t, err)

	return &app{router: router, sessions: sessions, store: store, registry: registry, backend: be}
}

func (a *app) signIn(t *testing.T, role string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	_, err := a.sessions.Establish(context.Background(), w, "backend-token", model.User{ID: 1, Username: "tester", Role: role})
	require.NoError(t, err)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (a *app) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestProtectedPageWithoutSessionRedirects(t *testing.T) {
	a := newApp(t, &backend{})

	w := a.do(http.MethodGet, "/business-areas", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = a.do(http.MethodGet, "/api/dashboard/stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBackendRejectionRedirectsToLoginOnce(t *testing.T) {
	a := newApp(t, &backend{rejectAll: true})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/business-areas", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "<table")
	assert.Equal(t, 0, a.registry.Len())

	_, err := a.store.Load(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// the dashboard fans out to five sections; still a single redirect
	cookie = a.signIn(t, model.RoleAdmin)
	w = a.do(http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogin(t *testing.T) {
	a := newApp(t, &backend{})

	w := a.do(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Contains(t, w.Body.String(), `value="admin"`)

	w = a.do(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"secret"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec, err := a.store.Load(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", rec.Token)
	assert.Equal(t, "admin", rec.User.Username)
}

func TestLogoutClearsSession(t *testing.T) {
	a := newApp(t, &backend{})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodPost, "/logout", url.Values{}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = a.do(http.MethodGet, "/business-areas", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestCreateRedirectsBackToTable(t *testing.T) {
	be := &backend{}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodPost, "/business-areas", url.Values{
		"name":        {"North"},
		"description": {"Northern region"},
		"return":      {"q=nor&size=20"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/business-areas?"), location)
	assert.Contains(t, location, "q=nor")
	assert.Contains(t, location, "size=20")
	assert.Equal(t, 1, be.writes)

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			flash = c
		}
	}
	require.NotNil(t, flash)

	w = a.do(http.MethodGet, location, nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "North")
}

func TestReturnParamsCannotRedirectElsewhere(t *testing.T) {
	a := newApp(t, &backend{})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodPost, "/business-areas", url.Values{
		"name":        {"North"},
		"description": {"Northern region"},
		"return":      {"https://evil.example/"},
	}, cookie)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/business-areas"))
}

func TestInvalidFormStaysOpenWithoutWriting(t *testing.T) {
	be := &backend{areas: []model.BusinessArea{{ID: 1, Name: "North", Description: "Northern region"}}}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodPost, "/contracts", url.Values{
		"customerName":   {"ACME"},
		"contractNumber": {"C-2024-001"},
		"wbsCode":        {"WBS-1"},
		"projectName":    {"Rollout"},
		"areaId":         {"1"},
		"managerId":      {"1"},
		"startDate":      {"2024-06-01"},
		"endDate":        {"2024-01-01"},
		"status":         {"ACTIVE"},
	}, cookie)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, be.writes)
	body := w.Body.String()
	assert.Contains(t, body, `role="dialog"`)
	assert.Contains(t, body, `value="ACME"`)
	assert.Contains(t, body, `class="err"`)
}

func TestDeleteFailureKeepsConfirmationOpen(t *testing.T) {
	be := &backend{
		areas:        []model.BusinessArea{{ID: 1, Name: "North", Description: "Northern region"}},
		deleteStatus: http.StatusConflict,
		deleteBody:   "Business area is referenced by contracts",
	}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/business-areas/1/delete", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure you want to delete")

	w = a.do(http.MethodPost, "/business-areas/1/delete", url.Values{"label": {"North"}}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to delete business area")
	assert.Contains(t, body, "Business area is referenced by contracts")
	assert.Contains(t, body, `action="/business-areas/1/delete"`)
	assert.Contains(t, body, "Northern region")
}

func TestDeleteSuccessRedirects(t *testing.T) {
	be := &backend{areas: []model.BusinessArea{{ID: 1, Name: "North", Description: "Northern region"}}}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodPost, "/business-areas/1/delete", url.Values{"label": {"North"}, "return": {"page=0"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/business-areas"))
}

func TestViewerCannotEdit(t *testing.T) {
	be := &backend{areas: []model.BusinessArea{{ID: 1, Name: "North", Description: "Northern region"}}}
	a := newApp(t, be)
	cookie := a.signIn(t, "USER")

	w := a.do(http.MethodGet, "/business-areas", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/business-areas/1/edit")
	assert.NotContains(t, w.Body.String(), "New business area")

	w = a.do(http.MethodGet, "/business-areas/1/edit", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/business-areas/1/delete", url.Values{}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContractStatusFilter(t *testing.T) {
	be := &backend{contracts: []model.Contract{
		{ID: 1, ContractNumber: "C-1", CustomerName: "ACME", Status: model.ContractStatusActive},
		{ID: 2, ContractNumber: "C-2", CustomerName: "Globex", Status: model.ContractStatusExpired},
		{ID: 3, ContractNumber: "C-3", CustomerName: "Initech", Status: model.ContractStatusCancelled},
	}}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/contracts?filter=ACTIVE", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "ACME")
	assert.NotContains(t, body, "Globex")
	assert.NotContains(t, body, "Initech")
	assert.Contains(t, body, "1 / 3 contracts")

	w = a.do(http.MethodGet, "/contracts?filter=DRAFT", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No contracts match the current filters")
}

func TestEmptyCollectionState(t *testing.T) {
	a := newApp(t, &backend{})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/business-areas", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No business areas yet.")

	w = a.do(http.MethodGet, "/business-areas?q=zzz", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No business areas yet.")
}

func TestHealthz(t *testing.T) {
	a := newApp(t, &backend{})
	w := a.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestExportFailureReturnsToTable(t *testing.T) {
	a := newApp(t, &backend{})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/contracts/export/excel?filter=ACTIVE", nil, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/contracts?"), location)
	assert.Contains(t, location, "filter=ACTIVE")

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			flash = c
		}
	}
	require.NotNil(t, flash)

	req := httptest.NewRequest(http.MethodGet, location, nil)
	req.AddCookie(cookie)
	req.AddCookie(flash)
	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Export failed")
}

func TestDashboardSectionFailsAlone(t *testing.T) {
	be := &backend{
		contracts: []model.Contract{{ID: 1, ContractNumber: "C-1", Status: model.ContractStatusActive}},
		failing:   map[string]bool{"/api/v1/contracts/stats/timeline": true},
	}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to load timeline.")
	assert.NotContains(t, body, "2024-05")
	assert.Contains(t, body, "North")
	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "Total contracts")
	assert.NotContains(t, body, "Failed to load statistics.")
	assert.NotContains(t, body, "Failed to load contracts by area.")
	assert.NotContains(t, body, "Failed to load top managers.")
}

func TestContractDetailSectionFailsAlone(t *testing.T) {
	be := &backend{
		areas: []model.BusinessArea{{ID: 1, Name: "North"}},
		contracts: []model.Contract{{
			ID: 7, ContractNumber: "C-7", CustomerName: "ACME", AreaID: 1, ManagerID: 1,
			StartDate: "2024-01-01", EndDate: "2024-12-31", Status: model.ContractStatusActive,
		}},
		values: []model.FinancialValue{{
			ID: 1, Month: 3, Year: 2024, FinancialAmount: decimal.NewFromInt(1250),
			FinancialTypeID: 1, BusinessAreaID: 1, ContractID: 7,
		}},
		failing: map[string]bool{"/api/v1/contract-history/contract/7": true},
	}
	a := newApp(t, be)
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/contracts/7", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to load history.")
	assert.NotContains(t, body, "Failed to load financial values.")
	assert.Contains(t, body, "C-7")
	assert.Contains(t, body, model.FormatEUR(decimal.NewFromInt(1250)))
	assert.Contains(t, body, "Ana Silva")
	assert.Contains(t, body, "North")

	// the failure belongs to the section; the contract itself failing is a page error
	be.mu.Lock()
	be.failing = map[string]bool{"/api/v1/contracts/7": true}
	be.mu.Unlock()
	w = a.do(http.MethodGet, "/contracts/7", nil, a.signIn(t, model.RoleAdmin))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestExportKeepsBackendFileName(t *testing.T) {
	a := newApp(t, &backend{exportName: `Q3 "final" ä.xlsx`})
	cookie := a.signIn(t, model.RoleAdmin)

	w := a.do(http.MethodGet, "/contracts/export/excel", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "xlsx", w.Body.String())

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `Q3 "final" ä.xlsx`, params["filename"])
}
