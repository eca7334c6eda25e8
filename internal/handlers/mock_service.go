package handlers

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpToken   string
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (string, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpToken, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCatalog struct {
	addProduct  models.Product
	addErr      error
	getProduct  models.Product
	getErr      error
	listResp    []models.Product
	listErr     error
	updProduct  models.Product
	updErr      error
	deleteErr   error
	addCalls    int
	getCalls    int
	listCalls   int
	updateCalls int
	deleteCalls int
	lastParams  service.ProductParams
	lastID      int
}

func (m *mockCatalog) Add(ctx context.Context, p service.ProductParams) (models.Product, error) {
	m.addCalls++
	m.lastParams = p
	return m.addProduct, m.addErr
}
func (m *mockCatalog) Get(ctx context.Context, id int) (models.Product, error) {
	m.getCalls++
	m.lastID = id
	return m.getProduct, m.getErr
}
func (m *mockCatalog) List(ctx context.Context) ([]models.Product, error) {
	m.listCalls++
	return m.listResp, m.listErr
}
func (m *mockCatalog) Update(ctx context.Context, id int, p service.ProductParams) (models.Product, error) {
	m.updateCalls++
	m.lastID = id
	m.lastParams = p
	return m.updProduct, m.updErr
}
func (m *mockCatalog) Delete(ctx context.Context, id int) error {
	m.deleteCalls++
	m.lastID = id
	return m.deleteErr
}

type mockAudit struct {
	resp       []models.CatalogEvent
	err        error
	lastFilter service.EventFilter
}

func (m *mockAudit) List(ctx context.Context, f service.EventFilter) ([]models.CatalogEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockAudit) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
