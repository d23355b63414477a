package handlers

import (
	"context"
	"net/http"
	"time"

	"roast_advisor/internal/engine"
	"roast_advisor/internal/models"
	"roast_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
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

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSessions struct {
	session      models.Session
	getErr       error
	configureErr error
	resetErr     error

	lastParams     service.SessionParams
	configureCalls int
	resetCalls     int
}

func (m *mockSessions) Get(ctx context.Context) (models.Session, error) {
	return m.session, m.getErr
}
func (m *mockSessions) Configure(ctx context.Context, p service.SessionParams) (models.Session, error) {
	m.configureCalls++
	m.lastParams = p
	if m.configureErr != nil {
		return models.Session{}, m.configureErr
	}
	if p.TargetTemp != nil {
		m.session.TargetTemp = *p.TargetTemp
	}
	if p.DisplayUnit != nil {
		m.session.DisplayUnit = *p.DisplayUnit
	}
	return m.session, nil
}
func (m *mockSessions) Reset(ctx context.Context) (models.Session, error) {
	m.resetCalls++
	return m.session, m.resetErr
}

type mockReadings struct {
	list   []models.Reading
	result models.Reading
	err    error

	lastID     string
	lastParams service.ReadingParams
	calls      int
}

func (m *mockReadings) Add(ctx context.Context, p service.ReadingParams) (models.Reading, error) {
	m.calls++
	m.lastParams = p
	return m.result, m.err
}
func (m *mockReadings) List(ctx context.Context) ([]models.Reading, error) {
	return m.list, m.err
}
func (m *mockReadings) Edit(ctx context.Context, id string, p service.ReadingParams) (models.Reading, error) {
	m.calls++
	m.lastID = id
	m.lastParams = p
	return m.result, m.err
}
func (m *mockReadings) Delete(ctx context.Context, id string) error {
	m.calls++
	m.lastID = id
	return m.err
}

type mockOven struct {
	event   models.OvenEvent
	history []models.OvenEvent
	err     error

	lastParams service.OvenParams
	lastOffAt  time.Time
	lastFilter service.OvenFilter
	calls      int
}

func (m *mockOven) SetTemp(ctx context.Context, p service.OvenParams) (models.OvenEvent, error) {
	m.calls++
	m.lastParams = p
	return m.event, m.err
}
func (m *mockOven) TurnOff(ctx context.Context, at time.Time) (models.OvenEvent, error) {
	m.calls++
	m.lastOffAt = at
	return m.event, m.err
}
func (m *mockOven) TurnOn(ctx context.Context, p service.OvenParams) (models.OvenEvent, error) {
	m.calls++
	m.lastParams = p
	return m.event, m.err
}
func (m *mockOven) History(ctx context.Context, f service.OvenFilter) ([]models.OvenEvent, error) {
	m.lastFilter = f
	return m.history, m.err
}

type mockAdvisor struct {
	report service.AdviceReport
	resp   *engine.Responsiveness
	err    error
	calls  int
}

func (m *mockAdvisor) Advise(ctx context.Context) (service.AdviceReport, error) {
	m.calls++
	return m.report, m.err
}
func (m *mockAdvisor) Responsiveness(ctx context.Context) (*engine.Responsiveness, models.Session, error) {
	return m.resp, m.report.Session, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
