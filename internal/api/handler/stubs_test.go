package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// newTestContext builds an echo context for a JSON request, authenticated
// as emp when it is non-nil.
func newTestContext(method, target, body string, emp *domain.Employee) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if emp != nil {
		c.Set("employee", emp)
	}
	return e, c, rec
}

// run calls h and renders a returned error the way Echo would.
func run(e *echo.Echo, c echo.Context, h echo.HandlerFunc) error {
	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return err
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

var admin = &domain.Employee{ID: "65f0c0ffee0000000000000a", EmpID: "E001", Name: "Asha", Role: "Manager", IsAdmin: true}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Employee, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, empID string) (*domain.Employee, error) {
	return nil, domain.ErrUnauthenticated
}

type stubLedger struct {
	submitFn     func(ctx context.Context, in ports.ClientSubmission) (*ports.SubmitResult, error)
	deleteTaskFn func(ctx context.Context, taskID, actor string) (*ports.DeleteTaskResult, error)
}

func (s *stubLedger) SubmitClient(ctx context.Context, in ports.ClientSubmission) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubLedger) DeleteTask(ctx context.Context, taskID, actor string) (*ports.DeleteTaskResult, error) {
	return s.deleteTaskFn(ctx, taskID, actor)
}

type stubClientService struct {
	listFn   func(ctx context.Context, archived bool) ([]*domain.Client, error)
	updateFn func(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubClientService) List(ctx context.Context, archived bool) ([]*domain.Client, error) {
	return s.listFn(ctx, archived)
}

func (s *stubClientService) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubClientService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubTaskService struct {
	listFn       func(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	createFn     func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error)
	updateFn     func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	efficiencyFn func(ctx context.Context) ([]domain.TeamTotals, error)
}

func (s *stubTaskService) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	return s.listFn(ctx, filter)
}

func (s *stubTaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, in)
}

func (s *stubTaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubTaskService) TeamEfficiency(ctx context.Context) ([]domain.TeamTotals, error) {
	return s.efficiencyFn(ctx)
}

type stubEmployeeService struct {
	listFn   func(ctx context.Context, team string) ([]*domain.Employee, error)
	getFn    func(ctx context.Context, empID string) (*domain.Employee, error)
	createFn func(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error)
	updateFn func(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubEmployeeService) List(ctx context.Context, team string) ([]*domain.Employee, error) {
	return s.listFn(ctx, team)
}

func (s *stubEmployeeService) Get(ctx context.Context, empID string) (*domain.Employee, error) {
	return s.getFn(ctx, empID)
}

func (s *stubEmployeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	return s.createFn(ctx, in)
}

func (s *stubEmployeeService) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubEmployeeService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubActivityService struct {
	listFn func(ctx context.Context, clientID string, limit int) ([]domain.Activity, error)
}

func (s *stubActivityService) ListByClientID(ctx context.Context, clientID string, limit int) ([]domain.Activity, error) {
	return s.listFn(ctx, clientID, limit)
}
