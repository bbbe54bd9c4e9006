package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

func TestTaskHandler_Create(t *testing.T) {
	svc := &stubTaskService{
		createFn: func(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
			if in.Team != "design" || in.ClientID != "C012" || in.Amount["print"] != 200 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Task{ID: "t1", Team: in.Team, ClientID: in.ClientID, Status: domain.TaskStatusPending, Amount: in.Amount}, nil
		},
	}
	h := NewTaskHandler(&stubLedger{}, svc)

	body := `{"team":"design","clientID":"C012","client":"Acme","activityCode":"4312P1","amount":{"design":500,"print":200}}`
	e, c, rec := newTestContext(http.MethodPost, "/api/tasks", body, admin)
	if err := run(e, c, h.Create); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "Pending" || resp["assignedTo"] != nil {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestTaskHandler_Create_MissingTeam(t *testing.T) {
	h := NewTaskHandler(&stubLedger{}, &stubTaskService{})

	e, c, rec := newTestContext(http.MethodPost, "/api/tasks", `{"clientID":"C012"}`, admin)
	_ = run(e, c, h.Create)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestTaskHandler_List_Filters(t *testing.T) {
	svc := &stubTaskService{
		listFn: func(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
			if filter.Team != "seo" || filter.AssignedTo != "E007" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []*domain.Task{{ID: "t1", Team: "seo", AssignedTo: "E007"}}, nil
		},
	}
	h := NewTaskHandler(&stubLedger{}, svc)

	e, c, rec := newTestContext(http.MethodGet, "/api/tasks?team=seo&assignedTo=E007", "", admin)
	if err := run(e, c, h.List); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestTaskHandler_Update(t *testing.T) {
	svc := &stubTaskService{
		updateFn: func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
			if id != "t1" || patch.Status == nil || *patch.Status != "Completed" || patch.Remarks != nil {
				t.Fatalf("unexpected update %s %+v", id, patch)
			}
			return &domain.Task{ID: id, Status: *patch.Status}, nil
		},
	}
	h := NewTaskHandler(&stubLedger{}, svc)

	e, c, rec := newTestContext(http.MethodPut, "/api/tasks/t1", `{"status":"Completed"}`, admin)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := run(e, c, h.Update); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
}

func TestTaskHandler_Delete_ReportsReconciliation(t *testing.T) {
	ledger := &stubLedger{
		deleteTaskFn: func(ctx context.Context, taskID, actor string) (*ports.DeleteTaskResult, error) {
			if taskID != "t1" || actor != "E001" {
				t.Fatalf("unexpected args %s %s", taskID, actor)
			}
			return &ports.DeleteTaskResult{Outcome: ports.ReconcileApplied, ClientID: "C012", Amount: 700, TotalAmount: 300}, nil
		},
	}
	h := NewTaskHandler(ledger, &stubTaskService{})

	e, c, rec := newTestContext(http.MethodDelete, "/api/tasks/t1", "", admin)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := run(e, c, h.Delete); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp deleteTaskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Task deleted" || resp.Reconciliation.Outcome != "applied" || resp.Reconciliation.TotalAmount != 300 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestTaskHandler_Delete_NotFound(t *testing.T) {
	ledger := &stubLedger{
		deleteTaskFn: func(ctx context.Context, taskID, actor string) (*ports.DeleteTaskResult, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(ledger, &stubTaskService{})

	_, c, _ := newTestContext(http.MethodDelete, "/api/tasks/t9", "", admin)
	c.SetParamNames("id")
	c.SetParamValues("t9")

	if err := h.Delete(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Delete_Unauthenticated(t *testing.T) {
	h := NewTaskHandler(&stubLedger{}, &stubTaskService{})

	e, c, rec := newTestContext(http.MethodDelete, "/api/tasks/t1", "", nil)
	_ = run(e, c, h.Delete)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestTaskHandler_TeamEfficiency(t *testing.T) {
	svc := &stubTaskService{
		efficiencyFn: func(ctx context.Context) ([]domain.TeamTotals, error) {
			return []domain.TeamTotals{
				{Team: "seo", TotalTasks: 2, CompletedTasks: 1, TotalMinutes: 100, CompletedMinutes: 30},
				{Team: "design", TotalTasks: 3, CompletedTasks: 1},
			}, nil
		},
	}
	h := NewTaskHandler(&stubLedger{}, svc)

	e, c, rec := newTestContext(http.MethodGet, "/api/efficiency/teams", "", admin)
	if err := run(e, c, h.TeamEfficiency); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var rows []teamEfficiencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Department != "Seo Team" || rows[0].Efficiency != 30 || rows[0].TotalMinutes != 100 {
		t.Errorf("unexpected seo row: %+v", rows[0])
	}
	if rows[1].Department != "Design Team" || rows[1].Efficiency != 33 {
		t.Errorf("unexpected design row: %+v", rows[1])
	}
}
