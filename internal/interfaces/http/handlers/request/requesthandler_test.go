package request

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	requestdto "github.com/reque-io/reque/internal/application/request/dto"
	"github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/interfaces/http/handlers/testutil"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateRequestUC struct {
	result *usecases.CreateRequestResult
	err    error
}

func (m *mockCreateRequestUC) Execute(_ context.Context, _ usecases.CreateRequestCommand) (*usecases.CreateRequestResult, error) {
	return m.result, m.err
}

type mockGetRequestUC struct {
	result *requestdto.RequestDTO
	err    error
}

func (m *mockGetRequestUC) Execute(_ context.Context, _ usecases.GetRequestQuery) (*requestdto.RequestDTO, error) {
	return m.result, m.err
}

type mockListRequestsUC struct {
	result *usecases.ListRequestsResult
	query  usecases.ListRequestsQuery
	err    error
}

func (m *mockListRequestsUC) Execute(_ context.Context, query usecases.ListRequestsQuery) (*usecases.ListRequestsResult, error) {
	m.query = query
	return m.result, m.err
}

type mockUpdateRequestUC struct {
	result *usecases.UpdateRequestResult
	err    error
}

func (m *mockUpdateRequestUC) Execute(_ context.Context, _ usecases.UpdateRequestCommand) (*usecases.UpdateRequestResult, error) {
	return m.result, m.err
}

type mockChangeStatusUC struct {
	result *usecases.ChangeStatusResult
	err    error
}

func (m *mockChangeStatusUC) Execute(_ context.Context, _ usecases.ChangeStatusCommand) (*usecases.ChangeStatusResult, error) {
	return m.result, m.err
}

type mockChangePriorityUC struct {
	result *usecases.ChangePriorityResult
	err    error
}

func (m *mockChangePriorityUC) Execute(_ context.Context, _ usecases.ChangePriorityCommand) (*usecases.ChangePriorityResult, error) {
	return m.result, m.err
}

type mockAssignRequestUC struct {
	result *usecases.AssignRequestResult
	cmd    usecases.AssignRequestCommand
	err    error
}

func (m *mockAssignRequestUC) Execute(_ context.Context, cmd usecases.AssignRequestCommand) (*usecases.AssignRequestResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockDeleteRequestUC struct {
	result *usecases.DeleteRequestResult
	err    error
}

func (m *mockDeleteRequestUC) Execute(_ context.Context, _ usecases.DeleteRequestCommand) (*usecases.DeleteRequestResult, error) {
	return m.result, m.err
}

type mockStatsUC struct {
	result *requestdto.StatsDTO
	err    error
}

func (m *mockStatsUC) Execute(_ context.Context, _ usecases.GetRequestStatsQuery) (*requestdto.StatsDTO, error) {
	return m.result, m.err
}

type mockPermissionsUC struct {
	result *authorization.Capabilities
	err    error
}

func (m *mockPermissionsUC) Execute(_ context.Context, _ usecases.GetRequestPermissionsQuery) (*authorization.Capabilities, error) {
	return m.result, m.err
}

type mockListActivityUC struct {
	result *usecases.ListActivityResult
	err    error
}

func (m *mockListActivityUC) Execute(_ context.Context, _ usecases.ListActivityQuery) (*usecases.ListActivityResult, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createUC      usecases.CreateRequestExecutor
	getUC         usecases.GetRequestExecutor
	listUC        usecases.ListRequestsExecutor
	updateUC      usecases.UpdateRequestExecutor
	changeStatUC  usecases.ChangeStatusExecutor
	changePrioUC  usecases.ChangePriorityExecutor
	assignUC      usecases.AssignRequestExecutor
	deleteUC      usecases.DeleteRequestExecutor
	statsUC       usecases.GetRequestStatsExecutor
	permissionsUC usecases.GetRequestPermissionsExecutor
	activityUC    usecases.ListActivityExecutor
}

func newTestRequestHandler(deps testDeps) *RequestHandler {
	return NewRequestHandler(
		deps.createUC,
		deps.getUC,
		deps.listUC,
		deps.updateUC,
		deps.changeStatUC,
		deps.changePrioUC,
		deps.assignUC,
		deps.deleteUC,
		deps.statsUC,
		deps.permissionsUC,
		deps.activityUC,
		testutil.NewMockLogger(),
	)
}

// =====================================================================
// TestRequestHandler_Create
// =====================================================================

func TestRequestHandler_Create_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockCreateRequestUC{
		result: &usecases.CreateRequestResult{
			RequestID: 1,
			Number:    "REQ-20260826-0001",
			Status:    "new",
			CreatedAt: now,
		},
	}
	handler := newTestRequestHandler(testDeps{createUC: mockUC})

	reqBody := CreateRequestRequest{
		Title:       "Broken projector in room 4",
		Description: "The projector shows a purple tint on anything white.",
		Priority:    "high",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/requests", reqBody)
	testutil.SetAuthContext(c, 1)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestRequestHandler_Create_BindError(t *testing.T) {
	handler := newTestRequestHandler(testDeps{})

	// Missing required description
	reqBody := map[string]string{"title": "only title"}
	c, w := testutil.NewTestContext(http.MethodPost, "/requests", reqBody)
	testutil.SetAuthContext(c, 1)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestRequestHandler_Create_NotAuthenticated(t *testing.T) {
	handler := newTestRequestHandler(testDeps{})

	reqBody := CreateRequestRequest{
		Title:       "Broken projector",
		Description: "details",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/requests", reqBody)
	// No auth context set

	handler.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestRequestHandler_Create_UseCaseError(t *testing.T) {
	mockUC := &mockCreateRequestUC{
		err: errors.NewValidationError("invalid priority"),
	}
	handler := newTestRequestHandler(testDeps{createUC: mockUC})

	reqBody := CreateRequestRequest{
		Title:       "Broken projector",
		Description: "details",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/requests", reqBody)
	testutil.SetAuthContext(c, 1)

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// TestRequestHandler_Get
// =====================================================================

func TestRequestHandler_Get_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockGetRequestUC{
		result: &requestdto.RequestDTO{
			ID:          1,
			Number:      "REQ-20260826-0001",
			Title:       "Broken projector",
			Description: "details",
			Status:      "new",
			Priority:    "normal",
			CreatorID:   1,
			CreatedAt:   now,
			UpdatedAt:   now,
			Comments:    []requestdto.CommentDTO{},
			Attachments: []requestdto.AttachmentDTO{},
		},
	}
	handler := newTestRequestHandler(testDeps{getUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/1", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestRequestHandler_Get_InvalidID(t *testing.T) {
	handler := newTestRequestHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/abc", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "abc")

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandler_Get_NotFound(t *testing.T) {
	mockUC := &mockGetRequestUC{
		err: errors.NewNotFoundError("request not found"),
	}
	handler := newTestRequestHandler(testDeps{getUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/99", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "99")

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestHandler_Get_Forbidden(t *testing.T) {
	mockUC := &mockGetRequestUC{
		err: errors.NewForbiddenError("you do not have access to this request"),
	}
	handler := newTestRequestHandler(testDeps{getUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/2", nil)
	testutil.SetAuthContext(c, 7)
	testutil.SetURLParam(c, "id", "2")

	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestRequestHandler_List
// =====================================================================

func TestRequestHandler_List_Success(t *testing.T) {
	now := time.Now().UTC()
	mockUC := &mockListRequestsUC{
		result: &usecases.ListRequestsResult{
			Items: []requestdto.RequestListItemDTO{
				{ID: 1, Number: "REQ-20260826-0001", Title: "Broken projector", Status: "new", Priority: "normal", CreatorID: 1, CreatedAt: now, UpdatedAt: now},
			},
			Total:    1,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestRequestHandler(testDeps{listUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests", nil)
	testutil.SetAuthContext(c, 1)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestRequestHandler_List_Filters(t *testing.T) {
	mockUC := &mockListRequestsUC{
		result: &usecases.ListRequestsResult{Items: []requestdto.RequestListItemDTO{}, Page: 2, PageSize: 10},
	}
	handler := newTestRequestHandler(testDeps{listUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetQueryParams(c, map[string]string{
		"status":      "in_progress",
		"priority":    "urgent",
		"assignee_id": "4",
		"overdue":     "true",
		"page":        "2",
		"page_size":   "10",
	})

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.query.Status)
	assert.Equal(t, "in_progress", *mockUC.query.Status)
	require.NotNil(t, mockUC.query.Priority)
	assert.Equal(t, "urgent", *mockUC.query.Priority)
	require.NotNil(t, mockUC.query.AssigneeID)
	assert.Equal(t, uint(4), *mockUC.query.AssigneeID)
	require.NotNil(t, mockUC.query.Overdue)
	assert.True(t, *mockUC.query.Overdue)
	assert.Equal(t, 2, mockUC.query.Page)
	assert.Equal(t, 10, mockUC.query.PageSize)
}

// =====================================================================
// TestRequestHandler_Update
// =====================================================================

func TestRequestHandler_Update_Success(t *testing.T) {
	mockUC := &mockUpdateRequestUC{
		result: &usecases.UpdateRequestResult{RequestID: 1, Version: 2, UpdatedAt: time.Now().UTC()},
	}
	handler := newTestRequestHandler(testDeps{updateUC: mockUC})

	reqBody := UpdateRequestRequest{Title: "Projector still broken"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1", reqBody)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestHandler_Update_Forbidden(t *testing.T) {
	mockUC := &mockUpdateRequestUC{
		err: errors.NewForbiddenError("only the creator may edit a new request"),
	}
	handler := newTestRequestHandler(testDeps{updateUC: mockUC})

	reqBody := UpdateRequestRequest{Title: "hijack attempt"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1", reqBody)
	testutil.SetAuthContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestRequestHandler_ChangeStatus
// =====================================================================

func TestRequestHandler_ChangeStatus_Success(t *testing.T) {
	mockUC := &mockChangeStatusUC{
		result: &usecases.ChangeStatusResult{
			RequestID: 1,
			OldStatus: "new",
			NewStatus: "in_progress",
			UpdatedAt: time.Now().UTC(),
		},
	}
	handler := newTestRequestHandler(testDeps{changeStatUC: mockUC})

	reqBody := ChangeStatusRequest{Status: "in_progress"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/status", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.ChangeStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestHandler_ChangeStatus_InvalidValue(t *testing.T) {
	handler := newTestRequestHandler(testDeps{})

	reqBody := ChangeStatusRequest{Status: "done"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/status", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.ChangeStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandler_ChangeStatus_InvalidTransition(t *testing.T) {
	mockUC := &mockChangeStatusUC{
		err: errors.NewValidationError("cannot transition from rejected to completed"),
	}
	handler := newTestRequestHandler(testDeps{changeStatUC: mockUC})

	reqBody := ChangeStatusRequest{Status: "completed"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/status", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.ChangeStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// TestRequestHandler_ChangePriority
// =====================================================================

func TestRequestHandler_ChangePriority_Success(t *testing.T) {
	mockUC := &mockChangePriorityUC{
		result: &usecases.ChangePriorityResult{
			RequestID:   1,
			OldPriority: "normal",
			NewPriority: "urgent",
			UpdatedAt:   time.Now().UTC(),
		},
	}
	handler := newTestRequestHandler(testDeps{changePrioUC: mockUC})

	reqBody := ChangePriorityRequest{Priority: "urgent"}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/priority", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.ChangePriority(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================================
// TestRequestHandler_Assign
// =====================================================================

func TestRequestHandler_Assign_Success(t *testing.T) {
	assignee := uint(4)
	mockUC := &mockAssignRequestUC{
		result: &usecases.AssignRequestResult{RequestID: 1, AssigneeID: &assignee, UpdatedAt: time.Now().UTC()},
	}
	handler := newTestRequestHandler(testDeps{assignUC: mockUC})

	reqBody := AssignRequestRequest{AssigneeID: &assignee}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/assignee", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.Assign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.cmd.AssigneeID)
	assert.Equal(t, assignee, *mockUC.cmd.AssigneeID)
}

func TestRequestHandler_Assign_Unassign(t *testing.T) {
	mockUC := &mockAssignRequestUC{
		result: &usecases.AssignRequestResult{RequestID: 1, UpdatedAt: time.Now().UTC()},
	}
	handler := newTestRequestHandler(testDeps{assignUC: mockUC})

	// Explicit null assignee clears the assignment
	reqBody := map[string]interface{}{"assignee_id": nil}
	c, w := testutil.NewTestContext(http.MethodPut, "/requests/1/assignee", reqBody)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "1")

	handler.Assign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockUC.cmd.AssigneeID)
}

// =====================================================================
// TestRequestHandler_Delete
// =====================================================================

func TestRequestHandler_Delete_Success(t *testing.T) {
	mockUC := &mockDeleteRequestUC{
		result: &usecases.DeleteRequestResult{RequestID: 1},
	}
	handler := newTestRequestHandler(testDeps{deleteUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/requests/1", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestHandler_Delete_Forbidden(t *testing.T) {
	mockUC := &mockDeleteRequestUC{
		err: errors.NewForbiddenError("only admins or the creator may delete a request"),
	}
	handler := newTestRequestHandler(testDeps{deleteUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/requests/1", nil)
	testutil.SetAuthContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.Delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestRequestHandler_Stats
// =====================================================================

func TestRequestHandler_Stats_Success(t *testing.T) {
	mockUC := &mockStatsUC{
		result: &requestdto.StatsDTO{
			Total:      12,
			ByStatus:   map[string]int64{"new": 4, "in_progress": 5, "completed": 3},
			ByPriority: map[string]int64{"normal": 8, "high": 3, "urgent": 1},
			Overdue:    2,
		},
	}
	handler := newTestRequestHandler(testDeps{statsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/stats", nil)
	testutil.SetAuthContext(c, 1)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

// =====================================================================
// TestRequestHandler_Permissions
// =====================================================================

func TestRequestHandler_Permissions_Success(t *testing.T) {
	mockUC := &mockPermissionsUC{
		result: &authorization.Capabilities{CanView: true, CanComment: true},
	}
	handler := newTestRequestHandler(testDeps{permissionsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/1/permissions", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.Permissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================================
// TestRequestHandler_Activity
// =====================================================================

func TestRequestHandler_Activity_Success(t *testing.T) {
	now := time.Now().UTC()
	newVal := "in_progress"
	mockUC := &mockListActivityUC{
		result: &usecases.ListActivityResult{
			Items: []requestdto.ActivityDTO{
				{ID: 1, RequestID: 1, Type: "status_changed", Field: "status", NewValue: &newVal, ActorID: 2, CreatedAt: now},
			},
			Total:    1,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestRequestHandler(testDeps{activityUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/1/activity", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.Activity(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestHandler_Activity_Forbidden(t *testing.T) {
	mockUC := &mockListActivityUC{
		err: errors.NewForbiddenError("activity is visible to staff and the creator only"),
	}
	handler := newTestRequestHandler(testDeps{activityUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/requests/1/activity", nil)
	testutil.SetAuthContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.Activity(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
