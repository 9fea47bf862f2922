package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cart-bundler/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBundleService is a mock implementation of BundleService.
type MockBundleService struct {
	mock.Mock
}

func (m *MockBundleService) GetAll(ctx context.Context, limit, offset int) ([]model.BundleRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BundleRecord), args.Error(1)
}

func (m *MockBundleService) GetByID(ctx context.Context, id int) (*model.BundleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BundleRecord), args.Error(1)
}

func (m *MockBundleService) Put(ctx context.Context, id int, req *model.BundleRequest) (*model.BundleRecord, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BundleRecord), args.Error(1)
}

func (m *MockBundleService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBundleService) AttributeFor(ctx context.Context, id int) (*model.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attribute), args.Error(1)
}

var testRules = json.RawMessage(`[{"productsCount":1,"discount":5}]`)

func TestBundleHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	testBundles := []model.BundleRecord{
		{ID: 1, Strategy: "grouped", Rules: testRules},
	}

	tests := []struct {
		name           string
		method         string
		queryParams    string
		mockReturn     []model.BundleRecord
		mockError      error
		expectedStatus int
		expectService  bool
		limit          int
		offset         int
	}{
		{
			name:           "Success with default pagination",
			method:         http.MethodGet,
			mockReturn:     testBundles,
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          10,
			offset:         0,
		},
		{
			name:           "Success with custom pagination",
			method:         http.MethodGet,
			queryParams:    "?limit=5&offset=10",
			mockReturn:     testBundles,
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          5,
			offset:         10,
		},
		{
			name:           "Invalid limit",
			method:         http.MethodGet,
			queryParams:    "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid offset",
			method:         http.MethodGet,
			queryParams:    "?offset=xyz",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Store disabled",
			method:         http.MethodGet,
			mockError:      model.ErrStoreDisabled,
			expectedStatus: http.StatusServiceUnavailable,
			expectService:  true,
			limit:          10,
			offset:         0,
		},
		{
			name:           "Service error",
			method:         http.MethodGet,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
			limit:          10,
			offset:         0,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBundleService)
			if tt.expectService {
				svc.On("GetAll", mock.Anything, tt.limit, tt.offset).Return(tt.mockReturn, tt.mockError)
			}

			h := NewBundleHandler(svc, logger)

			req := httptest.NewRequest(tt.method, "/api/bundles"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			h.GetAll(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectService {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestBundleHandler_Item(t *testing.T) {
	logger := zerolog.Nop()

	record := &model.BundleRecord{ID: 7, Strategy: "grouped", Rules: testRules}
	catalog := `[{"id":7,"rules":[{"productsCount":1,"discount":5}]}]`

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setup          func(svc *MockBundleService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Get bundle",
			method: http.MethodGet,
			path:   "/api/bundles/7",
			setup: func(svc *MockBundleService) {
				svc.On("GetByID", mock.Anything, 7).Return(record, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Get missing bundle",
			method: http.MethodGet,
			path:   "/api/bundles/8",
			setup: func(svc *MockBundleService) {
				svc.On("GetByID", mock.Anything, 8).Return(nil, model.ErrBundleNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeBundleNotFound,
		},
		{
			name:   "Put bundle",
			method: http.MethodPut,
			path:   "/api/bundles/7",
			body:   `{"strategy": "grouped", "rules": [{"productsCount": 1, "discount": 5}]}`,
			setup: func(svc *MockBundleService) {
				svc.On("Put", mock.Anything, 7, mock.MatchedBy(func(req *model.BundleRequest) bool {
					return req.Strategy == "grouped" && len(req.Rules) > 0
				})).Return(record, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Put invalid rules",
			method: http.MethodPut,
			path:   "/api/bundles/7",
			body:   `{"rules": [{}]}`,
			setup: func(svc *MockBundleService) {
				svc.On("Put", mock.Anything, 7, mock.Anything).
					Return(nil, model.NewDomainError(model.ErrCodeInvalidCatalog, "Bundle rules are invalid"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   model.ErrCodeInvalidCatalog,
		},
		{
			name:           "Put malformed body",
			method:         http.MethodPut,
			path:           "/api/bundles/7",
			body:           `{"rules": `,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:   "Delete bundle",
			method: http.MethodDelete,
			path:   "/api/bundles/7",
			setup: func(svc *MockBundleService) {
				svc.On("Delete", mock.Anything, 7).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "Catalog attribute",
			method: http.MethodGet,
			path:   "/api/bundles/7/attribute",
			setup: func(svc *MockBundleService) {
				svc.On("AttributeFor", mock.Anything, 7).Return(&model.Attribute{Key: "zpBundles", Value: &catalog}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown sub-resource",
			method:         http.MethodGet,
			path:           "/api/bundles/7/lines",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Non-numeric ID",
			method:         http.MethodGet,
			path:           "/api/bundles/abc",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidBundleID,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			path:           "/api/bundles/7",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   model.ErrCodeMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBundleService)
			if tt.setup != nil {
				tt.setup(svc)
			}

			h := NewBundleHandler(svc, logger)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Item(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var body model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestBundleHandler_AttributeBody(t *testing.T) {
	catalog := `[{"id":7,"rules":[]}]`
	svc := new(MockBundleService)
	svc.On("AttributeFor", mock.Anything, 7).Return(&model.Attribute{Key: "zpBundles", Value: &catalog}, nil)

	h := NewBundleHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/bundles/7/attribute", nil)
	w := httptest.NewRecorder()

	h.Item(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key": "zpBundles", "value": "[{\"id\":7,\"rules\":[]}]"}`, w.Body.String())
}

func TestParseBundlePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		expectID  int
		expectSub string
		expectOK  bool
	}{
		{name: "Bare ID", path: "/api/bundles/12", expectID: 12, expectOK: true},
		{name: "Trailing slash", path: "/api/bundles/12/", expectID: 12, expectOK: true},
		{name: "Sub-resource", path: "/api/bundles/12/attribute", expectID: 12, expectSub: "attribute", expectOK: true},
		{name: "Empty ID", path: "/api/bundles/", expectOK: false},
		{name: "Non-numeric ID", path: "/api/bundles/x1", expectOK: false},
		{name: "Other prefix", path: "/api/cart/12", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, sub, ok := parseBundlePath(tt.path)

			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectID, id)
				assert.Equal(t, tt.expectSub, sub)
			}
		})
	}
}
