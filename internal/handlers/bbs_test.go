package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bbs-manager/internal/middleware"
	"bbs-manager/internal/models"
	"bbs-manager/internal/service"
	"bbs-manager/internal/weight"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBBSService implements service.BBSService for handler tests.
type fakeBBSService struct {
	records []models.BBSRecord
	listErr error

	created    *service.RecordInput
	createErr  error
	createUser service.UserContext

	getRec *models.BBSRecord
	getErr error

	updateErr error
	deleteErr error
}

func (f *fakeBBSService) Create(_ context.Context, owner service.UserContext, in service.RecordInput) (*models.BBSRecord, error) {
	f.createUser = owner
	f.created = &in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.BBSRecord{}, nil
}

func (f *fakeBBSService) List(context.Context, service.UserContext) ([]models.BBSRecord, error) {
	return f.records, f.listErr
}

func (f *fakeBBSService) Get(context.Context, service.UserContext, uint) (*models.BBSRecord, error) {
	return f.getRec, f.getErr
}

func (f *fakeBBSService) Update(context.Context, service.UserContext, uint, service.RecordInput) (*models.BBSRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.getRec, nil
}

func (f *fakeBBSService) Delete(context.Context, service.UserContext, uint) error {
	return f.deleteErr
}

var testUser = service.UserContext{UserID: 1, Name: "Alice", Role: "engineer"}

func bbsRouter(svc service.BBSService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(testTemplates)
	r.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, testUser)
	})

	h := &BBSHandler{Records: svc, Log: zap.NewNop()}
	r.GET("/dashboard", h.Dashboard)
	r.GET("/bbs", h.ListRecords)
	r.POST("/add", h.Add)
	r.GET("/edit/:id", h.ShowEdit)
	r.POST("/edit/:id", h.Edit)
	r.POST("/delete/:id", h.Delete)

	return r
}

func TestBBSHandler_Dashboard(t *testing.T) {
	svc := &fakeBBSService{records: []models.BBSRecord{
		{TotalWeight: 2.5},
		{TotalWeight: 3.25},
	}}
	r := bbsRouter(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dashboard|5.75|2", rec.Body.String())
}

func TestBBSHandler_Add(t *testing.T) {
	svc := &fakeBBSService{}
	r := bbsRouter(svc)

	rec := postForm(r, "/add", url.Values{
		"project_name": {"Bridge"},
		"element_type": {"Beam"},
		"diameter":     {"10"},
		"length":       {"2"},
		"quantity":     {"5"},
		// a smuggled weight must be ignored, the service derives its own
		"total_weight": {"999"},
	}, nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bbs", rec.Header().Get("Location"))

	require.NotNil(t, svc.created)
	assert.Equal(t, testUser, svc.createUser)
	assert.Equal(t, 10.0, svc.created.Diameter)
	assert.Equal(t, 2.0, svc.created.Length)
	assert.Equal(t, 5, svc.created.Quantity)
}

func TestBBSHandler_Add_UnparsableNumber(t *testing.T) {
	svc := &fakeBBSService{}
	r := bbsRouter(svc)

	rec := postForm(r, "/add", url.Values{
		"diameter": {"not-a-number"},
		"length":   {"2"},
		"quantity": {"5"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "diameter must be a number")
	assert.Nil(t, svc.created)
}

func TestBBSHandler_Add_RejectedByService(t *testing.T) {
	svc := &fakeBBSService{createErr: service.ErrInvalidInput}
	r := bbsRouter(svc)

	rec := postForm(r, "/add", url.Values{
		"diameter": {"-10"},
		"length":   {"2"},
		"quantity": {"5"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid input")
}

func TestBBSHandler_Edit_ForeignRecordRedirects(t *testing.T) {
	svc := &fakeBBSService{updateErr: service.ErrForbidden}
	r := bbsRouter(svc)

	rec := postForm(r, "/edit/10", url.Values{
		"diameter": {"16"},
		"length":   {"3"},
		"quantity": {"8"},
	}, nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bbs", rec.Header().Get("Location"))
}

func TestBBSHandler_Edit_NotFound(t *testing.T) {
	svc := &fakeBBSService{updateErr: service.ErrNotFound}
	r := bbsRouter(svc)

	rec := postForm(r, "/edit/99", url.Values{
		"diameter": {"16"},
		"length":   {"3"},
		"quantity": {"8"},
	}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBBSHandler_ShowEdit(t *testing.T) {
	entry := &models.BBSRecord{Diameter: 10, Length: 2, Quantity: 5, TotalWeight: weight.Total(10, 2, 5)}

	t.Run("owned record renders", func(t *testing.T) {
		r := bbsRouter(&fakeBBSService{getRec: entry})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edit/10", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign record redirects", func(t *testing.T) {
		r := bbsRouter(&fakeBBSService{getErr: service.ErrForbidden})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edit/10", nil))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/bbs", rec.Header().Get("Location"))
	})

	t.Run("bad id", func(t *testing.T) {
		r := bbsRouter(&fakeBBSService{})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edit/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBBSHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		svc          *fakeBBSService
		expectedCode int
		expectedLoc  string
	}{
		{name: "success", svc: &fakeBBSService{}, expectedCode: http.StatusFound, expectedLoc: "/bbs"},
		{name: "foreign record", svc: &fakeBBSService{deleteErr: service.ErrForbidden}, expectedCode: http.StatusFound, expectedLoc: "/bbs"},
		{name: "missing record", svc: &fakeBBSService{deleteErr: service.ErrNotFound}, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bbsRouter(tt.svc)

			rec := postForm(r, "/delete/10", url.Values{}, nil)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedLoc != "" {
				assert.Equal(t, tt.expectedLoc, rec.Header().Get("Location"))
			}
		})
	}
}
