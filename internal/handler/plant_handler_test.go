package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"plantstore/internal/config"
	"plantstore/internal/domain"
	"plantstore/pkg/token"
	"plantstore/pkg/utils"
)

type fakePlantService struct {
	addCalls    int
	updateCalls int
	removeCalls int
	lastInput   domain.PlantInput
	lastUpdate  domain.PlantUpdate
	lastID      string
	plant       *domain.Plant
	plants      []domain.Plant
	err         error
}

func (f *fakePlantService) Add(_ context.Context, in domain.PlantInput, _ []string) (*domain.Plant, error) {
	f.addCalls++
	f.lastInput = in
	return f.plant, f.err
}

func (f *fakePlantService) Update(_ context.Context, id string, upd domain.PlantUpdate, _ []string) (*domain.Plant, error) {
	f.updateCalls++
	f.lastID = id
	f.lastUpdate = upd
	return f.plant, f.err
}

func (f *fakePlantService) Remove(_ context.Context, idOrName string) error {
	f.removeCalls++
	f.lastID = idOrName
	return f.err
}

func (f *fakePlantService) Get(_ context.Context, id string) (*domain.Plant, error) {
	f.lastID = id
	return f.plant, f.err
}

func (f *fakePlantService) List(_ context.Context) ([]domain.Plant, error) {
	return f.plants, f.err
}

func fernPlant() *domain.Plant {
	return &domain.Plant{
		ID:          primitive.NewObjectID(),
		Name:        "Fern",
		Description: "Shade plant",
		Price:       10,
		Category:    "indoor",
		Images:      []string{utils.PlaceholderSVG(150, 150, "Plant Image")},
		Date:        time.Now(),
	}
}

func newPlantRouter(t *testing.T, svc *fakePlantService, mgr *token.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		UploadDir:      t.TempDir(),
		MaxUploadSize:  10 * 1024 * 1024,
		AllowedFormats: []string{".jpg", ".jpeg", ".png"},
	}
	h := NewPlantHandler(svc, cfg, zap.NewNop())
	adminOnly := AdminAuth(mgr, zap.NewNop())

	r := gin.New()
	plant := r.Group("/api/plant")
	{
		plant.POST("/add", adminOnly, h.AddPlant)
		plant.PUT("/update/:id", adminOnly, h.UpdatePlant)
		plant.DELETE("/delete/:id", adminOnly, h.RemovePlant)
		plant.GET("/single/:id", h.SinglePlant)
		plant.GET("/list", h.ListPlants)
		plant.GET("/manage", adminOnly, h.ManagePlants)
	}
	return r
}

func adminToken(t *testing.T, mgr *token.Manager) string {
	t.Helper()
	tok, err := mgr.Issue("admin@plantstore.local", token.RoleAdmin)
	require.NoError(t, err)
	return tok
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAddPlantCreated(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{plant: fernPlant()}
	r := newPlantRouter(t, svc, mgr)

	buf, contentType := multipartBody(t, map[string]string{
		"name":        "Fern",
		"description": "Shade plant",
		"price":       "10",
		"category":    "indoor",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/plant/add", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	plant := body["plant"].(map[string]any)
	images := plant["images"].([]any)
	require.Len(t, images, 1)
	assert.True(t, strings.HasPrefix(images[0].(string), "data:"))

	assert.Equal(t, 1, svc.addCalls)
	assert.Equal(t, "Fern", svc.lastInput.Name)
	assert.Equal(t, 10.0, svc.lastInput.Price)
}

func TestAddPlantWithoutTokenTouchesNothing(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{plant: fernPlant()}
	r := newPlantRouter(t, svc, mgr)

	buf, contentType := multipartBody(t, map[string]string{"name": "Fern"})
	req := httptest.NewRequest(http.MethodPost, "/api/plant/add", buf)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, svc.addCalls, "no catalog mutation may happen before the gate")
}

func TestAddPlantValidationFailureIs500(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{plant: fernPlant()}
	r := newPlantRouter(t, svc, mgr)

	// price missing entirely
	buf, contentType := multipartBody(t, map[string]string{
		"name":        "Fern",
		"description": "Shade plant",
		"category":    "indoor",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/plant/add", buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, svc.addCalls)
}

func TestUpdatePlantPartialFields(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	plant := fernPlant()
	plant.StockQuantity = 5
	svc := &fakePlantService{plant: plant}
	r := newPlantRouter(t, svc, mgr)

	buf, contentType := multipartBody(t, map[string]string{"stockQuantity": "5"})
	req := httptest.NewRequest(http.MethodPut, "/api/plant/update/"+plant.ID.Hex(), buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plant.ID.Hex(), svc.lastID)
	require.NotNil(t, svc.lastUpdate.StockQuantity)
	assert.Equal(t, 5, *svc.lastUpdate.StockQuantity)
	assert.Nil(t, svc.lastUpdate.Name, "absent fields stay nil")
	assert.Nil(t, svc.lastUpdate.Images, "images are never set from the form")
}

func TestUpdatePlantNotFound(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{err: domain.ErrNotFound}
	r := newPlantRouter(t, svc, mgr)

	buf, contentType := multipartBody(t, map[string]string{"name": "Fern"})
	req := httptest.NewRequest(http.MethodPut, "/api/plant/update/"+primitive.NewObjectID().Hex(), buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestRemovePlantOK(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{}
	r := newPlantRouter(t, svc, mgr)

	req := httptest.NewRequest(http.MethodDelete, "/api/plant/delete/some-plant", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
	assert.Equal(t, "some-plant", svc.lastID)
}

func TestRemovePlantNotFound(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{err: domain.ErrNotFound}
	r := newPlantRouter(t, svc, mgr)

	req := httptest.NewRequest(http.MethodDelete, "/api/plant/delete/zzz", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSinglePlantNotFound(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{err: domain.ErrNotFound}
	r := newPlantRouter(t, svc, mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/plant/single/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPlantsIsPublic(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{plants: []domain.Plant{*fernPlant()}}
	r := newPlantRouter(t, svc, mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/plant/list", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["plants"].([]any), 1)
}

func TestManagePlantsRequiresAdmin(t *testing.T) {
	mgr := token.NewManager("secret", time.Hour)
	svc := &fakePlantService{plants: []domain.Plant{*fernPlant()}}
	r := newPlantRouter(t, svc, mgr)

	req := httptest.NewRequest(http.MethodGet, "/api/plant/manage", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/plant/manage", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, mgr))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["data"].([]any), 1)
}
