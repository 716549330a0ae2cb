package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/models"
	"finmanager/internal/services"
)

type mockCategoryService struct {
	listFn    func() ([]models.Category, error)
	getByIDFn func(id uint) (*models.Category, error)
	createFn  func(name, description string) (*models.Category, error)
	updateFn  func(id uint, name, description string) (*models.Category, error)
	deleteFn  func(id uint) error
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func (m *mockCategoryService) ListCategories() ([]models.Category, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) CreateCategory(name, description string) (*models.Category, error) {
	if m.createFn != nil {
		return m.createFn(name, description)
	}
	return &models.Category{Base: models.Base{ID: 1}, Name: name, Description: description}, nil
}

func (m *mockCategoryService) UpdateCategory(id uint, name, description string) (*models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(id, name, description)
	}
	return &models.Category{Base: models.Base{ID: id}, Name: name, Description: description}, nil
}

func (m *mockCategoryService) DeleteCategory(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/categories", handler.ListCategories)
	r.POST("/categories", handler.CreateCategory)
	r.GET("/categories/:id", handler.GetCategoryByID)
	r.PUT("/categories/:id", handler.UpdateCategory)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_List(t *testing.T) {
	t.Run("returns bare array", func(t *testing.T) {
		svc := &mockCategoryService{
			listFn: func() ([]models.Category, error) {
				return []models.Category{
					{Base: models.Base{ID: 2}, Name: "Groceries"},
					{Base: models.Base{ID: 1}, Name: "Rent"},
				}, nil
			},
		}
		log, logs := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		items := parseJSONArray(t, rec)
		if len(items) != 2 || items[0]["name"] != "Groceries" {
			t.Errorf("unexpected body: %v", items)
		}
		entries := logs.FilterMessage("Categories fetched successfully").All()
		if len(entries) != 1 {
			t.Fatalf("expected success log, got %d entries", len(entries))
		}
		meta := entries[0].ContextMap()["metadata"].(map[string]interface{})
		if meta["count"] != int64(2) {
			t.Errorf("expected count 2, got %v", meta["count"])
		}
	})

	t.Run("empty list is []", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "GET", "/categories", "")

		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("store failure hides details", func(t *testing.T) {
		svc := &mockCategoryService{
			listFn: func() ([]models.Category, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("connection refused"))
			},
		}
		log, logs := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "connection refused") {
			t.Error("store error leaked to client")
		}
		if msg := errorMessage(t, parseJSON(t, rec)); msg != "Failed to fetch categories" {
			t.Errorf("unexpected message %q", msg)
		}
		entries := logs.FilterMessage("Failed to fetch categories").All()
		if len(entries) != 1 {
			t.Fatalf("expected one error log, got %d", len(entries))
		}
		meta := entries[0].ContextMap()["metadata"].(map[string]interface{})
		if meta["error"] != "connection refused" {
			t.Errorf("expected underlying error logged, got %v", meta["error"])
		}
	})
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotName, gotDesc string
		svc := &mockCategoryService{
			createFn: func(name, description string) (*models.Category, error) {
				gotName, gotDesc = name, description
				return &models.Category{Base: models.Base{ID: 7}, Name: name, Description: description}, nil
			},
		}
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "POST", "/categories", `{"name":"Groceries","description":"Food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotName != "Groceries" || gotDesc != "Food" {
			t.Errorf("service got %q/%q", gotName, gotDesc)
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(7) || result["name"] != "Groceries" {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "POST", "/categories", `{"description":"no name"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "POST", "/categories", `{"name":"   "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "POST", "/categories", `{"name":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			getByIDFn: func(uint) (*models.Category, error) { return nil, apperrors.ErrCategoryNotFound },
		}
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "GET", "/categories/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "GET", "/categories/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCategoryHandler_Update(t *testing.T) {
	t.Run("returns 200 with updated row", func(t *testing.T) {
		var gotID uint
		svc := &mockCategoryService{
			updateFn: func(id uint, name, description string) (*models.Category, error) {
				gotID = id
				return &models.Category{Base: models.Base{ID: id}, Name: name, Description: description}, nil
			},
		}
		log, logs := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "PUT", "/categories/5", `{"name":"Food","description":""}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotID != 5 {
			t.Errorf("expected id 5, got %d", gotID)
		}
		if parseJSON(t, rec)["name"] != "Food" {
			t.Error("expected updated name in body")
		}
		if logs.FilterMessage("Category updated successfully").Len() != 1 {
			t.Error("expected update log entry")
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			updateFn: func(uint, string, string) (*models.Category, error) { return nil, apperrors.ErrCategoryNotFound },
		}
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "PUT", "/categories/99", `{"name":"Food"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if msg := errorMessage(t, parseJSON(t, rec)); msg != "Category not found" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("returns 400 before calling the service", func(t *testing.T) {
		called := false
		svc := &mockCategoryService{
			updateFn: func(uint, string, string) (*models.Category, error) {
				called = true
				return nil, nil
			},
		}
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "PUT", "/categories/1", `{"name":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if called {
			t.Error("service should not be called on invalid input")
		}
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("returns confirmation message", func(t *testing.T) {
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, log))

		rec := doRequest(r, "DELETE", "/categories/4", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["message"] != "Category deleted successfully" {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteFn: func(uint) error { return apperrors.ErrCategoryNotFound },
		}
		log, _ := newObservedLogger()
		r := setupCategoryRouter(NewCategoryHandler(svc, log))

		rec := doRequest(r, "DELETE", "/categories/4", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}
