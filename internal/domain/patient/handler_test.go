package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestServer(repo Repository) *echo.Echo {
	e := echo.New()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api"))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreatePatientHandler(t *testing.T) {
	e := newTestServer(newMockRepo())

	rec := doJSON(e, http.MethodPost, "/api/patients",
		`{"name":"Jane Doe","gender":"female","bloodType":"O+"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"bloodType":"O+"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreatePatientHandlerFailure(t *testing.T) {
	e := newTestServer(newMockRepo())

	rec := doJSON(e, http.MethodPost, "/api/patients", `{}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Server error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetPatientHandler(t *testing.T) {
	repo := newMockRepo()
	e := newTestServer(repo)

	p, _ := NewService(repo).Create(context.Background(), Input{Name: strp("Jane Doe")})

	rec := doJSON(e, http.MethodGet, "/api/patients/"+p.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/patients/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Patient not found") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestUpdatePatientHandler(t *testing.T) {
	repo := newMockRepo()
	e := newTestServer(repo)

	p, _ := NewService(repo).Create(context.Background(), Input{Name: strp("Jane Doe")})

	rec := doJSON(e, http.MethodPut, "/api/patients/"+p.ID.String(), `{"phone":"555-0101"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"name":"Jane Doe"`) {
		t.Errorf("name dropped on partial update: %s", rec.Body.String())
	}

	rec = doJSON(e, http.MethodPut, "/api/patients/"+uuid.NewString(), `{"phone":"555"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
