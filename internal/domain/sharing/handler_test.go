package sharing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestServer(svc *Service) *echo.Echo {
	e := echo.New()
	NewHandler(svc).RegisterRoutes(e.Group("/api"))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestShareHandler(t *testing.T) {
	recID := uuid.New()
	e := newTestServer(NewService(newMockRepo(), newMockDirectory(recID)))

	rec := doJSON(e, http.MethodPost, "/api/records/"+recID.String()+"/share",
		`{"email":"friend@example.com","downloadPermission":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"viewPermission":true`) ||
		!strings.Contains(body, `"downloadPermission":true`) ||
		!strings.Contains(body, `"resharePermission":false`) {
		t.Errorf("body = %s", body)
	}
}

func TestShareHandlerRecordNotFound(t *testing.T) {
	e := newTestServer(NewService(newMockRepo(), newMockDirectory()))

	rec := doJSON(e, http.MethodPost, "/api/records/"+uuid.NewString()+"/share",
		`{"email":"friend@example.com"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Health record not found") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestListSharedHandlerMissingEmail(t *testing.T) {
	e := newTestServer(NewService(newMockRepo(), newMockDirectory()))

	rec := doJSON(e, http.MethodGet, "/api/records/shared", "")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Email is required") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestListSharedHandler(t *testing.T) {
	recID := uuid.New()
	svc := NewService(newMockRepo(), newMockDirectory(recID))
	e := newTestServer(svc)

	if _, err := svc.Share(context.Background(), recID, ShareInput{Email: "friend@example.com"}); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(e, http.MethodGet, "/api/records/shared?email=friend@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), recID.String()) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRevokeHandler(t *testing.T) {
	recID := uuid.New()
	svc := NewService(newMockRepo(), newMockDirectory(recID))
	e := newTestServer(svc)

	g, err := svc.Share(context.Background(), recID, ShareInput{Email: "friend@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(e, http.MethodDelete, "/api/records/share/"+g.ID.String(), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Sharing removed successfully") {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodDelete, "/api/records/share/"+g.ID.String(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("revoke absent: status = %d", rec.Code)
	}
}
