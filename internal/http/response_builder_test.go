package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerExpenseCreated("row:7").
		TriggerFormReset().
		BodyHTML(`<div class="success">ok</div>`).
		Write(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "expense:created") || !strings.Contains(trigger, "row:7") {
		t.Errorf("unexpected HX-Trigger: %q", trigger)
	}
	if !strings.Contains(trigger, "form:reset") {
		t.Errorf("missing form:reset trigger: %q", trigger)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorResponse(http.StatusBadRequest, `<script>alert(1)</script>`).Write(rec)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped markup, got %s", body)
	}
}

func TestUnprocessableEntityError(t *testing.T) {
	rec := httptest.NewRecorder()
	UnprocessableEntityError("Please fill all fields").Write(rec)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please fill all fields") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestMethodNotAllowedError(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowedError("POST").Write(rec)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "POST" {
		t.Errorf("expected Allow: POST, got %q", allow)
	}
}
