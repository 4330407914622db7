package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
	if New(ErrCodeNotFound, "nf", http.StatusNotFound).Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestUnsupportedProvider(t *testing.T) {
	err := UnsupportedProvider("LLM", "not-a-real-provider")
	if err.Code != ErrCodeUnsupportedProvider {
		t.Errorf("expected UNSUPPORTED_PROVIDER, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Message != "Unsupported LLM provider: not-a-real-provider" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["capability"] != "LLM" || err.Details["provider"] != "not-a-real-provider" {
		t.Errorf("unexpected details %v", err.Details)
	}
	if err.Retryable {
		t.Error("unsupported provider should not be retryable")
	}
}

func TestWrongProcess(t *testing.T) {
	err := WrongProcess("Whisper STT")
	if !strings.Contains(err.Error(), "only available in main process") {
		t.Errorf("unexpected error text %q", err.Error())
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
}

func TestInvalidAPIKey(t *testing.T) {
	err := InvalidAPIKey("openai")
	if err.Code != ErrCodeInvalidAPIKey || err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("unexpected error %+v", err)
	}
}

func TestConstructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"NotFound", NotFound("provider", "x"), ErrCodeNotFound, http.StatusNotFound},
		{"InvalidInput", InvalidInput("f", "bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"Validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"MissingField", MissingField("api_key"), ErrCodeMissingField, http.StatusBadRequest},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
		{"ExternalService", ExternalServiceError("openai", nil), ErrCodeExternalService, http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestNotFound_EmptyID(t *testing.T) {
	err := NotFound("provider", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestWithCauseAndUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := ExternalServiceError("ollama", nil).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: dial tcp: refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestWithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details)
	}
}

func TestToResponse(t *testing.T) {
	resp := UnsupportedProvider("STT", "anthropic").ToResponse()
	if resp.Error.Code != ErrCodeUnsupportedProvider {
		t.Errorf("expected code in body, got %s", resp.Error.Code)
	}
	if resp.Error.Details["provider"] != "anthropic" {
		t.Errorf("expected provider detail, got %v", resp.Error.Details)
	}
}

func TestResponseFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"app error", UnsupportedProvider("LLM", "deepgram"), http.StatusBadRequest, ErrCodeUnsupportedProvider},
		{"wrapped app error", fmt.Errorf("dispatch: %w", MissingField("audio")), http.StatusBadRequest, ErrCodeMissingField},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
		{"nil error", nil, http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := ResponseFor(tt.err, "req-1")
			if status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-1" {
				t.Errorf("expected request id req-1, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if Resolve(nil) != nil {
		t.Error("expected nil for nil error")
	}
	orig := InvalidAPIKey("openai")
	if got := Resolve(fmt.Errorf("wrap: %w", orig)); got != orig {
		t.Errorf("expected the wrapped AppError, got %v", got)
	}
	if got := Resolve(stderrors.New("x")); got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
}

func TestAsAppErrorAndHasCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", UnsupportedProvider("STT", "x"))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeUnsupportedProvider {
		t.Fatalf("expected wrapped AppError, got %v", wrapped)
	}
	if !HasCode(wrapped, ErrCodeUnsupportedProvider) {
		t.Error("expected HasCode to match")
	}
	if HasCode(stderrors.New("plain"), ErrCodeUnsupportedProvider) {
		t.Error("expected HasCode false for plain error")
	}
}
