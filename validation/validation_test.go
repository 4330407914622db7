package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Surya-sourav/glass/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"John", false},
		{"", true},
		{"   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New().Required("name", tt.value)
			if v.HasErrors() != tt.wantErr {
				t.Errorf("expected errors=%v, got %v", tt.wantErr, v.HasErrors())
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"main", "renderer"}
	if New().OneOf("runtime", "main", allowed).HasErrors() {
		t.Error("expected no error for valid value")
	}
	if !New().OneOf("runtime", "worker", allowed).HasErrors() {
		t.Error("expected error for invalid value")
	}
	if New().OneOf("runtime", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorProviderID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"openai", false},
		{"openai-glass", false},
		{"OpenAI", true},
		{"-openai", true},
		{"open_ai", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := New().ProviderID("provider", tt.id).HasErrors(); got != tt.wantErr {
				t.Errorf("expected errors=%v, got %v", tt.wantErr, got)
			}
		})
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	if New().OptionalUUID("id", "").HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	if New().OptionalUUID("id", uuid.NewString()).HasErrors() {
		t.Error("expected no error for valid UUID")
	}
	if !New().OptionalUUID("id", "not-a-uuid").HasErrors() {
		t.Error("expected error for invalid UUID")
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID(uuid.NewString()) {
		t.Error("expected valid UUID")
	}
	if IsUUID(uuid.Nil.String()) {
		t.Error("expected nil UUID to be rejected")
	}
	if IsUUID("abc") {
		t.Error("expected garbage to be rejected")
	}
}

func TestValidatorValidate(t *testing.T) {
	if appErr := New().Required("name", "John").Validate(); appErr != nil {
		t.Errorf("expected nil, got %v", appErr)
	}

	v := New().Required("name", "").Required("email", "").Custom(false, "age", "too young")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	for _, f := range []string{"name", "email", "age: too young"} {
		if !strings.Contains(appErr.Message, f) {
			t.Errorf("expected %q in message, got %q", f, appErr.Message)
		}
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", appErr.Details["fields"])
	}
	if v.Err() == nil {
		t.Error("expected Err to be non-nil")
	}
}

func TestStructValidate(t *testing.T) {
	type server struct {
		Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	}
	type cfg struct {
		Runtime  string  `mapstructure:"runtime" validate:"oneof=main renderer"`
		Provider string  `json:"provider" validate:"provider_id"`
		Rate     float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
		Server   server  `mapstructure:"server"`
	}

	t.Run("valid", func(t *testing.T) {
		err := Validate(cfg{Runtime: "main", Provider: "openai-glass", Rate: 0.5, Server: server{Addr: "localhost:8080"}})
		if err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		err := Validate(cfg{Runtime: "worker", Provider: "Bad_ID", Rate: 2, Server: server{}})
		if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT, got %v", err)
		}
		appErr, _ := errors.AsAppError(err)
		for _, want := range []string{
			"runtime: must be one of: main renderer",
			"provider: must be a lowercase provider id",
			"sample_rate: must be at most 1",
			"server.addr: is required",
		} {
			if !strings.Contains(appErr.Message, want) {
				t.Errorf("expected %q in %q", want, appErr.Message)
			}
		}
	})
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{"APIKey": "a_p_i_key", "BaseURL": "base_u_r_l", "model": "model", "MaxTokens": "max_tokens"}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q): expected %q, got %q", in, want, got)
		}
	}
}
