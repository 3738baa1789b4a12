package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "E001",
			wantMsg: "Index out of range",
			wantCat: CategoryRuntime,
		},
		{
			name:    "value error",
			code:    "E003",
			wantMsg: "Unsupported value",
			wantCat: CategoryValue,
		},
		{
			name:    "protocol error",
			code:    "E009",
			wantMsg: "Handler not found",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E001").WithDetailf("index %d out of range [0,%d)", 4, 3)
	want := "E001: Index out of range: index 4 out of range [0,3)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	base := stderrors.New("disk full")
	err := New("E011").Wrap(base)

	if !stderrors.Is(err, base) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should include wrapped message, got %q", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New("E010").WithDetail("a.json"))
	if !stderrors.Is(err, New("E010")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E011")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("E120").Wrap(New("E003")))
	if !HasCode(err, "E120") {
		t.Error("expected E120")
	}
	if !HasCode(err, "E003") {
		t.Error("expected nested E003")
	}
	if HasCode(err, "E001") {
		t.Error("did not expect E001")
	}
	if HasCode(nil, "E001") {
		t.Error("nil error has no code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	ve := New("E003")
	if FromError(ve, "E120") != ve {
		t.Error("FromError should return existing VangoError unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E120")
	if wrapped.Code != "E120" {
		t.Errorf("Code = %q, want E120", wrapped.Code)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithDetail("index 4 out of range [0,3)").
		WithSuggestion("Re-render before dispatching another event")

	out := err.Format()
	for _, want := range []string{
		"ERROR E001: Index out of range",
		"index 4 out of range [0,3)",
		"Hint: Re-render before dispatching another event",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
