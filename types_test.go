package html2pdf

// Notes:
// - PageSettings: tests validation for size and margin boundaries
// - Input: tests default path resolution
// - paper/margin: tests nil and unknown-size fallbacks

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPageSettings_Validate - PageSettings Validation
// ---------------------------------------------------------------------------

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ps      *PageSettings
		wantErr error
	}{
		{name: "nil is valid (use defaults)", ps: nil},
		{name: "defaults", ps: DefaultPageSettings()},
		{name: "letter", ps: &PageSettings{Size: PageSizeLetter, Margin: 0.5}},
		{name: "legal upper case", ps: &PageSettings{Size: "LEGAL", Margin: 1}},
		{name: "zero margin", ps: &PageSettings{Size: PageSizeA4, Margin: MinMargin}},
		{name: "max margin", ps: &PageSettings{Size: PageSizeA4, Margin: MaxMargin}},
		{name: "unknown size", ps: &PageSettings{Size: "a3", Margin: 0.4}, wantErr: ErrInvalidPageSize},
		{name: "empty size", ps: &PageSettings{Margin: 0.4}, wantErr: ErrInvalidPageSize},
		{name: "negative margin", ps: &PageSettings{Size: PageSizeA4, Margin: -0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", ps: &PageSettings{Size: PageSizeA4, Margin: MaxMargin + 0.01}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ps.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_PaperAndMargin(t *testing.T) {
	t.Parallel()

	var nilPage *PageSettings
	if got := nilPage.paper(); got != paperSizes[PageSizeA4] {
		t.Errorf("nil paper() = %+v, want A4", got)
	}
	if got := nilPage.margin(); got != DefaultMargin {
		t.Errorf("nil margin() = %v, want %v", got, DefaultMargin)
	}

	letter := &PageSettings{Size: "Letter", Margin: 1.25}
	if got := letter.paper(); got.width != 8.5 || got.height != 11 {
		t.Errorf("letter paper() = %+v, want 8.5x11", got)
	}
	if got := letter.margin(); got != 1.25 {
		t.Errorf("letter margin() = %v, want 1.25", got)
	}
}

// ---------------------------------------------------------------------------
// TestInput_Paths - Default path resolution
// ---------------------------------------------------------------------------

func TestInput_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    Input
		wantHTML string
		wantPDF  string
	}{
		{name: "both empty", input: Input{}, wantHTML: "gpt.html", wantPDF: "gpt.pdf"},
		{name: "only html", input: Input{HTMLPath: "chat.html"}, wantHTML: "chat.html", wantPDF: "gpt.pdf"},
		{name: "both set", input: Input{HTMLPath: "a.html", OutputPath: "b.pdf"}, wantHTML: "a.html", wantPDF: "b.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html, pdf := tt.input.paths()
			if html != tt.wantHTML || pdf != tt.wantPDF {
				t.Errorf("paths() = (%q, %q), want (%q, %q)", html, pdf, tt.wantHTML, tt.wantPDF)
			}
		})
	}
}
