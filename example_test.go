package html2pdf_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Example converts a saved page with headless Chrome.
// Not run as a test: it needs Chrome and gpt.html in the working directory.
func Example() {
	conv, err := html2pdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), html2pdf.Input{
		HTMLPath:   "gpt.html",
		OutputPath: "gpt.pdf",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("created", result.OutputPath)
}

// Example_externalBinary renders with wkhtmltopdf and strips an extra CDN.
// Not run as a test: it needs wkhtmltopdf on PATH.
func Example_externalBinary() {
	conv, err := html2pdf.NewConverter(
		html2pdf.WithEngine(html2pdf.EngineExternalBinary),
		html2pdf.WithDomains(html2pdf.DefaultDomain, "cdn.example.com"),
		html2pdf.WithTimeout(2*time.Minute),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if _, err := conv.Convert(context.Background(), html2pdf.Input{HTMLPath: "chat.html"}); err != nil {
		fmt.Println("error:", err)
	}
}

// ExampleParseEngine shows that only the exact engine names are accepted.
func ExampleParseEngine() {
	for _, name := range []string{"", "external-binary", "External-Binary"} {
		engine, err := html2pdf.ParseEngine(name)
		if err != nil {
			fmt.Println(errors.Is(err, html2pdf.ErrInvalidEngine))
			continue
		}
		fmt.Println(engine)
	}
	// Output:
	// headless-browser
	// external-binary
	// true
}

// ExampleConverter_Convert_missingInput shows error classification with errors.Is.
func ExampleConverter_Convert_missingInput() {
	conv, err := html2pdf.NewConverter(html2pdf.WithEngine(html2pdf.EngineExternalBinary))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, err = conv.Convert(context.Background(), html2pdf.Input{HTMLPath: "does-not-exist.html"})
	fmt.Println(errors.Is(err, html2pdf.ErrHTMLNotFound))
	// Output: true
}
