// Package html2pdf converts a web page saved with "Save Page As" (an HTML
// file plus its "<stem>_files" asset folder) into a PDF, after stripping
// every reference to a CDN that would otherwise stall or break rendering.
//
// # Quick Start
//
//	conv, err := html2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, html2pdf.Input{
//	    HTMLPath:   "gpt.html",
//	    OutputPath: "gpt.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.OutputPath)
//
// # Conversion Steps
//
//  1. The HTML file is read (invalid UTF-8 is dropped) and sanitized:
//     script tags, link tags and bare https URLs pointing at a stripped
//     domain are removed.
//  2. The sanitized HTML and a copy of the asset folder are written to a
//     temporary workspace. Stylesheets in the copy lose their @font-face
//     blocks and URLs on a stripped domain. The source files are untouched.
//  3. The workspace page is rendered by the selected Engine.
//  4. The workspace is removed, whether rendering succeeded or not.
//
// # Engines
//
// EngineHeadlessBrowser (the default) prints with headless Chrome through
// go-rod, downloading Chromium on first use. Set ROD_BROWSER_BIN or use
// WithBrowserBin to point at an installed browser.
//
// EngineExternalBinary runs wkhtmltopdf found on PATH:
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithEngine(html2pdf.EngineExternalBinary),
//	    html2pdf.WithTimeout(2*time.Minute),
//	)
//
// # Stripped Domains
//
// By default only cdn.oaistatic.com is stripped. Use WithDomains to replace
// the list:
//
//	html2pdf.WithDomains("cdn.oaistatic.com", "cdn.example-cdn.test")
//
// Matching is textual and limited to https URLs. An @font-face block is
// matched up to its first closing brace.
//
// # Error Handling
//
// Errors wrap sentinel values and can be checked with errors.Is:
//
//	if errors.Is(err, html2pdf.ErrHTMLNotFound) { ... }
//	if errors.Is(err, html2pdf.ErrBackendUnavailable) { ... }
//	if errors.Is(err, html2pdf.ErrBackendFailed) { ... }
package html2pdf
