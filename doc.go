// Package md2html converts lightweight markup documents to HTML.
//
// # Quick Start
//
// Create a converter, convert text, and close when done:
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Text: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// Content problems never fail a conversion. A malformed link, an over-long
// heading marker or an unknown extension is reported as a Diagnostic in
// result.Diagnostics and the affected span or line gets a fallback rendering.
//
// # Conversion Pipeline
//
// The native engine runs these stages:
//
//  1. Decoding of raw bytes (UTF-8, UTF-16/32 by BOM, GBK, Big5, EUC-JP, EUC-KR)
//  2. Pre-split escaping of "&" and "<" plus extension substitutions
//  3. Inline patterns per line: code, emphasis, strong, link, image
//  4. Section building and block rendering (headings, quotes, code, lists)
//  5. Assembly inside a fixed HTML5 header and footer
//
// WithEngine(EngineGoldmark) swaps stages 2 to 4 for goldmark (GFM,
// footnotes, chroma highlighting classes). Extensions do not apply to it.
//
// # Extensions
//
// Named extensions append inline patterns or substitutions before the first
// conversion:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithExtensions("highlight", "typography"),
//	    md2html.WithExtensionConfig("typography", map[string]any{"skip": []string{"ellipsis"}}),
//	)
//
// Custom extensions are registered with WithExtension and enabled by name.
//
// # PDF Export
//
// Set Input.PDF to also render the document with headless Chrome:
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Raw:       data,
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	    PDF:       true,
//	})
//
// The go-rod library downloads a managed Chromium on first use
// (~/.cache/rod/browser/). For containers and CI set ROD_NO_SANDBOX=1;
// ROD_BROWSER_BIN selects a custom Chrome binary.
//
// # Parallel Processing
//
// For batch conversion, ConverterPool hands out independent converters:
//
//	pool := md2html.NewConverterPool(4, md2html.WithSafeMode(true))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package md2html
