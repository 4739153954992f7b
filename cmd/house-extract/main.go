// Command house-extract runs the listing extractor over PDF files, or over text
// piped on stdin, and prints the extracted fields.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-house-extractor/internal/config"
	"github.com/a3tai/mcp-house-extractor/internal/extraction"
	"github.com/a3tai/mcp-house-extractor/internal/logging"
	"github.com/a3tai/mcp-house-extractor/internal/pdf"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code: 0 when every input was
// extracted, 1 when any failed, 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := config.NewFlagSet("house-extract")
	fs.SetOutput(stderr)
	outputFormat := fs.String("format", formatText, "Output format: text, json")
	fromStdin := fs.Bool("stdin", false, "Read listing text from standard input instead of PDF files")
	all := fs.Bool("all", false, "Process every listing PDF under --dir")
	// Only warnings and errors by default; stdout carries the results
	logLevel := fs.Lookup("loglevel")
	logLevel.DefValue = "warn"
	_ = logLevel.Value.Set("warn")
	fs.Usage = func() { printUsage(stderr, fs) }

	cfg, err := config.Load(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if errors.Is(err, config.ErrVersionRequested) {
		fmt.Fprintf(stdout, "house-extract %s\n", config.DefaultConfig().Version)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if *outputFormat != formatText && *outputFormat != formatJSON {
		fmt.Fprintf(stderr, "Error: unsupported output format: %s\n", *outputFormat)
		return 2
	}
	if !*fromStdin && !*all && fs.NArg() == 0 {
		fmt.Fprintf(stderr, "Error: PDF file path required\n\n")
		printUsage(stderr, fs)
		return 2
	}

	logCfg := logging.FromAppConfig(cfg)
	logCfg.Output = stderr
	logger, closeLogger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer func() { _ = closeLogger() }()

	svc, err := pdf.NewService(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	reports := []*pdf.HouseInfoReport{}
	if *fromStdin {
		text, err := io.ReadAll(io.LimitReader(stdin, int64(cfg.MaxTextLength)))
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		reports = append(reports, svc.ExtractHouseInfoFromText(pdf.ExtractTextRequest{Text: string(text), FileName: "stdin"}))
	}
	paths := fs.Args()
	if *all {
		listing, err := svc.ListFiles(pdf.ListFilesRequest{})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		for _, f := range listing.Files {
			paths = append(paths, f.Path)
		}
		if len(paths) == 0 && !*fromStdin {
			fmt.Fprintf(stderr, "No listing PDFs found in %s\n", listing.Directory)
		}
	}

	for _, path := range paths {
		report, err := svc.ExtractHouseInfo(pdf.ExtractFileRequest{Path: path})
		if err != nil {
			logger.Warn("file rejected", zap.String("path", path), zap.Error(err))
			report = &pdf.HouseInfoReport{
				Metadata:  pdf.ReportMetadata{FileName: path},
				Error:     err.Error(),
				ErrorType: extraction.ClassifyError(err).String(),
			}
		}
		reports = append(reports, report)
	}

	if err := outputResults(stdout, *outputFormat, reports); err != nil {
		fmt.Fprintf(stderr, "Error outputting results: %v\n", err)
		return 1
	}

	for _, report := range reports {
		if !report.Success {
			return 1
		}
	}
	return 0
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  house-extract [OPTIONS] <pdf_file>...")
	fmt.Fprintln(w, "  house-extract [OPTIONS] --all")
	fmt.Fprintln(w, "  house-extract [OPTIONS] --stdin < listing.txt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files are resolved relative to --dir and must lie inside it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  house-extract listing.pdf")
	fmt.Fprintln(w, "  house-extract --format json --dir ~/listings maple-ave.pdf 42-main-st.pdf")
	fmt.Fprintln(w, "  pdftotext scan.pdf - | house-extract --stdin")
}

func outputResults(w io.Writer, format string, reports []*pdf.HouseInfoReport) error {
	switch format {
	case formatJSON:
		return outputJSON(w, reports)
	default:
		return outputText(w, reports)
	}
}

func outputJSON(w io.Writer, reports []*pdf.HouseInfoReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(reports) == 1 {
		return encoder.Encode(reports[0])
	}
	return encoder.Encode(reports)
}

func outputText(w io.Writer, reports []*pdf.HouseInfoReport) error {
	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if !report.Success {
			fmt.Fprintf(w, "%s: extraction failed (%s): %s\n",
				report.Metadata.FileName, report.ErrorType, report.Error)
			continue
		}

		fields := report.Data.Fields
		fmt.Fprintf(w, "%s: %d/%d fields, confidence %.1f%%\n",
			report.Metadata.FileName, fields.Len(), extraction.CanonicalFieldCount, fields.Confidence)
		for _, name := range fields.Found() {
			v, _ := fields.Get(name)
			fmt.Fprintf(w, "  %-16s %s\n", name, v)
		}
		if missing := fields.Missing(); len(missing) > 0 {
			fmt.Fprintf(w, "  missing: %v\n", missing)
		}
	}
	return nil
}
