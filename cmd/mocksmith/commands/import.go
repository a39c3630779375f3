package commands

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mocksmith/mocksmith"
	"github.com/mocksmith/mocksmith/domain"
	"github.com/mocksmith/mocksmith/importer"
	"github.com/mocksmith/mocksmith/resolver"
)

// importFlags contains flags for the import command
type importFlags struct {
	format      string
	outputDir   string
	resolveHTTP bool
	verbose     bool
}

func setupImportFlags() (*flag.FlagSet, *importFlags) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	flags := &importFlags{}

	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.outputDir, "o", "", "directory to export resource files to")
	fs.BoolVar(&flags.resolveHTTP, "resolve-http", false, "follow http(s) $ref references")
	fs.BoolVar(&flags.verbose, "v", false, "enable verbose (debug) logging")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: mocksmith import [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Compile an OpenAPI specification into a mock service definition.\n")
		_, _ = fmt.Fprintf(output, "Use '-' as the file to read from stdin.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  mocksmith import petstore.yaml\n")
		_, _ = fmt.Fprintf(output, "  mocksmith import -format json petstore.yaml\n")
		_, _ = fmt.Fprintf(output, "  mocksmith import -o ./out -resolve-http petstore.yaml\n")
		_, _ = fmt.Fprintf(output, "  cat petstore.yaml | mocksmith import -\n")
	}

	return fs, flags
}

// serviceReport is the structured output of the import command.
type serviceReport struct {
	Service   *domain.Service              `json:"service" yaml:"service"`
	Exchanges map[string][]domain.Exchange `json:"exchanges" yaml:"exchanges"`
	Resources []resourceReport             `json:"resources" yaml:"resources"`
}

type resourceReport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Size int    `json:"size" yaml:"size"`
}

// HandleImport implements the import command.
func HandleImport(args []string, stdout io.Writer) error {
	fs, flags := setupImportFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("import command requires exactly one file path")
	}
	specPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	if err := ValidateOutputDir(flags.outputDir, specPath); err != nil {
		return err
	}

	opts, err := importOptions(specPath, flags)
	if err != nil {
		return err
	}

	imp, err := importer.New(opts...)
	if err != nil {
		return fmt.Errorf("loading specification: %w", err)
	}

	svc, err := imp.ServiceDefinition()
	if err != nil {
		return fmt.Errorf("importing service: %w", err)
	}

	exchanges := make(map[string][]domain.Exchange, len(svc.Operations))
	for _, op := range svc.Operations {
		ex, err := imp.Exchanges(op)
		if err != nil {
			return fmt.Errorf("extracting exchanges for %s: %w", op.Name, err)
		}
		exchanges[op.Name] = ex
	}
	resources := imp.ResourceDefinitions(svc)

	if flags.outputDir != "" {
		if err := exportResources(flags.outputDir, resources); err != nil {
			return err
		}
	}

	if flags.format != FormatText {
		report := serviceReport{Service: svc, Exchanges: exchanges}
		for _, res := range resources {
			report.Resources = append(report.Resources, resourceReport{
				Name: res.Name, Type: string(res.Type), Size: len(res.Content),
			})
		}
		return OutputStructured(stdout, report, flags.format)
	}

	printServiceReport(stdout, specPath, svc, exchanges, resources)
	return nil
}

// importOptions assembles the importer options for the given input path.
func importOptions(specPath string, flags *importFlags) ([]importer.Option, error) {
	var opts []importer.Option

	if specPath == StdinFilePath {
		opts = append(opts, importer.WithReader(os.Stdin), importer.WithSourceName("stdin"))
	} else {
		opts = append(opts, importer.WithFilePath(specPath))
	}

	if flags.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, importer.WithLogger(importer.NewSlogAdapter(logger)))
	}

	if flags.resolveHTTP {
		baseDir := "."
		if specPath != StdinFilePath {
			baseDir = filepath.Dir(specPath)
		}
		opts = append(opts, importer.WithResolver(
			resolver.NewWithHTTP(baseDir, "", httpFetcher())))
	}
	return opts, nil
}

// httpFetcher returns a fetcher for http(s) $ref targets.
func httpFetcher() resolver.HTTPFetcher {
	client := &http.Client{Timeout: 30 * time.Second}
	return func(url string) ([]byte, string, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("User-Agent", mocksmith.UserAgent())

		resp, err := client.Do(req)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, resolver.MaxFileSize))
		if err != nil {
			return nil, "", err
		}
		return body, resp.Header.Get("Content-Type"), nil
	}
}

// exportResources writes every resource blob into dir.
func exportResources(dir string, resources []domain.Resource) error {
	for _, res := range resources {
		// Resource names come from sanitized titles and ref basenames; strip
		// any remaining path separators just in case.
		name := filepath.Base(res.Name)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, res.Content, 0o644); err != nil {
			return fmt.Errorf("writing resource %s: %w", name, err)
		}
	}
	return nil
}

func printServiceReport(w io.Writer, specPath string, svc *domain.Service, exchanges map[string][]domain.Exchange, resources []domain.Resource) {
	fmt.Fprintf(w, "Mock Service Import\n")
	fmt.Fprintf(w, "===================\n\n")
	fmt.Fprintf(w, "mocksmith version: %s\n", mocksmith.Version())
	fmt.Fprintf(w, "Specification: %s\n", specPath)
	fmt.Fprintf(w, "Service: %s\n", svc.Name)
	fmt.Fprintf(w, "Version: %s\n", svc.Version)
	fmt.Fprintf(w, "Type: %s\n", svc.Type)
	fmt.Fprintf(w, "Operations: %d\n\n", len(svc.Operations))

	if svc.Metadata != nil {
		if len(svc.Metadata.Labels) > 0 {
			fmt.Fprintf(w, "Labels:\n")
			keys := make([]string, 0, len(svc.Metadata.Labels))
			for k := range svc.Metadata.Labels {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "  %s: %s\n", k, svc.Metadata.Labels[k])
			}
			fmt.Fprintln(w)
		}
	}

	for _, op := range svc.Operations {
		fmt.Fprintf(w, "%s\n", op.Name)
		if op.Dispatcher != "" {
			fmt.Fprintf(w, "  Dispatcher: %s\n", op.Dispatcher)
			fmt.Fprintf(w, "  Rules: %s\n", op.DispatcherRules)
		}
		if op.DefaultDelay > 0 {
			fmt.Fprintf(w, "  Default delay: %dms\n", op.DefaultDelay)
		}
		for _, path := range op.ResourcePaths {
			fmt.Fprintf(w, "  Path: %s\n", path)
		}
		for _, ex := range exchanges[op.Name] {
			fmt.Fprintf(w, "  Exchange: %s -> %s", ex.Response.Name, ex.Response.Status)
			if ex.Response.DispatchCriteria != "" {
				fmt.Fprintf(w, " (%s)", ex.Response.DispatchCriteria)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Resources:\n")
	for _, res := range resources {
		fmt.Fprintf(w, "  %s (%s, %d bytes)\n", res.Name, res.Type, len(res.Content))
	}
}
