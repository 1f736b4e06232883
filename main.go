package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/vegasq/flatcat/internal/document"
	"github.com/vegasq/flatcat/internal/flatten"
	"github.com/vegasq/flatcat/internal/jsonpath"
	"github.com/vegasq/flatcat/internal/output"
	"github.com/vegasq/flatcat/internal/reader"
)

var (
	pathFlag      = flag.String("p", "", "path to the table inside the document (e.g. \"response.docs\")")
	fieldsFlag    = flag.String("fields", "", "comma-separated fields to flatten (default: all nested objects)")
	noFlattenFlag = flag.Bool("no-flatten", false, "pass records through without flattening")
	collisionFlag = flag.String("collision", "error", "collision policy: error, overwrite")
	formatFlag    = flag.String("f", "jsonl", "output format: json, jsonl, csv, table")
	outputFlag    = flag.String("o", "", "output file (default stdout)")
	limitFlag     = flag.Int("limit", 0, "limit number of rows (0 = unlimited)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.json|file.parquet>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A tool to flatten nested JSON records into tabular form.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -p response.docs articles.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -p response.docs -fields headline,byline -f csv articles.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f table data.parquet\n", os.Args[0])
	}

	flag.Parse()

	// Get filename from positional args
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing input file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	rows, err := loadRows(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
			fmt.Fprintf(os.Stderr, "Please check the file path and try again.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	// Flatten nested object fields unless told otherwise
	if !*noFlattenFlag {
		opts, err := flattenOptions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rows, err = flatten.Table(rows, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error flattening records: %v\n", err)
			fmt.Fprintf(os.Stderr, "Use -collision overwrite to resolve collisions instead of failing.\n")
			os.Exit(1)
		}
	}

	// Apply limit if specified
	if *limitFlag > 0 && len(rows) > *limitFlag {
		rows = rows[:*limitFlag]
	}

	out := os.Stdout
	if *outputFlag != "" {
		f, err := os.Create(*outputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	// Format and output
	var formatter output.Formatter
	switch *formatFlag {
	case "json":
		formatter = output.NewJSONFormatter(out)
	case "jsonl":
		formatter = output.NewJSONLinesFormatter(out)
	case "csv":
		formatter = output.NewCSVFormatter(out)
	case "table":
		formatter = output.NewTableFormatter(out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv, table\n")
		os.Exit(1)
	}

	if err := formatter.Format(rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// loadRows reads the input file and produces the table of records the
// rest of the pipeline operates on.
func loadRows(filename string) (document.Table, error) {
	if strings.HasSuffix(filename, ".parquet") {
		if *pathFlag != "" {
			return nil, fmt.Errorf("-p applies to JSON input only")
		}
		r, err := reader.NewReader(filename)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// A top-level array already is the table.
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		table, err := document.ParseTable(data)
		if err != nil {
			return nil, err
		}
		if *pathFlag == "" {
			return table, nil
		}
		root := make([]any, len(table))
		for i, rec := range table {
			root[i] = rec
		}
		return extractTable(root)
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	if *pathFlag == "" {
		// A top-level object becomes a single-row table.
		return document.Table{doc}, nil
	}
	return extractTable(doc)
}

// extractTable navigates to the value at -p and checks it is a table.
// A single record at the path becomes a one-row table.
func extractTable(root any) (document.Table, error) {
	value, err := jsonpath.Extract(root, *pathFlag)
	if err != nil {
		return nil, err
	}
	if rec, ok := value.(*orderedmap.OrderedMap); ok {
		return document.Table{rec}, nil
	}
	return document.AsTable(value)
}

// flattenOptions builds flattener options from the CLI flags.
func flattenOptions() (flatten.Options, error) {
	var opts flatten.Options
	switch *collisionFlag {
	case "error":
		opts.Policy = flatten.PolicyError
	case "overwrite":
		opts.Policy = flatten.PolicyOverwrite
	default:
		return opts, fmt.Errorf("unsupported collision policy '%s' (want error or overwrite)", *collisionFlag)
	}
	if *fieldsFlag != "" {
		for _, field := range strings.Split(*fieldsFlag, ",") {
			if field = strings.TrimSpace(field); field != "" {
				opts.Fields = append(opts.Fields, field)
			}
		}
	}
	return opts, nil
}
