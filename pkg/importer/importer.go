// Package importer builds a tree.Tree from delimited text records of the form
//
//	id,parent_id,field1,...,fieldN
//
// with an optional header line naming the columns. Payload fields are typed
// with the typeinfer package. Imports are all-or-nothing: the first bad row
// aborts the import and no tree is returned.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"neurotree/pkg/tree"
	"neurotree/pkg/typeinfer"
)

// DefaultSeparator is used when Options.Separator is empty
const DefaultSeparator = ","

// Fields is the payload of a node imported with a header: column name to
// typed value, excluding the id and parent columns.
type Fields map[string]any

// String returns the value of key as text, formatting numbers if needed
func (f Fields) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Values is the payload of a node imported without a header: the typed
// fields after the id and parent columns, in order.
type Values []any

// Options control how records are split and typed
type Options struct {
	// Separator splits a line into fields. Defaults to a comma.
	Separator string

	// HasHeader treats the first non-blank line as the column header
	HasHeader bool

	// Header supplies the column names explicitly, including the id and
	// parent columns. It takes precedence over HasHeader.
	Header []string

	// Logger receives import diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Import reads all lines from r and builds a tree
func Import(r io.Reader, opts Options) (*tree.Tree, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading records: %w", err)
	}
	return ImportLines(lines, opts)
}

// ImportText splits text into lines and builds a tree
func ImportText(text string, opts Options) (*tree.Tree, error) {
	return ImportLines(strings.Split(text, "\n"), opts)
}

// ImportLines splits each line with the configured separator and builds a
// tree. Blank lines are skipped but still counted for error positions.
func ImportLines(lines []string, opts Options) (*tree.Tree, error) {
	sep := opts.separator()

	records := make([][]string, 0, len(lines))
	numbers := make([]int, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, strings.Split(line, sep))
		numbers = append(numbers, i+1)
	}

	return importRecords(records, numbers, opts)
}

// ImportRecords builds a tree from records that are already split into
// fields. Line numbers in errors are record positions, 1-based.
func ImportRecords(records [][]string, opts Options) (*tree.Tree, error) {
	numbers := make([]int, len(records))
	for i := range records {
		numbers[i] = i + 1
	}
	return importRecords(records, numbers, opts)
}

func importRecords(records [][]string, numbers []int, opts Options) (*tree.Tree, error) {
	log := opts.logger()

	header := trimAll(opts.Header)
	headerLine := 1
	if header == nil && opts.HasHeader && len(records) > 0 {
		header = trimAll(records[0])
		headerLine = numbers[0]
		records = records[1:]
		numbers = numbers[1:]
	}
	if header != nil && len(header) < 2 {
		return nil, &MalformedRecordError{
			Line:   headerLine,
			Want:   2,
			Got:    len(header),
			Reason: fmt.Sprintf("header needs id and parent columns, got %d columns", len(header)),
		}
	}

	want := len(header)
	if header == nil && len(records) > 0 {
		want = len(records[0])
	}

	t := tree.New()
	replacedCount := 0
	for i, rec := range records {
		line := numbers[i]
		fields := trimAll(rec)

		if len(fields) != want {
			return nil, &MalformedRecordError{Line: line, Want: want, Got: len(fields)}
		}
		if len(fields) < 2 {
			return nil, &MalformedRecordError{
				Line:   line,
				Want:   2,
				Got:    len(fields),
				Reason: "record needs id and parent fields",
			}
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &MalformedRecordError{
				Line:   line,
				Want:   want,
				Got:    len(fields),
				Reason: fmt.Sprintf("id %q is not an integer", fields[0]),
			}
		}
		parent, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &MalformedRecordError{
				Line:   line,
				Want:   want,
				Got:    len(fields),
				Reason: fmt.Sprintf("parent id %q is not an integer", fields[1]),
			}
		}

		replaced, err := t.AddNode(id, parent, payload(header, fields[2:]))
		if err != nil {
			log.Debug("import aborted", slog.Int("line", line), slog.Int("id", id), slog.String("error", err.Error()))
			return nil, &RowError{Line: line, ID: id, Err: err}
		}
		if replaced {
			replacedCount++
			log.Warn("duplicate node id replaced", slog.Int("line", line), slog.Int("id", id))
		}
	}

	log.Debug("import complete",
		slog.Int("records", len(records)),
		slog.Int("nodes", t.Len()),
		slog.Int("replaced", replacedCount),
		slog.Bool("header", header != nil))

	return t, nil
}

func payload(header, fields []string) any {
	if header == nil {
		return Values(typeinfer.ConvertAll(fields))
	}
	p := make(Fields, len(fields))
	for i, f := range fields {
		p[header[i+2]] = typeinfer.Convert(f)
	}
	return p
}

func trimAll(fields []string) []string {
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// SniffSeparator guesses the field separator of text. It picks the first of
// pipe, tab and comma that occurs at least as many times as there are lines,
// and falls back to a comma.
func SniffSeparator(text string) string {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	for _, sep := range []string{"|", "\t", ","} {
		if lines > 0 && strings.Count(text, sep) >= lines {
			return sep
		}
	}
	return DefaultSeparator
}
