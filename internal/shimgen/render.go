package shimgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/anoideaopen/introspect/core/logger"
	"github.com/anoideaopen/introspect/core/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/tools/imports"
)

// DefaultOutput is the name of the generated file when none is given.
const DefaultOutput = "shims_gen.go"

var fileTemplate = template.Must(template.New("shims").Parse(`// Code generated by shimgen. DO NOT EDIT.

package {{.Package}}

import (
	"reflect"

	"github.com/anoideaopen/introspect/core/reflectx"
)

func init() {
{{- range .Types}}
{{- $type := .Name}}
{{- range .Methods}}
	reflectx.MustRegisterMethod(reflect.TypeFor[{{$type}}](), "{{.Name}}", {{if .Pointer}}(*{{$type}}){{else}}{{$type}}{{end}}.{{.Name}})
{{- end}}
{{- end}}
}
`))

// Render produces the formatted source of f. filename is only used to resolve imports.
func Render(f *File, filename string) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", filename, err)
	}

	src, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", filename, err)
	}

	return src, nil
}

// Config holds the options of Generate.
type Config struct {
	Dir    string   // package directory
	Output string   // output file, relative paths are resolved against Dir
	Types  []string // restrict generation to these types
}

// Generate writes the registration file of the package in cfg.Dir and returns its path.
func Generate(ctx context.Context, cfg Config) (path string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "shimgen.Generate",
		trace.WithAttributes(attribute.String("shimgen.dir", cfg.Dir)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	output := cfg.Output
	if output == "" {
		output = DefaultOutput
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(cfg.Dir, output)
	}

	f, err := Load(ctx, cfg.Dir, cfg.Types)
	if err != nil {
		return "", err
	}

	src, err := Render(f, output)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(output, src, 0o644); err != nil { //nolint:gosec
		return "", fmt.Errorf("failed to write output file %q: %w", output, err)
	}

	span.SetAttributes(attribute.Int("shimgen.types", len(f.Types)))
	logger.Logger().WithField("file", output).Infof("registered %d types", len(f.Types))
	return output, nil
}
