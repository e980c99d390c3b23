package main

import (
	"io"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func parseFormat(raw string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case formatYAML, "yml", "":
		return formatYAML, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", crerr.Newf("unsupported format %q (want yaml or json)", raw)
	}
}

func render(c *cli.Context, v any) error {
	format, err := parseFormat(c.String(formatFlag))
	if err != nil {
		return err
	}
	return encode(c.App.Writer, format, v)
}

func encode(w io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := sonic.ConfigDefault.NewEncoder(w)
		enc.SetIndent("", "  ")
		return crerr.Wrap(enc.Encode(v), "encode json")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return crerr.Wrap(err, "encode yaml")
	}
	return crerr.Wrap(enc.Close(), "close yaml encoder")
}
