package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jmespath/go-jmespath"
	"github.com/spf13/cobra"
)

// outputOptions are the -o and --query flags shared by read commands.
type outputOptions struct {
	format string
	query  string
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&o.query, "query", "", "JMESPath query applied to the JSON result")
}

// render writes v in the selected format. table is used for the table
// format unless a query is given, in which case the query result is printed
// as JSON.
func (o outputOptions) render(w io.Writer, v any, table func(io.Writer) error) error {
	format := o.format
	if format == "table" && o.query != "" {
		format = "json"
	}
	if format == "table" {
		return table(w)
	}

	data, err := generic(v)
	if err != nil {
		return err
	}
	if o.query != "" {
		if data, err = jmespath.Search(o.query, data); err != nil {
			return fmt.Errorf("query: %w", err)
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		b, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", o.format)
	}
}

// generic round-trips v through JSON so queries see the same field names as
// the json output.
func generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
