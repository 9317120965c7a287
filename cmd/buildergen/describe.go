package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/buildergen/builder"
)

// description is one entry of the describe output.
type description struct {
	Type    builder.TypeDescriptor    `yaml:"type"`
	Builder builder.BuilderDescriptor `yaml:"builder"`
}

func (a *app) describeCmd() *cobra.Command {
	var in input

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the descriptors and builder shapes as YAML without writing files",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.src == "" && in.schema == "" {
				in.src = a.getenv("GOFILE")
			}

			src, err := in.load(a.fs, a.cfg.Scan.Marker)
			if err != nil {
				return err
			}
			tds, err := descriptors(src.rawList)
			if err != nil {
				return err
			}

			out := make([]description, 0, len(tds))
			for _, td := range tds {
				out = append(out, description{Type: td, Builder: builder.DescribeBuilder(td)})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.src, "src", "", "Go source file (defaults to $GOFILE)")
	flags.StringVar(&in.schema, "schema", "", "YAML or JSON schema file")
	flags.StringArrayVar(&in.types, "type", nil, "type to describe (repeatable, default: every marked type)")
	return cmd
}
