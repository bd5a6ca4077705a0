// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/internal/console/views"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Dump or lint view schemas",
	}
	cmd.AddCommand(newDumpCmd(), newLintCmd())
	return cmd
}

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump [view]",
		Short: "Print the declared schema of every view, or of the given view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := views.NewRegistry(views.Deps{})
			if err != nil {
				return err
			}
			names := reg.Names()
			if len(args) == 1 {
				names = args
			}
			for _, name := range names {
				v, err := reg.Get(name)
				if err != nil {
					return err
				}
				out, err := encode(v, format)
				if err != nil {
					return err
				}
				if format == "yaml" {
					fmt.Fprintln(cmd.OutOrStdout(), "---")
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: yaml or json")
	return cmd
}

func encode(v *schema.ViewSchema, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return schema.DumpYAML(v)
	case "json":
		return sonic.ConfigStd.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func newLintCmd() *cobra.Command {
	var files []string
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the built-in views, plus any schema files given with -f",
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			if _, err := views.NewRegistry(views.Deps{}); err != nil {
				errs = append(errs, err)
			}
			for _, file := range files {
				if err := lintFile(file); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", file, err))
				}
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&files, "file", "f", nil, "schema yaml files to lint")
	return cmd
}

func lintFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	v, err := schema.LoadYAML(data, views.Funcs)
	if err != nil {
		return err
	}
	return errors.Join(schema.Lint(v)...)
}
