package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/TechXTT/ydbc"
)

type execOptions struct {
	params []string
	tx     bool
}

// NewExecCmd builds the `exec` command.
func NewExecCmd(g *globalOptions) *cobra.Command {
	opts := &execOptions{}
	cmd := &cobra.Command{
		Use:   "exec <sql>",
		Short: "Execute one statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]namedValue, 0, len(opts.params))
			for _, p := range opts.params {
				nv, err := parseParam(p)
				if err != nil {
					return err
				}
				params = append(params, nv)
			}

			ctx := cmd.Context()
			a, err := g.connect(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			stmt := a.conn.CreateStatement(args[0])
			for _, p := range params {
				if err := stmt.Bind(p.name, p.value); err != nil {
					return err
				}
			}
			return run(ctx, a.conn, opts.tx, cmd.OutOrStdout(), func() (*ydbc.Result, error) {
				return stmt.Execute(ctx).Await(ctx)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Parameter as name=Kind:value, repeatable")
	cmd.Flags().BoolVar(&opts.tx, "tx", false, "Run inside an explicit transaction")
	return cmd
}

// NewBatchCmd builds the `batch` command.
func NewBatchCmd(g *globalOptions) *cobra.Command {
	var tx bool
	cmd := &cobra.Command{
		Use:   "batch <sql>...",
		Short: "Execute several fragments as one statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := g.connect(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			b := a.conn.CreateBatch()
			for _, sql := range args {
				b.Add(sql)
			}
			return run(ctx, a.conn, tx, cmd.OutOrStdout(), func() (*ydbc.Result, error) {
				return b.Execute(ctx).Await(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&tx, "tx", false, "Run inside an explicit transaction")
	return cmd
}

// run executes fn, optionally wrapped in a transaction, and prints its result.
func run(ctx context.Context, conn *ydbc.Connection, tx bool, out io.Writer, fn func() (*ydbc.Result, error)) error {
	if tx {
		if err := conn.BeginTransaction(ctx); err != nil {
			return err
		}
	}
	res, err := fn()
	if err != nil {
		if tx {
			if rbErr := conn.RollbackTransaction(ctx); rbErr != nil {
				return errors.Join(err, rbErr)
			}
		}
		return err
	}
	if tx {
		if err := conn.CommitTransaction(ctx); err != nil {
			return err
		}
	}
	return printResult(out, res)
}

func printResult(out io.Writer, res *ydbc.Result) error {
	sets := res.ResultSets()
	if len(sets) == 0 {
		_, err := fmt.Fprintf(out, "%d row(s) updated\n", res.RowsUpdated())
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, rs := range sets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.Join(rs.Columns, "\t"))
		for _, row := range rs.Rows {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = formatCell(v)
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
	}
	return w.Flush()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
