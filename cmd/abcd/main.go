// cmd/abcd/main.go — command-line front end for the optics package
//
// Reads a YAML optical system and prints symbolic results.
//
// Usage:
//
//	abcd matrix -f system.yaml
//	abcd image-distance -f system.yaml
//	abcd ray -f system.yaml
//	abcd beam -f system.yaml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	gosymbol "github.com/njchilds90/matrixoptics"
	"github.com/njchilds90/matrixoptics/optics"
)

type options struct {
	systemPath string
	latex      bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "abcd",
		Short:        "Symbolic ABCD matrix optics",
		Long:         `abcd composes thin lenses and free-space propagation into a system matrix and traces rays and Gaussian beams through it symbolically.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVarP(&opts.systemPath, "file", "f", "system.yaml", "YAML system description")
	root.PersistentFlags().BoolVar(&opts.latex, "latex", false, "print LaTeX instead of plain text")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "matrix",
			Short: "Print the system matrix",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSystem(opts, func(sys *System, sc scope) error {
					m, err := sys.matrix(sc)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					if opts.latex {
						fmt.Fprintln(out, m.LaTeX())
					} else {
						fmt.Fprintln(out, m)
					}
					ok, err := optics.Unimodular(m)
					if err != nil {
						return err
					}
					slog.Debug("system matrix", "unimodular", ok)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "image-distance",
			Short: "Print the image distance -B/D of the system",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSystem(opts, func(sys *System, sc scope) error {
					m, err := sys.matrix(sc)
					if err != nil {
						return err
					}
					d, err := optics.ImageDistance(m)
					if err != nil {
						return err
					}
					printExpr(cmd.OutOrStdout(), opts, "image distance", d)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "ray",
			Short: "Trace the input ray through the system",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSystem(opts, func(sys *System, sc scope) error {
					m, err := sys.matrix(sc)
					if err != nil {
						return err
					}
					r, err := sys.ray(sc)
					if err != nil {
						return err
					}
					out, err := r.Apply(m)
					if err != nil {
						return err
					}
					printExpr(cmd.OutOrStdout(), opts, "rho", out.Rho)
					printExpr(cmd.OutOrStdout(), opts, "theta", out.Theta)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "beam",
			Short: "Propagate the input Gaussian beam through the system",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSystem(opts, func(sys *System, sc scope) error {
					m, err := sys.matrix(sc)
					if err != nil {
						return err
					}
					b, err := sys.beam(sc)
					if err != nil {
						return err
					}
					out, err := b.Apply(m)
					if err != nil {
						return err
					}
					w := cmd.OutOrStdout()
					printExpr(w, opts, "q", out.Q())
					printExpr(w, opts, "R", out.R())
					printExpr(w, opts, "w", out.W())
					printExpr(w, opts, "zR", out.RayleighRange())
					return nil
				})
			},
		},
	)
	return root
}

func withSystem(opts *options, fn func(*System, scope) error) error {
	sys, err := loadSystem(opts.systemPath)
	if err != nil {
		return err
	}
	sc, err := sys.scope()
	if err != nil {
		return err
	}
	slog.Debug("system loaded", "path", opts.systemPath, "symbols", len(sys.Symbols), "elements", len(sys.Elements))
	return fn(sys, sc)
}

func printExpr(w io.Writer, opts *options, label string, e gosymbol.Expr) {
	if opts.latex {
		fmt.Fprintf(w, "%s = %s\n", label, gosymbol.LaTeX(e))
		return
	}
	fmt.Fprintf(w, "%s = %s\n", label, gosymbol.String(e))
}
