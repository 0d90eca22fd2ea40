package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "svw.info/lightsout/internal/adapters/http"
	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/tui"
	"svw.info/lightsout/web"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web game and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	uc, closeStore, err := buildService(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	r := httpadapter.NewRouter(httpadapter.New(uc, a.logger))
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))
	r.Get("/", web.Index(web.Page{Title: "Lights Out", Levels: len(a.cfg.Game.Levels)}))

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: a.cfg.GetReadHeaderTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", a.cfg.Storage.Driver),
			zap.String("path", a.cfg.Storage.Path),
			zap.Int("levels", len(a.cfg.Game.Levels)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *app) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alt screen owns the terminal, so only debug runs log
			logger := zap.NewNop()
			if a.verbose {
				logger = a.logger
			}
			uc, closeStore, err := buildService(a.cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()
			return tui.Run(cmd.Context(), uc)
		},
	}
}

func (a *app) levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the configured difficulty tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printLevels(cmd.OutOrStdout(), a.cfg.Game.Levels)
		},
	}
}

func printLevels(w io.Writer, levels domain.Levels) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tGRID\tLIGHTS\tMAX MOVES")
	for i, l := range levels {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%d\t%d\n", i+1, l.Name, l.GridSize, l.GridSize, l.InitialActiveLights, l.MaxMoves)
	}
	return tw.Flush()
}

func (a *app) solveCmd() *cobra.Command {
	var (
		size   int
		lit    []int
		random int
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the shortest press set for a grid",
		Long: `solve prints the shortest set of presses that clears a grid.

The grid is given by its lit cell indices (--lit 0,4,8), or drawn at random
with --random N lit cells when --lit is empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, closeStore, err := buildService(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			var g domain.Grid
			if len(lit) > 0 {
				g, err = gridFromIndices(size, lit)
			} else {
				if seed == 0 {
					seed = time.Now().UnixNano()
				}
				g, err = uc.GenerateGrid(seed, size, random)
				if err == nil {
					fmt.Fprintf(out, "seed %d\n", seed)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprint(out, renderGrid(g, size))

			presses, st, err := uc.Solve(cmd.Context(), g, size)
			if errors.Is(err, domain.ErrUnsolvable) {
				fmt.Fprintln(out, "no solution")
				return nil
			}
			if err != nil {
				return err
			}
			a.logger.Debug("solved", zap.Int("nodes", st.Nodes), zap.Duration("dur", st.Duration))
			fmt.Fprintf(out, "%d presses:", len(presses))
			for _, p := range presses {
				r, c := domain.Coord(p, size)
				fmt.Fprintf(out, " (%d,%d)", r+1, c+1)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 5, "Grid side length")
	cmd.Flags().IntSliceVar(&lit, "lit", nil, "Lit cell indices, row-major from 0")
	cmd.Flags().IntVar(&random, "random", 8, "Number of random lit cells when --lit is empty")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for --random (default: time based)")
	return cmd
}

func gridFromIndices(size int, lit []int) (domain.Grid, error) {
	if err := domain.CheckSize(size); err != nil {
		return nil, err
	}
	g := domain.NewGrid(size)
	for _, i := range lit {
		if i < 0 || i >= len(g) {
			return nil, fmt.Errorf("lit cell %d on %d cells: %w", i, len(g), domain.ErrIndexOutOfRange)
		}
		g[i].IsActive = true
	}
	return g, nil
}

func renderGrid(g domain.Grid, size int) string {
	var b strings.Builder
	for i, c := range g {
		if c.IsActive {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%size == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
