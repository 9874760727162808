package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/gridpath/internal/config"
	"github.com/udisondev/gridpath/internal/db"
	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
	"github.com/udisondev/gridpath/internal/route"
)

var errNoQueries = errors.New("no queries: pass --from and --to or list queries in the config")

// app carries state shared by subcommands.
type app struct {
	configPath string
	gridFile   string
	cfg        config.Gridpath
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gridpath",
		Short:         "Shortest paths on obstacle grids (A*, 4-connected, Manhattan)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	defaultConfig := ConfigPath
	if p := os.Getenv("GRIDPATH_CONFIG"); p != "" {
		defaultConfig = p
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfig, "config file (env GRIDPATH_CONFIG)")
	root.PersistentFlags().StringVar(&a.gridFile, "grid", "", "grid file, overrides grid_file from the config")

	root.AddCommand(
		a.newSolveCmd(),
		a.newRenderCmd(),
		a.newMigrateCmd(),
		a.newPurgeCmd(),
	)
	return root
}

// load reads the config and configures slog.
func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.gridFile != "" {
		cfg.GridFile = a.gridFile
	}
	a.cfg = cfg

	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: lvl,
	})))
	slog.Debug("config loaded", "path", a.configPath, "grid", cfg.GridFile, "database", cfg.Database.Enabled)
	return nil
}

func (a *app) newSolveCmd() *cobra.Command {
	var (
		from, to      string
		strict        bool
		maxExpansions int
		render        bool
		waypoints     bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find shortest paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("strict") {
				a.cfg.Search.BoundsCheck = strict
			}
			if cmd.Flags().Changed("max-expansions") {
				a.cfg.Search.MaxExpansions = maxExpansions
			}

			queries, err := a.queries(from, to)
			if err != nil {
				return err
			}

			g, err := loadGrid(a.cfg.GridFile)
			if err != nil {
				return err
			}

			store, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			svc := route.NewService(store, a.cfg.Search.Workers, searchOptions(a.cfg.Search)...)
			results, err := svc.RouteAll(ctx, g, queries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				printResult(out, queries[i], res)
				if waypoints && res.Found {
					fmt.Fprintf(out, "  waypoints: %s\n", joinCoords(pathfind.Waypoints(res.Path)))
				}
				if render && res.Found {
					fmt.Fprint(out, g.Render(res.Path))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start cell as x,y")
	cmd.Flags().StringVar(&to, "to", "", "end cell as x,y")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject endpoints outside the grid")
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", 0, "cap expanded nodes per search (0 = unlimited)")
	cmd.Flags().BoolVar(&render, "render", false, "draw found paths on the grid")
	cmd.Flags().BoolVar(&waypoints, "waypoints", false, "also print the turning points of each path")
	return cmd
}

func (a *app) newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := loadGrid(a.cfg.GridFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%dx%d, %d passable\n", g.SizeX(), g.SizeY(), g.PassableCount())
			fmt.Fprint(out, g.String())
			return nil
		},
	}
}

func (a *app) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply route cache migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := db.RunMigrations(cmd.Context(), a.cfg.Database.DSN())
			if err != nil {
				return err
			}
			slog.Info("database migrations applied", "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "route cache schema at version %d\n", version)
			return nil
		},
	}
}

func (a *app) newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete cached routes of the grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g, err := loadGrid(a.cfg.GridFile)
			if err != nil {
				return err
			}

			database, err := db.New(ctx, a.cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer database.Close()

			n, err := database.Routes().DeleteByFingerprint(ctx, g.Fingerprint())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached routes\n", n)
			return nil
		},
	}
}

// queries returns the single --from/--to query or the config batch.
func (a *app) queries(from, to string) ([]pathfind.Query, error) {
	if from != "" || to != "" {
		start, err := parseCoord(from)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
		end, err := parseCoord(to)
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		return []pathfind.Query{{Start: start, End: end}}, nil
	}

	if len(a.cfg.Queries) == 0 {
		return nil, errNoQueries
	}
	queries := make([]pathfind.Query, 0, len(a.cfg.Queries))
	for _, q := range a.cfg.Queries {
		queries = append(queries, pathfind.Query{
			Start: grid.C(q.Start.X, q.Start.Y),
			End:   grid.C(q.End.X, q.End.Y),
		})
	}
	return queries, nil
}

// openStore returns the Postgres route cache when enabled, else an
// in-memory one. The returned func releases it.
func (a *app) openStore(ctx context.Context) (route.Store, func(), error) {
	if !a.cfg.Database.Enabled {
		return route.NewMemoryStore(), func() {}, nil
	}

	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	slog.Info("database connected")
	return database.Routes(), database.Close, nil
}

func searchOptions(c config.SearchConfig) []pathfind.Option {
	var opts []pathfind.Option
	if c.BoundsCheck {
		opts = append(opts, pathfind.WithBoundsCheck())
	}
	if c.MaxExpansions > 0 {
		opts = append(opts, pathfind.WithMaxExpansions(c.MaxExpansions))
	}
	return opts
}

func loadGrid(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid: %w", err)
	}
	defer f.Close()

	g, err := grid.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing grid %s: %w", path, err)
	}
	return g, nil
}

// parseCoord parses "x,y".
func parseCoord(s string) (grid.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Coord{}, fmt.Errorf("%q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("%q: %w", s, err)
	}
	return grid.C(x, y), nil
}

func printResult(w io.Writer, q pathfind.Query, res pathfind.Result) {
	if !res.Found {
		fmt.Fprintf(w, "%s -> %s: no path found\n", q.Start, q.End)
		return
	}
	fmt.Fprintf(w, "%s -> %s: %d steps\n  %s\n", q.Start, q.End, res.Cost, joinCoords(res.Path))
}

func joinCoords(path []grid.Coord) string {
	cells := make([]string, len(path))
	for i, c := range path {
		cells[i] = c.String()
	}
	return strings.Join(cells, " ")
}
