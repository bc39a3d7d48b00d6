package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericr/aptk/config"
	"github.com/ericr/aptk/encoding"
	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
	"github.com/ericr/aptk/search"
)

func rootCmd() *cobra.Command {
	var (
		engine     string
		configPath string
		weight     float64
		decay      float64
		budget     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "aptk",
		Short: "Demonstrate the STRIPS planning toolkit against a built-in example problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.New()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				conf = loaded
			}
			if cmd.Flags().Changed("weight") {
				conf.Weight = weight
			}
			if cmd.Flags().Changed("decay") {
				conf.Decay = decay
			}
			if cmd.Flags().Changed("time-budget") {
				conf.TimeBudget = budget
			}

			prob := exampleProblem()
			encoding.PrintProblem(cmd.OutOrStdout(), prob)

			plan, stats, ok := runEngine(engine, prob, conf)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no plan found")
				return nil
			}

			encoding.PrintPlan(cmd.OutOrStdout(), prob, plan)
			fmt.Fprintf(cmd.OutOrStdout(), "expansions: %d, generated: %d, replaced-in-open: %d, pruned-by-bound: %d, evaluations: %d\n",
				stats.Expansions, stats.Generated, stats.ReplacedInOpen, stats.PrunedByBound, stats.Evaluations)
			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "greedy", "search engine: greedy, dualqueue, iw, serialized")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().Float64Var(&weight, "weight", 5.0, "dual-queue engine initial weight")
	cmd.Flags().Float64Var(&decay, "decay", 0.75, "dual-queue engine weight decay")
	cmd.Flags().DurationVar(&budget, "time-budget", 0, "wall-clock search budget (0 = unbounded)")

	return cmd
}

// engineStats surfaces Skeleton's five inspection counters, independent of
// which concrete engine ran.
type engineStats struct {
	Expansions     int
	Generated      int
	ReplacedInOpen int
	PrunedByBound  int
	Evaluations    int
}

func skeletonStats(sk *search.Skeleton) engineStats {
	return engineStats{
		Expansions:     sk.Expansions,
		Generated:      sk.Generated,
		ReplacedInOpen: sk.ReplacedInOpen,
		PrunedByBound:  sk.PrunedByBound,
		Evaluations:    sk.Evaluations,
	}
}

func runEngine(name string, prob *problem.Problem, conf *config.Config) ([]problem.ActionIdx, engineStats, bool) {
	h1 := heuristic.NewH1(prob, heuristic.SumAggregator(), heuristic.UseCosts)

	switch name {
	case "dualqueue":
		h2 := heuristic.NewH2(prob, heuristic.H2UseCosts)
		e := search.NewDualQueueBestFirst(prob, h1, h2, conf.Weight, conf.Decay)
		e.SetLogger(conf.Logger)
		e.SetTimeBudget(conf.TimeBudget)
		plan, ok := e.FindSolution()
		return plan, skeletonStats(e.Skeleton), ok
	case "iw":
		e := search.NewIteratedWidth(prob, conf.NoveltyMaxArity, conf.NoveltyMaxMemoryMB)
		e.SetLogger(conf.Logger)
		e.SetTimeBudget(conf.TimeBudget)
		plan, ok := e.FindSolution()
		return plan, skeletonStats(e.Skeleton), ok
	case "serialized":
		e := search.NewSerialized(prob, h1)
		e.SetLogger(conf.Logger)
		e.SetTimeBudget(conf.TimeBudget)
		plan, ok := e.FindSolution()
		return plan, skeletonStats(e.Skeleton), ok
	default:
		e := search.NewGreedyBestFirst(prob, h1)
		e.SetLogger(conf.Logger)
		e.SetTimeBudget(conf.TimeBudget)
		plan, ok := e.FindSolution()
		return plan, skeletonStats(e.Skeleton), ok
	}
}

// exampleProblem builds a small five-room navigation task: move between a
// central Sitting room and four adjoining rooms, goal to reach the
// Balcony from the Kitchen.
func exampleProblem() *problem.Problem {
	p := problem.New("rooms", "five-rooms-demo")

	rooms := []string{"Kitchen", "Sitting", "Balcony", "Bath", "Bed"}
	fl := map[string]problem.FluentIdx{}
	for _, r := range rooms {
		idx, _ := p.AddFluent("at-" + r)
		fl[r] = idx
	}

	edges := [][2]string{
		{"Kitchen", "Sitting"},
		{"Sitting", "Balcony"},
		{"Sitting", "Bath"},
		{"Sitting", "Bed"},
	}
	for _, e := range edges {
		a, b := e[0], e[1]
		p.AddAction("move "+a+" "+b, []problem.FluentIdx{fl[a]}, []problem.FluentIdx{fl[b]}, []problem.FluentIdx{fl[a]}, nil, 1.0)
		p.AddAction("move "+b+" "+a, []problem.FluentIdx{fl[b]}, []problem.FluentIdx{fl[a]}, []problem.FluentIdx{fl[b]}, nil, 1.0)
	}

	p.SetInit([]problem.FluentIdx{fl["Kitchen"]})
	p.SetGoal([]problem.FluentIdx{fl["Balcony"]}, false)
	p.MakeActionTables()
	return p
}
