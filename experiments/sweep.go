package experiments

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/zeu5/offline-subopt/config"
	"github.com/zeu5/offline-subopt/launcher"
	"github.com/zeu5/offline-subopt/sweep"
	"github.com/zeu5/offline-subopt/util"
)

// SweepRun bundles what a sweep launch needs besides the definition
type SweepRun struct {
	Launch *config.LaunchArgs
	Env    *config.Env
	Clean  bool
	Out    io.Writer
}

func (s *SweepRun) recordPath(def *sweep.Definition, shard, shards int) string {
	root := recordDir
	if root == "" {
		root = path.Join(s.Env.StoragePath, "launches")
	}
	p := path.Join(root, def.Name)
	if shards > 1 {
		p = path.Join(p, "task-"+strconv.Itoa(shard))
	}
	return p
}

// RunSweep expands the definition, keeps this machine's shard and launches it
func RunSweep(ctx context.Context, def *sweep.Definition, run *SweepRun) error {
	if err := run.Launch.Validate(); err != nil {
		return err
	}
	mode, err := launcher.ParseMode(run.Launch.Mode)
	if err != nil {
		return err
	}
	shard, shards, err := sweep.ParseTaskIDs(run.Launch.TaskID)
	if err != nil {
		return err
	}

	jobs, err := def.Jobs(sweep.Options{
		Devices:     run.Launch.GPUs,
		Debug:       run.Launch.Debug,
		Seed:        run.Launch.ShuffleSeed,
		StoragePath: run.Env.StoragePath,
	})
	if err != nil {
		return err
	}
	total := len(jobs)
	fmt.Fprintf(run.Out, "Total: %d\n", total)
	if shards > 1 {
		jobs = sweep.Shard(jobs, shard, shards)
		fmt.Fprintf(run.Out, "Task %d/%d: %d jobs\n", shard, shards, len(jobs))
	}

	recordPath := run.recordPath(def, shard, shards)
	cfg := &launcher.Config{
		Experiment: def.Name,
		Mode:       mode,
		NJobs:      run.Launch.NJobs,
		RecordPath: recordPath,
		Clean:      run.Clean,
		Shell:      run.Env.Shell,
		StatusAddr: run.Launch.StatusAddr,
		Live:       run.Launch.Live,
		Redis:      &redis.Options{Addr: run.Env.RedisAddr, DB: run.Env.RedisDB},
		Printables: []string{run.Launch.Printable()},
		Out:        run.Out,
	}

	if mode == launcher.LocalMode && (cpuprofile != "" || memprofile != "") {
		if err := util.EnsureDir(recordPath); err != nil {
			return err
		}
		stop, err := startProfiling(recordPath)
		defer stop()
		if err != nil {
			return err
		}
	}

	if err := launcher.Launch(ctx, cfg, jobs); err != nil {
		return err
	}
	fmt.Fprintf(run.Out, "Total: %d, num_gpus=%d\n", total, len(run.Launch.GPUs))
	return nil
}

func SweepCommand() *cobra.Command {
	run := &SweepRun{Launch: config.DefaultLaunchArgs()}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Generate and launch a sweep of training jobs",
	}
	run.Launch.AddFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().BoolVar(&run.Clean, "clean", false, "Wipe the launch record folder first")

	for _, name := range sweep.BuiltinNames() {
		cmd.AddCommand(builtinSweepCommand(name, run))
	}
	cmd.AddCommand(fileSweepCommand(run))
	cmd.AddCommand(listSweepsCommand())
	cmd.AddCommand(dumpSweepCommand())
	return cmd
}

func launchSweep(cmd *cobra.Command, def *sweep.Definition, run *SweepRun) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	run.Env = env
	run.Out = cmd.OutOrStdout()

	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	return RunSweep(ctx, def, run)
}

func builtinSweepCommand(name string, run *SweepRun) *cobra.Command {
	def, _ := sweep.Builtin(name)
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Launch the %s sweep (%s)", def.Name, def.Algo),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := sweep.Builtin(name)
			if err != nil {
				return err
			}
			return launchSweep(cmd, def, run)
		},
	}
}

func fileSweepCommand(run *SweepRun) *cobra.Command {
	return &cobra.Command{
		Use:   "file [SWEEP_YAML]",
		Short: "Launch a sweep described in a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := sweep.LoadDefinition(args[0])
			if err != nil {
				return err
			}
			return launchSweep(cmd, def, run)
		},
	}
}

func listSweepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in sweeps, their sizes and the dataset generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sweep.BuiltinNames() {
				def, err := sweep.Builtin(name)
				if err != nil {
					return err
				}
				size, err := def.Size()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %s %5d jobs\n", name, def.Name, def.Algo, size)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generators: %s\n", strings.Join(sweep.GeneratorNames(), ", "))
			return nil
		},
	}
}

func dumpSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [SWEEP]",
		Short: "Print a built-in sweep as yaml, a starting point for sweep files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := sweep.Builtin(args[0])
			if err != nil {
				return err
			}
			bs, err := def.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(bs)
			return err
		},
	}
}
