package experiments

import (
	"fmt"
	"path"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/zeu5/offline-subopt/launcher"
)

func WorkerCommand() *cobra.Command {
	var (
		name          string
		device        int
		pollTimeout   time.Duration
		exitWhenEmpty bool
		maxJobs       int
		prefix        string
	)

	cmd := &cobra.Command{
		Use:   "worker [EXPERIMENT]",
		Short: "Run the jobs queued in redis for an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv()
			if err != nil {
				return err
			}
			experiment := args[0]

			client := redis.NewClient(&redis.Options{Addr: env.RedisAddr, DB: env.RedisDB})
			defer client.Close()

			root := recordDir
			if root == "" {
				root = path.Join(env.StoragePath, "launches")
			}
			cfg := launcher.WorkerConfig{
				Name:          name,
				PollTimeout:   pollTimeout,
				ExitWhenEmpty: exitWhenEmpty,
				MaxJobs:       maxJobs,
				Out:           cmd.OutOrStdout(),
			}
			if device >= 0 {
				cfg.Device = &device
			}
			executor := launcher.NewExecutor(env.Shell, path.Join(root, experiment, "logs"))
			w := launcher.NewWorker(cfg, launcher.NewQueue(client, prefix, experiment), executor)

			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			if err := w.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Worker done: %v\n", w.Counts())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Worker name, defaults to host-pid")
	cmd.Flags().IntVar(&device, "device", -1, "Run every job on this GPU (-1 keeps the assigned one)")
	cmd.Flags().DurationVar(&pollTimeout, "poll", 5*time.Second, "How long to wait for a job before checking for interrupts")
	cmd.Flags().BoolVar(&exitWhenEmpty, "exit-when-empty", false, "Stop once the queue is empty")
	cmd.Flags().IntVar(&maxJobs, "max-jobs", 0, "Stop after this many jobs (0 for no limit)")
	cmd.Flags().StringVar(&prefix, "prefix", launcher.DefaultQueuePrefix, "Redis key prefix of the queues")
	return cmd
}
