package train

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"

	"github.com/zeu5/offline-subopt/util"
)

// Runner hands a plan over to the python training code.
//
// Without Entry the d3rlpy_impls/train_<algo>.py script of the plan runs
// with its own command line flags. With Entry the interpreter gets
// <Entry...> --plan <plan.json> and has to read everything from the plan
type Runner struct {
	Python string   // interpreter
	Entry  []string // custom entry point, reads the stored plan
	OutDir string   // plans are stored under <OutDir>/<experiment>/plan.json

	Stdout io.Writer
	Stderr io.Writer
}

func NewRunner(python, outDir string, entry ...string) *Runner {
	return &Runner{
		Python: python,
		Entry:  entry,
		OutDir: outDir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// PlanPath is where the plan of the experiment is written
func (r *Runner) PlanPath(p *Plan) string {
	return path.Join(r.OutDir, p.Experiment, "plan.json")
}

// Script is the d3rlpy training script of an algorithm
func Script(algo Algo) string {
	return "d3rlpy_impls/train_" + strings.ToLower(string(algo)) + ".py"
}

// ScriptArgs renders the plan as the flags of the training scripts. The
// device is already restricted through CUDA_VISIBLE_DEVICES so the script
// always sees it as gpu 0
func ScriptArgs(p *Plan) []string {
	ratios := make([]string, len(p.Ratios))
	for i, r := range p.Ratios {
		ratios[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	args := []string{
		"--env", p.Env,
		"--sampler", p.Sampler,
		"--dataset_size", strconv.Itoa(p.Size),
		"--dataset_types",
	}
	args = append(args, p.Types...)
	args = append(args, "--dataset_ratios")
	args = append(args, ratios...)
	args = append(args, "--seed", strconv.Itoa(p.Seed))
	if p.GPU != nil {
		args = append(args, "--gpu", "0")
	}
	return args
}

// Command builds the framework invocation for a plan
func (r *Runner) Command(ctx context.Context, p *Plan) *exec.Cmd {
	var args []string
	if len(r.Entry) == 0 {
		args = append([]string{Script(p.Algo)}, ScriptArgs(p)...)
	} else {
		args = append(append([]string{}, r.Entry...), "--plan", r.PlanPath(p))
	}
	cmd := exec.CommandContext(ctx, r.Python, args...)
	cmd.Env = os.Environ()
	if p.GPU != nil {
		cmd.Env = append(cmd.Env, "CUDA_VISIBLE_DEVICES="+strconv.Itoa(*p.GPU))
	} else {
		cmd.Env = append(cmd.Env, "CUDA_VISIBLE_DEVICES=")
	}
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd
}

// Run stores the plan and blocks until the training process exits
func (r *Runner) Run(ctx context.Context, p *Plan) error {
	if err := util.WriteJSON(r.PlanPath(p), p); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	cmd := r.Command(ctx, p)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("train %s: %w", p.Experiment, err)
	}
	return nil
}
