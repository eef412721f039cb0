package experiments

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

// startProfiling starts the cpu profile if requested, the returned func stops
// it and writes the heap profile
func startProfiling(saveDir string) (func(), error) {
	stops := make([]func(), 0)
	stop := func() {
		for _, s := range stops {
			s()
		}
	}

	if cpuprofile != "" {
		cpuProfPath := path.Join(saveDir, cpuprofile)
		fmt.Println("Profiling CPU to ", cpuProfPath)
		f, err := os.Create(cpuProfPath)
		if err != nil {
			return stop, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return stop, fmt.Errorf("could not start CPU profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	if memprofile != "" {
		memProfPath := path.Join(saveDir, memprofile)
		stops = append(stops, func() {
			fmt.Println("Profiling Memory to ", memProfPath)
			f, err := os.Create(memProfPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not create memory profile: %s\n", err)
				return
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(os.Stderr, "could not write memory profile: %s\n", err)
			}
		})
	}
	return stop, nil
}
