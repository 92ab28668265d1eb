package benchmarks

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

var (
	cpuprofile string
	memprofile string
)

// startProfiling starts the profiles asked for on the command line. The
// returned function stops the CPU profile and writes the heap profile.
func startProfiling(saveDir string) (func(), error) {
	stops := make([]func(), 0)
	if cpuprofile != "" {
		cpuProfPath := path.Join(saveDir, cpuprofile)
		fmt.Println("Profiling CPU to ", cpuProfPath)
		f, err := os.Create(cpuProfPath)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
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
				fmt.Printf("could not create memory profile: %s\n", err)
				return
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Printf("could not write memory profile: %s\n", err)
			}
		})
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}, nil
}
