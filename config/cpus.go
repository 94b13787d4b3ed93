package config

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/xaionaro-go/framebench/logger"
)

// UsableCPUs returns the amount of CPUs this process may run on: the CPU
// affinity mask if the platform reports one, otherwise the logical CPU count.
func UsableCPUs(ctx context.Context) uint {
	if n := affinityCPUs(ctx); n > 0 {
		return n
	}
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil || n < 1 {
		logger.Debugf(ctx, "unable to count the logical CPUs (%v), using GOMAXPROCS", err)
		return uint(max(runtime.GOMAXPROCS(0), 1))
	}
	return uint(n)
}

func affinityCPUs(ctx context.Context) uint {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		logger.Debugf(ctx, "unable to open the current process: %v", err)
		return 0
	}
	cpus, err := proc.CPUAffinityWithContext(ctx)
	if err != nil {
		logger.Debugf(ctx, "unable to get the CPU affinity: %v", err)
		return 0
	}
	return uint(len(cpus))
}
