package capture

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/mpavlovs/punchclock/internal/netx"
	"github.com/mpavlovs/punchclock/internal/server/models"
)

// Seams for testing the probe without touching real host metrics.
var (
	osHostname    = os.Hostname
	hostInfo      = host.InfoWithContext
	cpuPercent    = cpu.PercentWithContext
	virtualMemory = mem.VirtualMemoryWithContext
	diskUsage     = disk.UsageWithContext
	outboundIP    = netx.OutboundIP
	primaryMAC    = netx.PrimaryMAC
)

// cpuSampleWindow is how long the CPU usage probe observes the host.
// It dominates the probe's latency, so it must stay well under the
// capture timeout.
const cpuSampleWindow = time.Second

// System probes host identity and resource usage via gopsutil.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) ProbeSystem(ctx context.Context) (*models.SystemInfo, error) {
	hostname, err := osHostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	hi, err := hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}

	cpuUsage, err := cpuPercent(ctx, cpuSampleWindow, false)
	if err != nil {
		return nil, fmt.Errorf("cpu usage: %w", err)
	}
	if len(cpuUsage) == 0 {
		return nil, fmt.Errorf("cpu usage: empty sample")
	}

	vm, err := virtualMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory usage: %w", err)
	}

	du, err := diskUsage(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("disk usage: %w", err)
	}

	return &models.SystemInfo{
		Hostname:      hostname,
		OS:            hi.OS + " " + hi.KernelVersion,
		IPAddress:     outboundIP(),
		MACAddress:    primaryMAC(),
		CPUPercent:    cpuUsage[0],
		MemoryPercent: vm.UsedPercent,
		DiskPercent:   du.UsedPercent,
		CapturedAt:    time.Now().UTC(),
	}, nil
}
