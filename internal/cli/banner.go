package cli

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/agbru/sumset/internal/config"
	"github.com/agbru/sumset/internal/ui"
)

// HasHardwarePopcount reports whether the CPU counts mask bits with a
// single instruction. math/bits and the roaring containers use it when
// present.
func HasHardwarePopcount() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasPOPCNT
	case "arm64":
		return cpu.ARM64.HasASIMD
	case "ppc64", "ppc64le":
		return cpu.PPC64.IsPOWER8
	case "s390x":
		return true
	default:
		return false
	}
}

// PrintExecutionConfig displays the batch parameters and the environment.
func PrintExecutionConfig(cfg config.AppConfig, counterName string, out io.Writer) {
	popcnt := "no"
	if HasHardwarePopcount() {
		popcnt = "yes"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %s|A(n)|, |A(n)+A(n)|%s for n = 1..%s%d%s with the %s%s%s counter.\n",
		ui.ColorMagenta(), ui.ColorReset(), ui.ColorYellow(), cfg.N, ui.ColorReset(), ui.ColorGreen(), counterName, ui.ColorReset())
	fmt.Fprintf(out, "Sharding: %s%d%s shards, %s%d%s jobs, %s mode.\n",
		ui.ColorCyan(), cfg.Shards, ui.ColorReset(), ui.ColorCyan(), cfg.Jobs, ui.ColorReset(), cfg.Exec)
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, hardware popcount: %s, timeout: %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset(), popcnt, timeout)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
