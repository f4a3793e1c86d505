// main.go - command-line entry point for the MX-26301 virtual machine

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/intuitionamiga/mx26301/internal/vm"
)

func banner() {
	fmt.Println("mx26301 - a 32-bit Intuition-class virtual machine core")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		diskPath     string
		headless     bool
		startMode    int
		jitThreshold int
	)

	root := &cobra.Command{
		Use:   "mx26301",
		Short: "Run the MX-26301 virtual machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			banner()
			return runVM(diskPath, headless, startMode, jitThreshold)
		},
	}

	root.Flags().StringVar(&diskPath, "disk", "disk.bin", "path to the disk image")
	root.Flags().BoolVar(&headless, "headless", false, "disable the shared-memory video/input bridge and audio output")
	root.Flags().IntVar(&startMode, "mode", 16, "CPU mode at cold start: 16 or 32")
	root.Flags().IntVar(&jitThreshold, "jit-threshold", vm.JITHeatThreshold, "per-PC hotness count before the tracing JIT compiles a block")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runVM(diskPath string, headless bool, startMode, jitThreshold int) error {
	if startMode != 16 && startMode != 32 {
		return fmt.Errorf("--mode must be 16 or 32, got %d", startMode)
	}

	machine, err := vm.New(vm.Options{
		DiskPath:     diskPath,
		Headless:     headless,
		StartIn32Bit: startMode == 32,
		JITThreshold: jitThreshold,
	})
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer machine.Bridge.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		machine.Stop()
	}()

	machine.Run()
	return nil
}
