// halctl drives the sensor and light modules directly, for bench testing
// on a device.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"devicehal-go/services/config"
	"devicehal-go/services/lights"
	"devicehal-go/services/sensors"
	"devicehal-go/types"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var (
		cfgPath string
		verbose bool
	)
	root := &cobra.Command{
		Use:          "halctl",
		Short:        "Sensor and light HAL bench tool",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "JSON file overlaid on the built-in device paths")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	load := func() (config.Config, error) { return config.Load(cfgPath) }
	root.AddCommand(listCmd(), pollCmd(load), lightCmd(load))

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the sensor list",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := sensors.NewModule(config.SensorPaths{}, nil)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HANDLE\tNAME\tVENDOR\tTYPE\tRANGE\tMIN DELAY\tFLAGS")
			for _, s := range m.List() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%g\t%dus\t%#x\n",
					s.Handle, s.Name, s.Vendor, s.StringType, s.MaxRange, s.MinDelay, s.Flags)
			}
			return w.Flush()
		},
	}
}

func pollCmd(load func() (config.Config, error)) *cobra.Command {
	var (
		handles []int
		delayMS int
		count   int
	)
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Activate sensors and print their events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			m := sensors.NewModule(cfg.Sensors, nil)
			dev, err := m.Open(sensors.DevicePoll)
			if err != nil {
				return err
			}
			defer dev.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			hs := make([]types.Handle, len(handles))
			for i, h := range handles {
				hs[i] = types.Handle(h)
			}
			return stream(ctx, dev, hs, int64(delayMS)*1_000_000, count, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntSliceVar(&handles, "handle", []int{int(types.HandleLight)}, "sensor handles to activate")
	cmd.Flags().IntVar(&delayMS, "delay", 200, "sampling period in ms")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many events (0 = until interrupted)")
	return cmd
}

func formatEvent(e types.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d h=%d type=%d", e.Timestamp, e.Sensor, e.Type)
	switch e.Type {
	case types.TypeLight, types.TypeProximity, types.TypeSignificantMotion:
		fmt.Fprintf(&b, " value=%g", e.Data[0])
	case types.TypeMetaData:
		fmt.Fprintf(&b, " meta=%g sensor=%g", e.Data[0], e.Data[1])
	default:
		fmt.Fprintf(&b, " x=%.3f y=%.3f z=%.3f status=%d", e.X(), e.Y(), e.Z(), e.Status)
	}
	return b.String()
}

func lightCmd(load func() (config.Config, error)) *cobra.Command {
	var (
		flash string
		onMS  int32
		offMS int32
	)
	cmd := &cobra.Command{
		Use:   "light NAME COLOR",
		Short: "Set a light, e.g. `light notifications 0xff00ff00`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			color, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(args[1]), "0x"), 16, 32)
			if err != nil {
				return fmt.Errorf("color %q: %w", args[1], err)
			}
			mode, err := parseFlash(flash)
			if err != nil {
				return err
			}
			l, err := lights.NewModule(cfg.Lights, nil).Open(args[0])
			if err != nil {
				return err
			}
			defer l.Close()
			st := types.LightState{Color: uint32(color), FlashMode: mode, FlashOnMS: onMS, FlashOffMS: offMS}
			if rc := l.SetLight(st); rc != 0 {
				return fmt.Errorf("set %s: rc %d", args[0], rc)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flash, "flash", "none", "flash mode: none, timed or hardware")
	cmd.Flags().Int32Var(&onMS, "on", 500, "flash on time in ms")
	cmd.Flags().Int32Var(&offMS, "off", 500, "flash off time in ms")
	return cmd
}

func parseFlash(s string) (types.FlashMode, error) {
	for _, m := range []types.FlashMode{types.FlashNone, types.FlashTimed, types.FlashHardware} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown flash mode %q", s)
}
