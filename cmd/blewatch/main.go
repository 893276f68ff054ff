// Command blewatch is a reference BLE proximity watcher.
//
// It scans for nearby Bluetooth Low Energy peripherals, maintains a live
// roster of currently visible devices with heartbeat-based expiry, and
// prints classified events (discovered, new, name changed, timed out) as
// they happen.
//
// Usage:
//
//	blewatch [flags]
//
// Flags:
//
//	-config string     YAML configuration file path
//	-heartbeat int     Heartbeat timeout in seconds (overrides config)
//	-event-log string  Append scan events to a CBOR log file
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-interactive       Enable interactive command mode
//	-version           Print version and exit
//
// Examples:
//
//	# Scan and print events until interrupted
//	blewatch
//
//	# Interactive mode with a 10 second heartbeat and a session log
//	blewatch -interactive -heartbeat 10 -event-log scan.cborlog
//
// Interactive Commands:
//
//	start       - Start listening for advertisements
//	stop        - Stop listening and clear the roster
//	list        - List currently visible devices
//	timeout <s> - Set the heartbeat timeout in seconds
//	status      - Show watcher status
//	quit        - Exit
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blewatch/blewatch-go/pkg/ble"
	"github.com/blewatch/blewatch-go/pkg/scanlog"
	"github.com/blewatch/blewatch-go/pkg/version"
	"github.com/blewatch/blewatch-go/pkg/watch"
)

type cliConfig struct {
	ConfigFile  string
	Heartbeat   int
	EventLog    string
	LogLevel    string
	Interactive bool
	Version     bool
}

var config cliConfig

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file path")
	flag.IntVar(&config.Heartbeat, "heartbeat", 0, "Heartbeat timeout in seconds (overrides config)")
	flag.StringVar(&config.EventLog, "event-log", "", "Append scan events to a CBOR log file")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.Interactive, "interactive", false, "Enable interactive command mode")
	flag.BoolVar(&config.Version, "version", false, "Print version and exit")
}

func main() {
	flag.Parse()

	if config.Version {
		fmt.Printf("blewatch %s\n", version.Current)
		return
	}

	setupLogging(config.LogLevel)

	watchConfig := watch.DefaultConfig()
	if config.ConfigFile != "" {
		loaded, err := watch.LoadConfig(config.ConfigFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		watchConfig = loaded
	}
	if config.Heartbeat > 0 {
		watchConfig.HeartbeatTimeout = time.Duration(config.Heartbeat) * time.Second
	}

	adapter := ble.NewAdapter()
	watcher, err := watch.NewWatcher(adapter, adapter, watchConfig)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	// Console printer for classified events.
	watcher.Subscribe(printEvent)

	// Optional CBOR session log.
	if config.EventLog != "" {
		fileLogger, err := scanlog.NewFileLogger(config.EventLog)
		if err != nil {
			log.Fatalf("Failed to open event log: %v", err)
		}
		defer fileLogger.Close()

		logger := scanlog.NewMultiLogger(
			fileLogger,
			scanlog.NewSlogAdapter(slog.Default()),
		)
		watcher.Subscribe(scanlog.Subscriber(logger))
		log.Printf("Recording scan events to %s", config.EventLog)
	}

	if config.Interactive {
		runInteractive(watcher)
		return
	}

	if err := watcher.Start(); err != nil {
		log.Fatalf("Failed to start scan: %v", err)
	}
	log.Printf("Scanning (heartbeat timeout %s). Ctrl-C to exit.", watcher.HeartbeatTimeout())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal: %v", sig)

	if err := watcher.Stop(); err != nil {
		log.Printf("Warning: stop failed: %v", err)
	}
}

// printEvent renders a watcher event on the console.
func printEvent(event watch.Event) {
	switch event.Type {
	case watch.EventStartedListening:
		log.Printf("[%s] session %s", event.Type, event.SessionID)
	case watch.EventStoppedListening:
		log.Printf("[%s] session %s", event.Type, event.SessionID)
	default:
		if event.Device == nil {
			return
		}
		log.Printf("[%s] %s  %s  %d dBm",
			event.Type, event.Device.ID, event.Device.DisplayName(), event.Device.RSSI)
	}
}

func formatDevice(device watch.Device) string {
	age := time.Since(device.LastSeen).Round(time.Second)
	return fmt.Sprintf("%s  %-24s  %4d dBm  seen %s ago",
		device.ID, device.DisplayName(), device.RSSI, age)
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}
