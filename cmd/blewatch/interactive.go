package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/blewatch/blewatch-go/pkg/watch"
)

// runInteractive drives the watcher from a readline command loop.
func runInteractive(watcher *watch.Watcher) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blewatch> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to create readline: %v\n", err)
		return
	}
	defer rl.Close()

	printHelp(rl)

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			_ = watcher.Stop()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			printHelp(rl)

		case "start":
			if err := watcher.Start(); err != nil {
				fmt.Fprintf(rl.Stdout(), "Start failed: %v\n", err)
			}

		case "stop":
			if err := watcher.Stop(); err != nil {
				fmt.Fprintf(rl.Stdout(), "Stop failed: %v\n", err)
			}

		case "list", "ls", "devices":
			cmdList(rl, watcher)

		case "timeout":
			cmdTimeout(rl, watcher, args)

		case "status":
			cmdStatus(rl, watcher)

		case "quit", "exit", "q":
			_ = watcher.Stop()
			return

		default:
			fmt.Fprintf(rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func cmdList(rl *readline.Instance, watcher *watch.Watcher) {
	devices := watcher.Devices()
	if len(devices) == 0 {
		fmt.Fprintln(rl.Stdout(), "No devices visible")
		return
	}
	for _, device := range devices {
		fmt.Fprintln(rl.Stdout(), formatDevice(device))
	}
	fmt.Fprintf(rl.Stdout(), "%d device(s)\n", len(devices))
}

func cmdTimeout(rl *readline.Instance, watcher *watch.Watcher, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(rl.Stdout(), "Heartbeat timeout: %s\n", watcher.HeartbeatTimeout())
		fmt.Fprintln(rl.Stdout(), "Usage: timeout <seconds>")
		return
	}

	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds <= 0 {
		fmt.Fprintln(rl.Stdout(), "Timeout must be a positive number of seconds")
		return
	}

	if err := watcher.SetHeartbeatTimeout(time.Duration(seconds) * time.Second); err != nil {
		fmt.Fprintf(rl.Stdout(), "Failed to set timeout: %v\n", err)
		return
	}
	fmt.Fprintf(rl.Stdout(), "Heartbeat timeout set to %ds (effective next sweep)\n", seconds)
}

func cmdStatus(rl *readline.Instance, watcher *watch.Watcher) {
	state := "STOPPED"
	if watcher.Listening() {
		state = "LISTENING"
	}
	fmt.Fprintf(rl.Stdout(), "State:             %s\n", state)
	if id := watcher.SessionID(); id != "" {
		fmt.Fprintf(rl.Stdout(), "Session:           %s\n", id)
	}
	fmt.Fprintf(rl.Stdout(), "Heartbeat timeout: %s\n", watcher.HeartbeatTimeout())
	fmt.Fprintf(rl.Stdout(), "Visible devices:   %d\n", len(watcher.Devices()))
}

func printHelp(rl *readline.Instance) {
	fmt.Fprintln(rl.Stdout(), "Commands:")
	fmt.Fprintln(rl.Stdout(), "  start           Start listening for advertisements")
	fmt.Fprintln(rl.Stdout(), "  stop            Stop listening and clear the roster")
	fmt.Fprintln(rl.Stdout(), "  list            List currently visible devices")
	fmt.Fprintln(rl.Stdout(), "  timeout <s>     Set the heartbeat timeout in seconds")
	fmt.Fprintln(rl.Stdout(), "  status          Show watcher status")
	fmt.Fprintln(rl.Stdout(), "  quit            Exit")
}
