package main

import (
	"bufio"
	"chat-relay/domain"
	"chat-relay/participant"
	"chat-relay/runtime/workers"
	"chat-relay/transport"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the participant lifecycle: configuration, join, the three
// concurrent duties (input, receive, keepalive), and orderly shutdown.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Ask for a display name before touching the network.
	stdin := bufio.NewScanner(os.Stdin)
	fmt.Print("Enter your username: ")
	if !stdin.Scan() {
		return exitConfig, fmt.Errorf("no username given")
	}
	name := strings.TrimSpace(stdin.Text())
	if err := domain.ValidateDisplayName(name); err != nil {
		return exitConfig, fmt.Errorf("username %q: %w", name, err)
	}

	// 3. Socket on an ephemeral port; the relay learns our endpoint from
	// the first datagram it receives.
	udp, err := transport.Listen("0.0.0.0", 0)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not create client socket: %w", err)
	}
	server, err := transport.Resolve(config.ServerHost, config.ServerPort)
	if err != nil {
		return exitRuntime, err
	}

	session := participant.NewSession(log, udp, server, name)
	renderer := participant.NewRenderer(os.Stdout, config.Colours)

	// 4. Context & Signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Join, then start the receive and keepalive workers.
	if err := session.Join(); err != nil {
		_ = udp.Close()
		return exitRuntime, fmt.Errorf("could not reach server at %s: %w", server, err)
	}

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		participant.NewReceiveWorker(log, udp, renderer, config.ReceiveTimeout),
		participant.NewKeepaliveWorker(log, session, config.PingInterval),
	)
	workersDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(workersDone)
	}()

	fmt.Printf("Connected to chat server as: %s\n", name)
	fmt.Printf("Server: %s\n", server)
	fmt.Println("\nCommands: /list (show users), /quit (exit), or just type to chat")

	// 6. Main input loop. Stdin is read on its own goroutine so a signal
	// still shuts the client down while Scan is blocked.
	lines := make(chan string)
	go func() {
		defer close(lines)
		for stdin.Scan() {
			select {
			case lines <- stdin.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

input:
	for {
		select {
		case <-ctx.Done():
			break input
		case line, ok := <-lines:
			if !ok {
				break input
			}
			quit, err := session.HandleInput(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error sending message: %v\n", err)
				continue
			}
			if quit {
				break input
			}
		}
	}

	// 7. Orderly shutdown: stop pings and receive first, then announce
	// the departure, then close the socket. stop cancels the worker
	// context; the receive loop notices within one poll timeout.
	stop()
	<-workersDone
	session.Leave()
	_ = udp.Close()

	fmt.Println("Chat client closed.")
	return exitOK, nil
}
