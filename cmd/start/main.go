package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/workflows"
)

func main() {
	assistantID := flag.String("assistant", "", "existing assistant id (default: create one)")
	threadID := flag.String("thread", "", "existing thread id (default: create one)")
	pollInterval := flag.Duration("poll", workflows.DefaultPollInterval, "run status poll interval")
	maxWait := flag.Duration("max-wait", workflows.DefaultMaxWait, "maximum time to wait for the run")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: start [flags] <message>")
		os.Exit(2)
	}
	message := strings.Join(flag.Args(), " ")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalln("Unable to load .env", err)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalln("Invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalAddress,
	})
	if err != nil {
		log.Fatalln("Unable to create client", err)
	}
	defer c.Close()

	options := client.StartWorkflowOptions{
		TaskQueue: cfg.TaskQueue,
	}

	log.Println("Starting conversation turn")
	we, err := c.ExecuteWorkflow(
		ctx,
		options,
		workflows.ConversationTurnWorkflow,
		workflows.ConversationTurnRequest{
			AssistantID:  *assistantID,
			ThreadID:     *threadID,
			Message:      message,
			PollInterval: *pollInterval,
			MaxWait:      *maxWait,
		},
	)
	if err != nil {
		log.Fatalln("Unable to execute workflow", err)
	}
	log.Println("Started workflow", "WorkflowID", we.GetID(), "RunID", we.GetRunID())

	var result workflows.ConversationTurnResult
	err = we.Get(ctx, &result)
	if err != nil {
		log.Fatalln("Unable get workflow result", err)
	}

	log.Println("Assistant", result.AssistantID, "Thread", result.ThreadID, "Run", result.RunID, "Status", result.Status)
	if result.TimedOut {
		log.Println("Run still pending; check it again later with the same thread and run ids")
	}
	for _, msg := range result.Messages {
		fmt.Println(msg)
		fmt.Println()
	}
}
