package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ansg191/devassist/internal/activities"
	"github.com/ansg191/devassist/internal/assistant"
	"github.com/ansg191/devassist/internal/config"
	"github.com/ansg191/devassist/internal/workflows"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalln("Unable to load .env", err)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalln("Invalid configuration", err)
	}

	persona, err := config.LoadAssistantConfig()
	if err != nil {
		log.Fatalln("Unable to load assistant config", err)
	}

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalAddress,
	})
	if err != nil {
		log.Fatalln("Unable to create client", err)
	}
	defer c.Close()

	manager := assistant.NewManager(assistant.NewClientFactory(), persona)

	w := worker.New(c, cfg.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.ConversationTurnWorkflow)
	w.RegisterActivity(activities.NewAssistantActivities(manager))

	err = w.Run(worker.InterruptCh())
	if err != nil {
		log.Fatalln("Unable to start worker", err)
	}
}
