package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/fleetmon/fleetmon/internal/dispatch"
	"github.com/fleetmon/fleetmon/internal/executor"
	"github.com/fleetmon/fleetmon/internal/fleet"
	"github.com/fleetmon/fleetmon/internal/lg"
	"github.com/fleetmon/fleetmon/internal/sink"
	"github.com/fleetmon/fleetmon/internal/task"
	"github.com/fleetmon/fleetmon/pkg/store"
	"github.com/fleetmon/fleetmon/pkg/store/filestore"
	"github.com/fleetmon/fleetmon/pkg/store/mongostore"
)

const (
	serviceName      = "fleetmon"
	defaultNodesFile = "nodes.yaml"
	defaultLogFile   = "./dashboard/fleet_log.jsonl"
)

func main() {
	nodesPath := flag.String("nodes", defaultNodesFile, "path to the YAML node list")
	mongoURI := flag.String("nodes-mongo-uri", "", "load the node list from MongoDB instead of a file")
	mongoDB := flag.String("nodes-mongo-db", "fleetmon", "MongoDB database for the node list")
	mongoColl := flag.String("nodes-mongo-coll", "fleets", "MongoDB collection for the node list")
	mongoID := flag.String("nodes-mongo-id", "fleet", "MongoDB document ID for the node list")
	logPath := flag.String("log-file", defaultLogFile, "append-only JSONL result log")
	kafkaBrokers := flag.String("kafka-brokers", "", "comma-separated brokers for the optional Kafka result sink")
	kafkaTopic := flag.String("kafka-topic", "fleet-results", "topic for the Kafka result sink")
	workers := flag.Int("workers", 1, "parallel dispatch limit; 1 keeps runs fully sequential")
	sinkPolicy := flag.String("sink-policy", string(dispatch.SinkNode), "sink failure policy: abort, node or ignore")
	knownHosts := flag.String("known-hosts", "", "verify remote host keys against this file; empty trusts any key")
	watch := flag.Bool("watch", false, "keep running and re-dispatch whenever the node file changes")
	debug := flag.Bool("debug", false, "enable debug logging")
	logFormat := flag.String("log-format", "json", "json or console")
	flag.Parse()

	logger := lg.New(&lg.Config{ServiceName: serviceName, Debug: *debug, Format: *logFormat})
	defer logger.Sync()

	policy, err := dispatch.ParseSinkPolicy(*sinkPolicy)
	if err != nil {
		logger.Error("invalid sink policy", lg.Err(err))
		os.Exit(1)
	}

	var st store.DocumentStore
	if *mongoURI != "" {
		ms, err := mongostore.New(*mongoURI, *mongoDB, *mongoColl, *mongoID)
		if err != nil {
			logger.Error("failed to open MongoDB node store", lg.Err(err))
			os.Exit(1)
		}
		st = ms
	} else {
		st = filestore.New(*nodesPath)
	}
	registry := fleet.NewRegistry(st, logger)

	fileSink, err := sink.NewFile(*logPath)
	if err != nil {
		logger.Error("failed to open result log", lg.Err(err))
		os.Exit(1)
	}
	sinks := sink.Multi{fileSink}
	if *kafkaBrokers != "" {
		sinks = append(sinks, sink.NewKafka(strings.Split(*kafkaBrokers, ","), *kafkaTopic))
	}
	defer sinks.Close()

	hostKey, err := hostKeyPolicy(*knownHosts, logger)
	if err != nil {
		logger.Error("failed to load host key policy", lg.Err(err))
		os.Exit(1)
	}

	runID := uuid.New().String()
	dispatcher := &dispatch.Dispatcher{
		Local:      executor.NewLocal(runID),
		Shell:      executor.NewRawShell(runID, hostKey),
		Managed:    executor.NewManagedDevice(runID, hostKey),
		Sink:       sinks,
		Reporter:   task.NewConsole(),
		Log:        logger,
		Workers:    *workers,
		SinkPolicy: policy,
	}

	ctx := lg.Attach(context.Background(), logger)

	runOnce := func() {
		nodes := registry.Load()
		if len(nodes) == 0 {
			logger.Warn("no nodes to process")
			return
		}
		results := dispatcher.DispatchAll(ctx, nodes)
		logger.Info("run complete",
			lg.String("run_id", runID),
			lg.Int("nodes", len(nodes)),
			lg.Int("results", len(results)))
	}

	runOnce()

	if !*watch {
		return
	}

	if err := registry.Watch(runOnce); err != nil {
		logger.Error("failed to watch node list", lg.Err(err))
		os.Exit(1)
	}
	logger.Info("watching node list for changes", lg.String("path", *nodesPath))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
	logger.Info("shutting down")
}

func hostKeyPolicy(path string, logger lg.Logger) (ssh.HostKeyCallback, error) {
	if path == "" {
		logger.Warn("host key verification disabled; remote host keys are trusted blindly")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("load known hosts %s: %w", path, err)
	}
	return cb, nil
}
