package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jonathangjertsen/benchscpi/dp832"
	"github.com/jonathangjertsen/benchscpi/internal/config"
	"github.com/jonathangjertsen/benchscpi/internal/logging"
	"github.com/jonathangjertsen/benchscpi/internal/monitor"
	"github.com/jonathangjertsen/benchscpi/scpi"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v, using defaults\n", err)
		cfg = config.GetDefaultConfig()
	}

	log := logging.Setup(cfg.Log)

	if cfg.Monitor.Enabled {
		mon := monitor.NewMonitor(log)
		mon.StartMetricsServer(cfg.Monitor.MetricsPort)
		defer mon.Close()
	}

	if len(cfg.Sequences) == 0 {
		log.Warn("no sequences configured")
		return
	}

	if err := run(cfg, log); err != nil {
		log.Fatalf("sequence failed: %v", err)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	programs := make([]dp832.TimerProgram, 0, len(cfg.Sequences))
	for _, seq := range cfg.Sequences {
		programs = append(programs, program(seq))
	}

	sessionCfg := dp832.Config
	if cfg.PSU.Timeout > 0 {
		sessionCfg.Timeout = cfg.PSU.Timeout
	}
	if cfg.PSU.Port > 0 {
		sessionCfg.Port = cfg.PSU.Port
	}

	session, err := scpi.NewResourceManager(log).Open(cfg.PSU.Resource, sessionCfg)
	if err != nil {
		return err
	}
	psu := dp832.NewWithChannel(session)
	defer psu.Close()

	id, err := psu.QueryID()
	if err != nil {
		return err
	}
	log.WithField("id", id).Info("power supply identified")

	for _, p := range programs {
		if err := psu.RunTimer(p); err != nil {
			return err
		}
		log.Infof("timer started on %s", p)
	}
	return nil
}

func program(seq config.SequenceConfig) dp832.TimerProgram {
	steps := make([]dp832.TimerStep, len(seq.Steps))
	for i, s := range seq.Steps {
		steps[i] = dp832.TimerStep{
			Voltage:  s.Voltage,
			Current:  s.Current,
			Duration: s.Duration,
		}
	}
	return dp832.TimerProgram{
		Channel:     dp832.Channel(seq.Channel),
		Cycles:      seq.Cycles,
		Steps:       steps,
		OffWhenDone: seq.OffWhenDone,
	}
}
