package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathangjertsen/benchscpi/dmm6500"
	"github.com/jonathangjertsen/benchscpi/internal/config"
	"github.com/jonathangjertsen/benchscpi/internal/logging"
	"github.com/jonathangjertsen/benchscpi/internal/monitor"
	"github.com/jonathangjertsen/benchscpi/internal/storage"
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

	if err := run(cfg, log); err != nil {
		log.Fatalf("capture failed: %v", err)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	function, err := dmm6500.ParseFunction(cfg.Capture.Function)
	if err != nil {
		return err
	}
	buf := dmm6500.Buffer(cfg.Capture.Buffer)

	sessionCfg := dmm6500.Config
	if cfg.DMM.Timeout > 0 {
		sessionCfg.Timeout = cfg.DMM.Timeout
	}
	if cfg.DMM.Port > 0 {
		sessionCfg.Port = cfg.DMM.Port
	}

	session, err := scpi.NewResourceManager(log).Open(cfg.DMM.Resource, sessionCfg)
	if err != nil {
		return err
	}
	dmm := dmm6500.NewWithChannel(session)
	defer dmm.Close()

	if err := dmm.Clear(); err != nil {
		return err
	}
	if err := dmm.Reset(); err != nil {
		return err
	}
	id, err := dmm.QueryID()
	if err != nil {
		return err
	}
	log.WithField("id", id).Info("multimeter identified")

	if err := dmm.Sense.Function(function); err != nil {
		return err
	}
	if err := dmm.Trigger.DurationLoop(cfg.Capture.Duration, cfg.Capture.Delay, buf); err != nil {
		return err
	}
	if err := dmm.Init(); err != nil {
		return err
	}
	if err := dmm.Wait(); err != nil {
		return err
	}
	log.Infof("measuring for %s", cfg.Capture.Duration+cfg.Capture.Delay)
	time.Sleep(cfg.Capture.Duration + cfg.Capture.Delay)

	count, err := dmm.Trace.Actual(buf)
	if err != nil {
		return err
	}
	values, err := readSeries(dmm.Trace, count, buf, dmm6500.Reading)
	if err != nil {
		return err
	}
	relative, err := readSeries(dmm.Trace, count, buf, dmm6500.Relative)
	if err != nil {
		return err
	}
	monitor.ReadingsCaptured.Add(float64(len(values)))

	if err := logStats(dmm.Trace, buf, log); err != nil {
		return err
	}

	if !cfg.Capture.Publish {
		return nil
	}

	readings, err := storage.PairReadings(storage.Reading{
		Resource:   cfg.DMM.Resource,
		Buffer:     string(buf),
		Function:   function.String(),
		CapturedAt: time.Now(),
	}, values, relative)
	if err != nil {
		return err
	}

	mq, err := storage.NewMessageQueue(cfg.Redis, log)
	if err != nil {
		return err
	}
	defer mq.Close()

	published, err := mq.PublishBatch(context.Background(), readings)
	if err != nil {
		return err
	}
	monitor.ReadingsPublished.Add(float64(published))
	log.Infof("published %d readings to %s", published, cfg.Redis.Channel)
	return nil
}

func readSeries(trace *dmm6500.Trace, count int, buf dmm6500.Buffer, el dmm6500.Element) ([]float64, error) {
	if count == 0 {
		return nil, nil
	}
	reply, err := trace.Data(count, buf, el)
	if err != nil {
		return nil, err
	}
	return scpi.ParseFloats(reply)
}

func logStats(trace *dmm6500.Trace, buf dmm6500.Buffer, log *logrus.Logger) error {
	average, err := trace.StatsAverage(buf)
	if err != nil {
		return err
	}
	maximum, err := trace.StatsMax(buf)
	if err != nil {
		return err
	}
	minimum, err := trace.StatsMin(buf)
	if err != nil {
		return err
	}
	peakToPeak, err := trace.StatsPeakToPeak(buf)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"average":      average,
		"max":          maximum,
		"min":          minimum,
		"peak_to_peak": peakToPeak,
	}).Info("buffer statistics")
	return nil
}
